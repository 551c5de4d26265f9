// Package service implements the CRUD operations and the proximity query over the store.
package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Service owns all store access for users, clients and ads
type Service struct {
	db           *gorm.DB
	passwordCost int
}

// New builds a Service. passwordCost is the bcrypt cost for new users.
func New(db *gorm.DB, passwordCost int) *Service {
	return &Service{db: db, passwordCost: passwordCost}
}

// Ping checks that the store answers
func (s *Service) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// isConstraintError reports insert failures caused by unique or foreign key constraints
func isConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed") || strings.Contains(msg, "foreign key")
}
