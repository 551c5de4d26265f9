package service

import (
	"context"
	"errors"
	"fmt"

	"geo_ads/internal/auth"
	"geo_ads/internal/domain"
	"geo_ads/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser stores a new user with a fresh salt and API key
func (s *Service) CreateUser(ctx context.Context, username, password, email string, isAdmin bool) (*domain.User, error) {
	stored, err := auth.HashPassword(password, s.passwordCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password too long", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("service.CreateUser: %w", err)
	}
	apiKey, err := utils.GenerateAPIKey()
	if err != nil {
		return nil, fmt.Errorf("service.CreateUser: %w", err)
	}

	user := &domain.User{
		Username: username,
		Password: stored,
		APIKey:   apiKey,
		IsAdmin:  isAdmin,
		Email:    email,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isConstraintError(err) {
			return nil, fmt.Errorf("%w: username %q already in use", domain.ErrConflict, username)
		}
		return nil, fmt.Errorf("service.CreateUser: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
	}).Info("User created")
	return user, nil
}

// ListUsers returns every user ordered by id
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("service.ListUsers: %w", err)
	}
	return users, nil
}
