// Package auth validates admin credentials and API bearer tokens against the store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"geo_ads/internal/domain"
	"geo_ads/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Authenticator checks credentials. rdb is optional; when set, valid API keys
// are cached for keyTTL.
type Authenticator struct {
	db     *gorm.DB
	rdb    *redis.Client
	keyTTL time.Duration
}

// New returns an Authenticator. rdb may be nil.
func New(db *gorm.DB, rdb *redis.Client, keyTTL time.Duration) *Authenticator {
	return &Authenticator{db: db, rdb: rdb, keyTTL: keyTTL}
}

// ValidateUser returns the user when password matches the stored hash
func (a *Authenticator) ValidateUser(ctx context.Context, username, password string) (*domain.User, error) {
	var user domain.User
	if err := a.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidAuth
		}
		return nil, fmt.Errorf("auth.ValidateUser: %w", err)
	}
	if !CheckPassword(user.Password, password) {
		return nil, domain.ErrInvalidAuth
	}
	return &user, nil
}

// ValidateAdmin is ValidateUser restricted to admins
func (a *Authenticator) ValidateAdmin(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := a.ValidateUser(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, domain.ErrInvalidAuth
	}
	return user, nil
}

// AdminByID reloads a session's user and checks it is still an admin
func (a *Authenticator) AdminByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := a.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidAuth
		}
		return nil, fmt.Errorf("auth.AdminByID: %w", err)
	}
	if !user.IsAdmin {
		return nil, domain.ErrInvalidAuth
	}
	return &user, nil
}

// ValidKey returns the id of the user owning apiKey. Any user qualifies.
func (a *Authenticator) ValidKey(ctx context.Context, apiKey string) (uint, error) {
	if apiKey == "" {
		return 0, domain.ErrInvalidAuth
	}
	if a.rdb != nil {
		userID, found, err := utils.CachedUserID(ctx, a.rdb, apiKey)
		if err != nil {
			logrus.WithError(err).Warn("api key cache read failed")
		} else if found {
			return userID, nil
		}
	}

	var user domain.User
	if err := a.db.WithContext(ctx).Select("id").Where("api_key = ?", apiKey).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrInvalidAuth
		}
		return 0, fmt.Errorf("auth.ValidKey: %w", err)
	}

	if a.rdb != nil {
		if err := utils.CacheUserID(ctx, a.rdb, apiKey, user.ID, a.keyTTL); err != nil {
			logrus.WithError(err).Warn("api key cache write failed")
		}
	}
	return user.ID, nil
}
