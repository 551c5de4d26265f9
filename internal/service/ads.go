package service

import (
	"context"
	"errors"
	"fmt"

	"geo_ads/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewAd is the input of CreateAd; the client is referenced by name
type NewAd struct {
	Name       string
	ClientName string
	Latitude   float64
	Longitude  float64
	Height     float64
	Category   string
	Type       string
	Data       []byte
}

// CreateAd stores an ad for an existing client
func (s *Service) CreateAd(ctx context.Context, in NewAd) (*domain.Ad, error) {
	var client domain.Client
	if err := s.db.WithContext(ctx).Where("name = ?", in.ClientName).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: client %q", domain.ErrNotFound, in.ClientName)
		}
		return nil, fmt.Errorf("service.CreateAd: %w", err)
	}

	ad := &domain.Ad{
		Name:      in.Name,
		ClientID:  client.ID,
		Category:  in.Category,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Height:    in.Height,
		Type:      in.Type,
		Data:      in.Data,
	}
	if err := s.db.WithContext(ctx).Create(ad).Error; err != nil {
		if isConstraintError(err) {
			return nil, fmt.Errorf("%w: ad rejected by store: %v", domain.ErrConflict, err)
		}
		return nil, fmt.Errorf("service.CreateAd: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"ad_id":     ad.ID,
		"client_id": ad.ClientID,
		"category":  ad.Category,
		"latitude":  ad.Latitude,
		"longitude": ad.Longitude,
	}).Info("Ad created")
	return ad, nil
}

// ListAds returns every ad ordered by id
func (s *Service) ListAds(ctx context.Context) ([]domain.Ad, error) {
	ads := make([]domain.Ad, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&ads).Error; err != nil {
		return nil, fmt.Errorf("service.ListAds: %w", err)
	}
	return ads, nil
}
