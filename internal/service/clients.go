package service

import (
	"context"
	"fmt"

	"geo_ads/internal/domain"

	"github.com/sirupsen/logrus"
)

// CreateClient stores a new advertising client. clientType is not validated here.
func (s *Service) CreateClient(ctx context.Context, name, clientType string, balance float64) (*domain.Client, error) {
	client := &domain.Client{Name: name, Type: clientType, Balance: balance}
	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		if isConstraintError(err) {
			return nil, fmt.Errorf("%w: client name %q already in use", domain.ErrConflict, name)
		}
		return nil, fmt.Errorf("service.CreateClient: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"client_id": client.ID,
		"name":      client.Name,
		"type":      client.Type,
	}).Info("Client created")
	return client, nil
}

// ListClients returns every client ordered by id
func (s *Service) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients := make([]domain.Client, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("service.ListClients: %w", err)
	}
	return clients, nil
}
