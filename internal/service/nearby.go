package service

import (
	"context"
	"fmt"

	"geo_ads/internal/domain"
	"geo_ads/internal/geo"

	"gorm.io/gorm"
)

// FindNearbyAds returns the coordinates of every ad within threshold meters of
// location, in store order, and counts one view for each of them.
// The scan and the views = views + 1 update share a transaction.
func (s *Service) FindNearbyAds(ctx context.Context, location geo.Point, threshold float64) ([]geo.Point, error) {
	var nearby []geo.Point
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		nearby = make([]geo.Point, 0)
		var ads []domain.Ad
		if err := tx.Select("id", "latitude", "longitude").Order("id").Find(&ads).Error; err != nil {
			return err
		}

		ids := make([]uint, 0)
		for _, ad := range ads {
			p := geo.Point{Lat: ad.Latitude, Lon: ad.Longitude}
			if geo.Distance(location, p) <= threshold {
				nearby = append(nearby, p)
				ids = append(ids, ad.ID)
			}
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Model(&domain.Ad{}).Where("id IN ?", ids).
			UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	})
	if err != nil {
		return nil, fmt.Errorf("service.FindNearbyAds: %w", err)
	}
	return nearby, nil
}
