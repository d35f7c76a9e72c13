package services

import (
	"context"
	"log"
	"time"

	"triplog/internal/models/response_models"
	"triplog/internal/repositories"
	"triplog/pkg/utils"
)

type PlaceServiceInterface interface {
	GetPlaceByGoogleID(ctx context.Context, googlePlaceID string) (response_models.Place, error)
}

type PlaceService struct {
	cache repositories.PlaceCacheRepository
}

func NewPlaceService(cache repositories.PlaceCacheRepository) PlaceServiceInterface {
	return &PlaceService{cache: cache}
}

func (s *PlaceService) GetPlaceByGoogleID(ctx context.Context, googlePlaceID string) (response_models.Place, error) {
	record, err := s.cache.GetByGooglePlaceID(ctx, googlePlaceID)
	if err != nil {
		log.Printf("Error fetching place %s: %v", googlePlaceID, err)
		return response_models.Place{}, utils.ErrDatabaseError
	}
	if record == nil {
		return response_models.Place{}, utils.ErrPlaceNotFound
	}

	return response_models.Place{
		ID:               record.ID.String(),
		GooglePlaceID:    record.GooglePlaceID,
		Name:             record.Name,
		Rating:           record.Rating,
		UserRatingsTotal: record.UserRatingsTotal,
		FormattedAddress: record.FormattedAddress,
		Latitude:         record.Latitude,
		Longitude:        record.Longitude,
		MapsURL:          record.MapsURL,
		Images:           record.Images,
		BusinessStatus:   record.BusinessStatus,
		PriceLevel:       record.PriceLevel,
		Types:            record.Types,
		LastCachedAt:     record.LastCachedAt.UTC().Format(time.RFC3339),
	}, nil
}
