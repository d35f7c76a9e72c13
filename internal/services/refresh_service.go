package services

import (
	"context"
	"log"
	"time"

	"triplog/internal/models/db_models"
	"triplog/internal/models/response_models"
	"triplog/internal/repositories"
	"triplog/pkg/utils"
)

const (
	DefaultStaleAfter   = 30 * 24 * time.Hour
	DefaultRefreshDelay = 200 * time.Millisecond
)

type RefreshServiceInterface interface {
	// RefreshStalePlaces re-fetches only the image for cached places
	// whose last refresh predates the staleness window. Per-place
	// failures are reported and never abort the batch.
	RefreshStalePlaces(ctx context.Context) (*response_models.RefreshReport, error)
}

type RefreshService struct {
	cache      repositories.PlaceCacheRepository
	directory  PlaceDirectoryClient
	staleAfter time.Duration
	delay      time.Duration
}

func NewRefreshService(
	cache repositories.PlaceCacheRepository,
	directory PlaceDirectoryClient,
	staleAfter time.Duration,
	delay time.Duration,
) RefreshServiceInterface {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &RefreshService{
		cache:      cache,
		directory:  directory,
		staleAfter: staleAfter,
		delay:      delay,
	}
}

func (s *RefreshService) RefreshStalePlaces(ctx context.Context) (*response_models.RefreshReport, error) {
	cutoff := time.Now().UTC().Add(-s.staleAfter)

	stale, err := s.cache.ListStale(ctx, cutoff)
	if err != nil {
		log.Printf("Error listing stale places: %v", err)
		return nil, utils.ErrDatabaseError
	}

	report := &response_models.RefreshReport{Scanned: len(stale)}

	for i, record := range stale {
		if err := s.refreshOne(ctx, record); err != nil {
			report.Failed++
			report.Failures = append(report.Failures, response_models.RefreshFailure{
				PlaceID:       record.ID.String(),
				GooglePlaceID: record.GooglePlaceID,
				Reason:        err.Error(),
			})
		} else {
			report.Refreshed++
		}

		// Fixed pause keeps the outbound call rate under quota.
		if s.delay > 0 && i < len(stale)-1 {
			time.Sleep(s.delay)
		}
	}

	log.Printf("Stale place refresh done: %d refreshed, %d failed of %d", report.Refreshed, report.Failed, report.Scanned)
	return report, nil
}

func (s *RefreshService) refreshOne(ctx context.Context, record db_models.PlaceRecord) error {
	// Photos-only request: the refresher never needs the full record.
	photos, err := s.directory.FetchPhotos(ctx, record.GooglePlaceID)
	if err != nil {
		return err
	}

	var imageURL string
	for _, photo := range photos {
		url, err := s.directory.FetchPhotoURL(ctx, photo.PhotoReference)
		if err != nil {
			log.Printf("Photo refresh failed for %s: %v", record.GooglePlaceID, err)
			continue
		}
		imageURL = url
		break
	}
	if imageURL == "" {
		return utils.ErrUpstreamUnavailable
	}

	// Overwrite, never append: the image list stays at one entry.
	if err := s.cache.ReplaceImage(ctx, record.ID, imageURL); err != nil {
		log.Printf("Error replacing image for %s: %v", record.GooglePlaceID, err)
		return utils.ErrDatabaseError
	}
	return nil
}
