package services

import (
	"context"
	"errors"
	"log"
	"time"

	"triplog/internal/models/db_models"
	"triplog/internal/repositories"
	mem "triplog/pkg/memcache"
	"triplog/pkg/utils"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PlaceResolverServiceInterface interface {
	// Resolve turns one free-text mention into the cached PlaceRecord
	// for its canonical place identity, creating the record on first
	// sight. A cache hit performs no detail or photo calls.
	Resolve(ctx context.Context, queryText, userID string) (*db_models.PlaceRecord, error)
}

type PlaceResolverService struct {
	directory PlaceDirectoryClient
	media     MediaMetadataResolver
	cache     repositories.PlaceCacheRepository
	sessions  mem.SessionTokenStore
}

func NewPlaceResolverService(
	directory PlaceDirectoryClient,
	media MediaMetadataResolver,
	cache repositories.PlaceCacheRepository,
	sessions mem.SessionTokenStore,
) PlaceResolverServiceInterface {
	return &PlaceResolverService{
		directory: directory,
		media:     media,
		cache:     cache,
		sessions:  sessions,
	}
}

func (s *PlaceResolverService) Resolve(ctx context.Context, queryText, userID string) (*db_models.PlaceRecord, error) {
	candidates, err := s.directory.TextSearch(ctx, queryText)
	if err != nil {
		return nil, &utils.PlaceResolutionError{Query: queryText, Err: err}
	}
	if len(candidates) == 0 {
		return nil, &utils.PlaceResolutionError{Query: queryText, Err: utils.ErrNoCandidateFound}
	}

	// First result is taken as canonical. Known-aggressive policy, kept
	// so repeated mentions of one place always land on the same id.
	candidate := candidates[0]

	cached, err := s.cache.GetByGooglePlaceID(ctx, candidate.PlaceID)
	if err != nil {
		log.Printf("Error reading place cache for %s: %v", candidate.PlaceID, err)
		return nil, &utils.PlaceResolutionError{Query: queryText, Err: utils.ErrDatabaseError}
	}
	if cached != nil {
		return cached, nil
	}

	details, err := s.directory.FetchDetails(ctx, candidate.PlaceID, s.sessions.TokenFor(userID))
	if err != nil {
		return nil, &utils.PlaceResolutionError{Query: queryText, Err: err}
	}

	imageURL, stars := s.resolveImage(ctx, details)

	record := &db_models.PlaceRecord{
		GooglePlaceID:    details.PlaceID,
		Name:             details.Name,
		UserRatingsTotal: details.UserRatingsTotal,
		MapsURL:          details.MapsURL,
		OpeningHours:     db_models.AlwaysOpenHours(),
		UTCOffsetMinutes: details.UTCOffsetMinutes,
		FormattedAddress: details.FormattedAddress,
		Latitude:         details.Latitude,
		Longitude:        details.Longitude,
		BusinessStatus:   details.BusinessStatus,
		PriceLevel:       details.PriceLevel,
		Types:            pq.StringArray(details.Types),
		LastCachedAt:     time.Now().UTC(),
	}
	if stars > 0 {
		record.Rating = &stars
	}
	if imageURL != "" {
		record.Images = pq.StringArray{imageURL}
	}

	if err := s.cache.Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent resolver won the insert race; its row is the
			// canonical one now.
			winner, readErr := s.cache.GetByGooglePlaceID(ctx, candidate.PlaceID)
			if readErr != nil || winner == nil {
				return nil, &utils.PlaceResolutionError{Query: queryText, Err: utils.ErrDatabaseError}
			}
			return winner, nil
		}
		log.Printf("Error caching place %s: %v", candidate.PlaceID, err)
		return nil, &utils.PlaceResolutionError{Query: queryText, Err: utils.ErrDatabaseError}
	}

	return record, nil
}

// resolveImage tries the deep-link metadata scrape first (one request
// yields image and stars together), then walks the photo references
// until one resolves. Coming up empty-handed is not an error.
func (s *PlaceResolverService) resolveImage(ctx context.Context, details *PlaceDetails) (string, int) {
	var imageURL string
	var stars int

	if details.MapsURL != "" {
		meta, err := s.media.ResolveMedia(ctx, details.MapsURL)
		if err != nil {
			log.Printf("Metadata scrape failed for %s: %v", details.PlaceID, err)
		} else {
			imageURL = meta.ImageURL
			stars = meta.Stars
		}
	}

	if imageURL == "" {
		for _, photo := range details.Photos {
			url, err := s.directory.FetchPhotoURL(ctx, photo.PhotoReference)
			if err != nil {
				log.Printf("Photo fetch failed for %s: %v", details.PlaceID, err)
				continue
			}
			imageURL = url
			break
		}
	}

	return imageURL, stars
}
