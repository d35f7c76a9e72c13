package services

import (
	"context"
	"log"
	"strings"
	"sync"

	"triplog/internal/models/db_models"
	"triplog/internal/models/request_models"
	"triplog/internal/repositories"
	"triplog/pkg/utils"

	"github.com/google/uuid"
)

// ExtractedLocation is the validated form of one extractor entry.
// Unpinned marks mentions the model could not tie to a specific place;
// those become Pins without a PlaceRecord and trigger no lookups.
type ExtractedLocation struct {
	Name           string
	Location       string
	Classification string
	Title          string
	AdditionalInfo string
	Lat            *float64
	Long           *float64
	Unpinned       bool
}

// LocationFromPayload validates one raw extractor entry at the
// boundary. Null coordinates mean "no specific place".
func LocationFromPayload(p request_models.ExtractedLocationPayload) ExtractedLocation {
	return ExtractedLocation{
		Name:           strings.TrimSpace(p.Name),
		Location:       strings.TrimSpace(p.Location),
		Classification: p.Classification,
		Title:          p.Title,
		AdditionalInfo: p.AdditionalInfo,
		Lat:            p.Lat,
		Long:           p.Long,
		Unpinned:       p.Lat == nil || p.Long == nil,
	}
}

// PinOutcome reports one mention's result: either a created Pin or the
// error that stopped it. Siblings never abort each other.
type PinOutcome struct {
	Location ExtractedLocation
	Pin      *db_models.Pin
	Err      error
}

type EnrichmentServiceInterface interface {
	Enrich(ctx context.Context, contentID uuid.UUID, userID string, locations []ExtractedLocation) ([]PinOutcome, error)
	EnrichFromRequest(ctx context.Context, contentID uuid.UUID, userID string, req request_models.EnrichContentRequest) ([]PinOutcome, error)
}

type EnrichmentService struct {
	resolver    PlaceResolverServiceInterface
	extractor   utils.LocationExtractorInterface
	contentRepo repositories.ContentRepository
	pinRepo     repositories.PinRepository
}

func NewEnrichmentService(
	resolver PlaceResolverServiceInterface,
	extractor utils.LocationExtractorInterface,
	contentRepo repositories.ContentRepository,
	pinRepo repositories.PinRepository,
) EnrichmentServiceInterface {
	return &EnrichmentService{
		resolver:    resolver,
		extractor:   extractor,
		contentRepo: contentRepo,
		pinRepo:     pinRepo,
	}
}

// EnrichFromRequest runs the extractor when the caller sent a raw
// caption instead of pre-extracted locations.
func (s *EnrichmentService) EnrichFromRequest(ctx context.Context, contentID uuid.UUID, userID string, req request_models.EnrichContentRequest) ([]PinOutcome, error) {
	payloads := req.Locations
	if len(payloads) == 0 && strings.TrimSpace(req.Caption) != "" {
		extracted, err := s.extractor.ExtractLocations(ctx, req.Caption)
		if err != nil {
			log.Printf("Error extracting locations: %v", err)
			return nil, utils.ErrExtractorFailure
		}
		payloads = extracted
	}

	locations := make([]ExtractedLocation, 0, len(payloads))
	for _, p := range payloads {
		locations = append(locations, LocationFromPayload(p))
	}

	return s.Enrich(ctx, contentID, userID, locations)
}

func (s *EnrichmentService) Enrich(ctx context.Context, contentID uuid.UUID, userID string, locations []ExtractedLocation) ([]PinOutcome, error) {
	content, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		log.Printf("Error fetching content %s: %v", contentID, err)
		return nil, utils.ErrDatabaseError
	}
	if content == nil {
		return nil, utils.ErrContentNotFound
	}

	outcomes := make([]PinOutcome, len(locations))
	if len(locations) == 0 {
		return outcomes, nil
	}

	// Sibling mentions resolve concurrently; the cache's unique index
	// is the only shared state between them.
	var wg sync.WaitGroup
	for i, loc := range locations {
		wg.Add(1)
		go func(i int, loc ExtractedLocation) {
			defer wg.Done()
			outcomes[i] = s.resolveOne(ctx, contentID, userID, loc)
		}(i, loc)
	}
	wg.Wait()

	return outcomes, nil
}

func (s *EnrichmentService) resolveOne(ctx context.Context, contentID uuid.UUID, userID string, loc ExtractedLocation) PinOutcome {
	outcome := PinOutcome{Location: loc}

	pin := &db_models.Pin{
		Name:        loc.Name,
		Category:    loc.Classification,
		Description: loc.AdditionalInfo,
		ContentID:   contentID,
	}

	if !loc.Unpinned {
		query := strings.TrimSpace(loc.Name + " " + loc.Location)
		record, err := s.resolver.Resolve(ctx, query, userID)
		if err != nil {
			outcome.Err = err
			return outcome
		}
		pin.PlaceRecordID = &record.ID
	}

	if err := s.pinRepo.CreatePin(ctx, pin); err != nil {
		log.Printf("Error creating pin for content %s: %v", contentID, err)
		outcome.Err = utils.ErrDatabaseError
		return outcome
	}

	outcome.Pin = pin
	return outcome
}
