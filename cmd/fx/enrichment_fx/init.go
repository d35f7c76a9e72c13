package enrichment_fx

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/fx"

	"triplog/internal/repositories"
	"triplog/internal/services"
	"triplog/pkg/utils"
)

var Module = fx.Provide(
	provideLocationExtractor,
	provideEnrichmentService)

func provideLocationExtractor() (utils.LocationExtractorInterface, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY is required")
	}
	model := os.Getenv("GEMINI_MODEL")

	extractor, err := utils.NewGeminiLocationExtractor(apiKey, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create location extractor: %w", err)
	}
	return extractor, nil
}

func provideEnrichmentService(
	resolver services.PlaceResolverServiceInterface,
	extractor utils.LocationExtractorInterface,
	contentRepo repositories.ContentRepository,
	pinRepo repositories.PinRepository,
) services.EnrichmentServiceInterface {
	return services.NewEnrichmentService(resolver, extractor, contentRepo, pinRepo)
}
