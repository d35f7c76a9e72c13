package search_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"triplog/internal/api/controllers"
	"triplog/internal/repositories"
	"triplog/internal/services"
	"triplog/pkg/utils"
)

var Module = fx.Provide(
	provideEmbeddingClient,
	provideSemanticSearchRepo,
	provideEmbeddingService,
	provideSearchService,
	controllers.NewSearchController)

func provideEmbeddingClient() utils.EmbeddingClientInterface {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}
	model := os.Getenv("OPENAI_EMBEDDING_MODEL")

	return utils.NewOpenAIEmbeddingClient(apiKey, model)
}

func provideSemanticSearchRepo(db *gorm.DB) repositories.SemanticSearchRepository {
	return repositories.NewSemanticSearchRepository(db)
}

func provideEmbeddingService(
	embedder utils.EmbeddingClientInterface,
	contentRepo repositories.ContentRepository,
) services.EmbeddingServiceInterface {
	return services.NewEmbeddingService(embedder, contentRepo)
}

func provideSearchService(
	embedder utils.EmbeddingClientInterface,
	semantic repositories.SemanticSearchRepository,
	pins repositories.PinRepository,
) services.SearchServiceInterface {
	return services.NewSearchService(embedder, semantic, pins)
}
