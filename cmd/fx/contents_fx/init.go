package contents_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"triplog/internal/api/controllers"
	"triplog/internal/repositories"
	"triplog/internal/services"
)

var Module = fx.Provide(
	provideContentRepo,
	providePinRepo,
	provideContentService,
	controllers.NewContentsController)

func provideContentRepo(db *gorm.DB) repositories.ContentRepository {
	return repositories.NewContentRepository(db)
}

func providePinRepo(db *gorm.DB) repositories.PinRepository {
	return repositories.NewPinRepository(db)
}

func provideContentService(
	contentRepo repositories.ContentRepository,
	pinRepo repositories.PinRepository,
) services.ContentServiceInterface {
	return services.NewContentService(contentRepo, pinRepo)
}
