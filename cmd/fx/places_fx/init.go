package places_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"triplog/internal/api/controllers"
	"triplog/internal/repositories"
	"triplog/internal/services"
	mem "triplog/pkg/memcache"
)

var Module = fx.Provide(
	provideDirectoryClient,
	provideMetadataResolver,
	providePlaceCacheRepo,
	provideResolverService,
	providePlaceService,
	provideRefreshService,
	controllers.NewPlacesController)

func provideDirectoryClient() services.PlaceDirectoryClient {
	return services.NewGooglePlacesClient()
}

func provideMetadataResolver() services.MediaMetadataResolver {
	return services.NewPageMetadataResolver()
}

func providePlaceCacheRepo(db *gorm.DB) repositories.PlaceCacheRepository {
	return repositories.NewPlaceCacheRepository(db)
}

func provideResolverService(
	directory services.PlaceDirectoryClient,
	media services.MediaMetadataResolver,
	cache repositories.PlaceCacheRepository,
	sessions mem.SessionTokenStore,
) services.PlaceResolverServiceInterface {
	return services.NewPlaceResolverService(directory, media, cache, sessions)
}

func providePlaceService(cache repositories.PlaceCacheRepository) services.PlaceServiceInterface {
	return services.NewPlaceService(cache)
}

func provideRefreshService(
	cache repositories.PlaceCacheRepository,
	directory services.PlaceDirectoryClient,
) services.RefreshServiceInterface {
	return services.NewRefreshService(cache, directory, services.DefaultStaleAfter, services.DefaultRefreshDelay)
}
