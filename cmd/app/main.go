package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"triplog/cmd/fx/contents_fx"
	"triplog/cmd/fx/db_fx"
	"triplog/cmd/fx/enrichment_fx"
	"triplog/cmd/fx/memcache_fx"
	"triplog/cmd/fx/places_fx"
	"triplog/cmd/fx/search_fx"
	"triplog/internal/api/controllers"
	"triplog/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		contents_fx.Module,
		places_fx.Module,
		enrichment_fx.Module,
		search_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server on :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	contentsController *controllers.ContentsController,
	searchController *controllers.SearchController,
	placesController *controllers.PlacesController) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, contentsController, searchController, placesController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	contentsController *controllers.ContentsController,
	searchController *controllers.SearchController,
	placesController *controllers.PlacesController) {

	contents := r.Group("/contents", middleware.JWTAuthMiddleware())
	contents.POST("", contentsController.CreateContent)
	contents.POST("/:id/enrich", contentsController.EnrichContent)
	contents.POST("/:id/index", contentsController.IndexContent)
	contents.GET("/:id/pins", contentsController.ListPins)

	r.GET("/search", middleware.JWTAuthMiddleware(), searchController.Search)

	places := r.Group("/places", middleware.JWTAuthMiddleware())
	places.GET("/:googlePlaceId", placesController.GetPlace)

	r.POST("/admin/places/refresh", middleware.JWTAuthMiddleware(), placesController.RefreshStalePlaces)
}
