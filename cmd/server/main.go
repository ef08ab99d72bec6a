// @title           Beer Analyzer Backend API
// @version         1.0.0
// @description     Backend API for the beer photo analyzer: anonymous auth, photo upload, Gemini vision analysis, and a live-updating personal beer list.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the Supabase JWT.

package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/38tter/beer-analyzer-sub000/internal/config"
	"github.com/38tter/beer-analyzer-sub000/internal/database"
	"github.com/38tter/beer-analyzer-sub000/internal/gemini"
	"github.com/38tter/beer-analyzer-sub000/internal/handlers"
	"github.com/38tter/beer-analyzer-sub000/internal/middleware"
	"github.com/38tter/beer-analyzer-sub000/internal/remoteconfig"
	"github.com/38tter/beer-analyzer-sub000/internal/services"
	"github.com/38tter/beer-analyzer-sub000/internal/store"
	"github.com/38tter/beer-analyzer-sub000/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// The Gemini key normally lives in remote config so it can be rotated
	// without a deploy; the env var is the fallback.
	apiKey := cfg.GeminiAPIKey
	if cfg.RemoteConfigURL != "" {
		key, err := remoteconfig.NewClient(cfg.RemoteConfigURL).FetchGeminiAPIKey()
		if err != nil {
			log.Printf("Warning: remote config fetch failed, falling back to env key: %v", err)
		} else {
			apiKey = key
		}
	}

	ctx := context.Background()
	lang := gemini.ParseLanguage(cfg.GeminiLanguage)
	geminiClient, err := gemini.NewClient(ctx, apiKey, cfg.GeminiModel, lang)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}
	authClient := supabase.NewAuthClient(cfg.SupabaseURL, cfg.SupabasePublishableKey)

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer migrator.Close()
	if err := migrator.Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")

	repo := store.NewPostgresRepository(migrator.DB(), cfg.AppID)
	beerStore := store.NewBeerStore(repo, cfg.PageSize)

	analyzeService := services.NewAnalyzeService(storageClient, geminiClient, beerStore)

	authHandler := handlers.NewAuthHandler(authClient)
	analyzeHandler := handlers.NewAnalyzeHandler(analyzeService)
	beersHandler := handlers.NewBeersHandler(beerStore)
	pairingHandler := handlers.NewPairingHandler(beerStore, geminiClient)
	streamHandler := handlers.NewStreamHandler(beerStore)

	router := gin.Default()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")
	api.POST("/auth/anonymous", authHandler.SignInAnonymously)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))
	authed.POST("/beers/analyze", analyzeHandler.Analyze)
	authed.GET("/beers", beersHandler.List)
	authed.POST("/beers/more", beersHandler.LoadMore)
	authed.GET("/beers/stream", streamHandler.Stream)
	authed.GET("/beers/:beer_id/pairing", pairingHandler.Suggest)
	authed.PUT("/beers/:beer_id", beersHandler.Update)
	authed.POST("/beers/:beer_id/drunk", beersHandler.ToggleDrunk)
	authed.DELETE("/beers/:beer_id", beersHandler.Delete)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
