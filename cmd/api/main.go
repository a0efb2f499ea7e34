package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/store_api/internal/cache"
	"github.com/GTDGit/store_api/internal/config"
	"github.com/GTDGit/store_api/internal/database"
	"github.com/GTDGit/store_api/internal/handler"
	"github.com/GTDGit/store_api/internal/middleware"
	"github.com/GTDGit/store_api/internal/repository"
	"github.com/GTDGit/store_api/internal/service"
)

// main is the application entrypoint for the store API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting store api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := database.MigrateUp(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis (optional)
	var catalogCache service.CatalogCache
	var redisPinger handler.Pinger
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis connection failed - catalog cache disabled")
		} else {
			defer redisClient.Close()
			catalogCache = cache.NewCatalogCache(redisClient, cfg.Catalog.CacheTTL)
			redisPinger = handler.PingFunc(redisClient.Ping)
			log.Info().Msg("redis connected successfully")
		}
	}

	// 3c. Initialize S3 image storage (optional)
	var imageStorage service.ImageStorage
	if cfg.S3.Enabled() {
		s3Svc, err := service.NewS3Service(context.Background(), &cfg.S3)
		if err != nil {
			log.Warn().Err(err).Msg("S3 service initialization failed - image upload will be disabled")
		} else {
			imageStorage = s3Svc
		}
	}

	// 4. Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// 5. Initialize services
	catalogSvc := service.NewCatalogService(productRepo, categoryRepo, catalogCache, cfg.Catalog.PageSize, cfg.Catalog.MaxPageSize)
	productMgmtSvc := service.NewProductManagementService(productRepo, categoryRepo, catalogCache, imageStorage)
	orderSvc := service.NewOrderService(orderRepo, productRepo)

	// 6. Initialize handlers
	media := handler.MediaConfig{BaseURL: cfg.MediaBaseURL, Path: cfg.MediaPath}
	handlers := &handler.Handlers{
		Health:            handler.NewHealthHandler(db, redisPinger),
		Catalog:           handler.NewCatalogHandler(catalogSvc, media),
		ProductManagement: handler.NewProductManagementHandler(productMgmtSvc, media),
		Order:             handler.NewOrderHandler(orderSvc),
	}

	// 7. Initialize middleware
	limiter := middleware.NewInvalidAuthRateLimiter(middleware.DefaultInvalidAuthLimit, middleware.DefaultInvalidAuthWindow)
	jwtMw := middleware.NewJWTMiddleware(cfg.JWTSecret, limiter)

	// 8. Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	router.Use(middleware.LoggingMiddleware())
	router.MaxMultipartMemory = service.MaxImageSize + 1<<20
	handler.SetupRoutes(router, handlers, jwtMw)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
