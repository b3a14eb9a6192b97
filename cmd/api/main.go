package main

// @title NYC BnB Finder API
// @version 1.0.0
// @description Поиск объявлений краткосрочной аренды в Нью-Йорке поверх PostGIS.
// @description
// @description Основные возможности:
// @description - Справочники районов и ценовых категорий
// @description - Поиск объявлений внутри района с фильтром по цене и близости к метро
// @description - HTML дашборд с картой

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/bnb-finder/docs/swagger"
	"github.com/bnb-finder/internal/config"
	httpDelivery "github.com/bnb-finder/internal/delivery/http"
	"github.com/bnb-finder/internal/delivery/http/handler"
	"github.com/bnb-finder/internal/domain/repository"
	"github.com/bnb-finder/internal/pkg/logger"
	"github.com/bnb-finder/internal/repository/cache"
	"github.com/bnb-finder/internal/repository/postgres"
	"github.com/bnb-finder/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting NYC BnB Finder")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("listings_table", cfg.Tables.Listings),
		zap.Float64("subway_radius_m", cfg.Search.SubwayRadiusMeters),
		zap.Duration("reference_cache_ttl", cfg.Cache.ReferenceCacheTTL),
	)

	// 3. Connect to PostGIS
	db, err := postgres.New(&cfg.Database, cfg.Tables, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis (optional)
	var (
		redisClient *cache.Redis
		cacheRepo   repository.CacheRepository
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		cacheRepo = cache.NewCacheRepository(redisClient)
		log.Info("Redis connected")
	} else {
		log.Info("Redis disabled, reference data cached in process only")
	}

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if version, err := db.PostGISVersion(ctx); err != nil {
		log.Warn("PostGIS version unavailable", zap.Error(err))
	} else {
		log.Info("PostGIS detected", zap.String("version", version))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	referenceRepo := postgres.NewReferenceRepository(db)
	listingRepo := postgres.NewListingRepository(db, cfg.Search.SubwayRadiusMeters)

	// 7. Initialize Use Cases
	referenceUC := usecase.NewReferenceUseCase(referenceRepo, cacheRepo, log, cfg.Cache.ReferenceCacheTTL)
	listingUC := usecase.NewListingUseCase(listingRepo, log)
	dashboardUC := usecase.NewDashboardUseCase(referenceUC, listingUC, log, cfg.Search.SubwayRadiusMeters)

	// 8. Initialize HTTP Handlers
	templates, err := handler.LoadDashboardTemplates(cfg.Server.TemplatesDir)
	if err != nil {
		log.Fatal("Failed to load dashboard templates",
			zap.String("dir", cfg.Server.TemplatesDir),
			zap.Error(err),
		)
	}

	checks := map[string]handler.HealthChecker{"postgres": db}
	if redisClient != nil {
		checks["redis"] = redisClient
	}

	dashboardHandler := handler.NewDashboardHandler(dashboardUC, templates, cfg.Map, log)
	referenceHandler := handler.NewReferenceHandler(referenceUC, log)
	listingHandler := handler.NewListingHandler(listingUC, dashboardUC, log)
	healthHandler := handler.NewHealthHandler(log, checks)

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		dashboardHandler,
		referenceHandler,
		listingHandler,
		healthHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
