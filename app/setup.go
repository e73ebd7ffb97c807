package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/studyshare-api/api"
	"github.com/sahilchouksey/studyshare-api/config"
	"github.com/sahilchouksey/studyshare-api/database"
	"github.com/sahilchouksey/studyshare-api/router"
	"github.com/sahilchouksey/studyshare-api/services"
	"github.com/sahilchouksey/studyshare-api/services/cron"
	"github.com/sahilchouksey/studyshare-api/utils/cache"
	"github.com/sahilchouksey/studyshare-api/utils/metrics"
	"github.com/sahilchouksey/studyshare-api/utils/middleware"
)

// OpenStore returns the storage selected by STORAGE_DRIVER with its schema ready
func OpenStore(env *config.EnvironmentVariable) (database.Storage, error) {
	if env.STORAGE_DRIVER == "memory" {
		log.Warn("Using in-memory storage, data is lost on restart")
		return database.NewMemoryStore(), nil
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		print("If not running, run the following command:\n")
		print("  make docker-up   (for Docker setup)\n")
		print("  make db-up       (for local PostgreSQL)\n")
		return nil, err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		print("Error running migrations:\n")
		store.Close()
		return nil, err
	}
	return store, nil
}

// OpenCache connects to Redis when REDIS_URL is set and falls back to an
// in-process cache otherwise or when Redis is unreachable
func OpenCache(env *config.EnvironmentVariable) cache.Cache {
	if env.REDIS_URL != "" {
		redisCache, err := cache.NewRedisCache(env.REDIS_URL)
		if err == nil {
			log.Info("Connected to Redis cache")
			return redisCache
		}
		log.Warnf("Failed to connect to Redis: %v. Falling back to in-memory cache.", err)
	}
	return cache.NewMemoryCache(env.CACHE_TTL)
}

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	store, err := OpenStore(getEnv)
	if err != nil {
		return err
	}

	appCache := OpenCache(getEnv)
	appMetrics := metrics.New()
	catalog := services.NewCatalogService(store, appCache, appMetrics, getEnv.CACHE_TTL)

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if getEnv.CRON_ENABLED {
		cronManager = cron.NewCronManager(catalog)
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, just log the warning
			log.Warnf("Failed to start cron jobs: %v", err)
			cronManager = nil
		}
	}

	// Defer Closing DB, cache and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if err := appCache.Close(); err != nil {
			log.Warnf("Failed to close cache: %v", err)
		}
		if err := store.Close(); err != nil {
			log.Warnf("Failed to close storage: %v", err)
		}
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT), getEnv.BODY_LIMIT_BYTES)
	app := server.GetEngine()

	// Attach Middleware
	app.Use(appMetrics.Middleware())
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: getEnv.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   time.Minute,
	})

	// Setup Routes
	router.SetupRoutes(app, router.Dependencies{
		Catalog:        catalog,
		Cache:          appCache,
		Metrics:        appMetrics,
		IdempotencyTTL: getEnv.IDEMPOTENCY_TTL,
	})

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Errorf("Server shutdown failed: %v", err)
		}
	}()

	// Get the PORT & Start the Server
	return server.Run()

}
