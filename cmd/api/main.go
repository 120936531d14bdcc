package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/admin222aman/LocalFixConnect/internal/adapters/cache"
	"github.com/admin222aman/LocalFixConnect/internal/adapters/database"
	"github.com/admin222aman/LocalFixConnect/internal/adapters/memory"
	"github.com/admin222aman/LocalFixConnect/internal/api/handlers"
	"github.com/admin222aman/LocalFixConnect/internal/api/routes"
	"github.com/admin222aman/LocalFixConnect/internal/domain/repositories"
	"github.com/admin222aman/LocalFixConnect/internal/infrastructure/clients/postgres"
	"github.com/admin222aman/LocalFixConnect/internal/infrastructure/clients/redis"
	"github.com/admin222aman/LocalFixConnect/internal/infrastructure/observability"
	"github.com/admin222aman/LocalFixConnect/internal/seed"
	"github.com/admin222aman/LocalFixConnect/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize structured logging
	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	log.Info().
		Str("service", cfg.OTEL.ServiceName).
		Str("version", cfg.OTEL.ServiceVersion).
		Str("env", cfg.Env).
		Msg("Starting LocalFix Connect API")

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Select the storage backend. The volatile backend seeds itself and
	// has no connection to probe; the durable backend exposes its client
	// as the health pinger and is seeded only when empty.
	var storage repositories.Storage
	var pinger routes.HealthPinger

	if cfg.IsTestEnv() {
		memStore, err := memory.New(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize in-memory storage")
		}
		storage = memStore
		log.Info().Msg("In-memory storage initialized (volatile backend)")
	} else {
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()
		log.Info().Msg("PostgreSQL client initialized successfully")

		storage = database.New(pgClient)
		pinger = pgClient

		if err := seed.Ensure(ctx, storage); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed database")
		}
	}

	// Wrap storage with caching if Redis is enabled
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Redis client; continuing without cache")
		} else {
			defer redisClient.Close()
			storage = database.NewCachedStorage(storage, cache.NewRedisAdapter(redisClient), metrics)
			log.Info().Msg("Storage wrapped with Redis caching layer")
		}
	}

	// Initialize handlers
	usersHandler := handlers.NewUsersHandler(storage)
	categoriesHandler := handlers.NewCategoriesHandler(storage)
	providersHandler := handlers.NewProvidersHandler(storage)
	bookingsHandler := handlers.NewBookingsHandler(storage)
	reviewsHandler := handlers.NewReviewsHandler(storage)

	// Set up router
	router := routes.NewRouter(
		usersHandler,
		categoriesHandler,
		providersHandler,
		bookingsHandler,
		reviewsHandler,
		pinger,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("address", cfg.Server.Addr()).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
