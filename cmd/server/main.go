package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/finlane/payledger/internal/adapter/http"
	"github.com/finlane/payledger/internal/adapter/http/handler"
	postgresRepo "github.com/finlane/payledger/internal/adapter/repository/postgres"
	redisRepo "github.com/finlane/payledger/internal/adapter/repository/redis"
	"github.com/finlane/payledger/internal/infrastructure/auth"
	"github.com/finlane/payledger/internal/infrastructure/config"
	"github.com/finlane/payledger/internal/infrastructure/logger"
	"github.com/finlane/payledger/internal/infrastructure/metrics"
	"github.com/finlane/payledger/internal/infrastructure/notifier"
	"github.com/finlane/payledger/internal/infrastructure/postgres"
	"github.com/finlane/payledger/internal/infrastructure/redis"
	"github.com/finlane/payledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns, cfg.DialTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Apply migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, cfg.DialTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Shared infrastructure, built once and passed explicitly
	appMetrics := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	broker := notifier.NewBroker(appMetrics, appLogger)

	// Repositories
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Use cases
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, broker, appMetrics, appLogger)
	statsUC := usecase.NewStatsUseCase(paymentRepo)
	exportUC := usecase.NewExportUseCase(paymentRepo, cfg.ExportMaxRows, appMetrics)
	userUC := usecase.NewUserUseCase(userRepo)

	// Handlers
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:      handler.NewAuthHandler(userUC, jwtManager, appMetrics),
		PaymentHandler:   handler.NewPaymentHandler(paymentUC, statsUC, exportUC),
		UserHandler:      handler.NewUserHandler(userUC),
		EventsHandler:    handler.NewEventsHandler(broker),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		Logger:           appLogger,
		LoginRateLimit:   cfg.LoginRateLimit,
		LoginRateBurst:   cfg.LoginRateBurst,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
