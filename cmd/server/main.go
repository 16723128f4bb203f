package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/kaveh/bankbook/internal/adapter/http"
	"github.com/kaveh/bankbook/internal/adapter/http/handler"
	"github.com/kaveh/bankbook/internal/adapter/http/middleware"
	postgresRepo "github.com/kaveh/bankbook/internal/adapter/repository/postgres"
	redisRepo "github.com/kaveh/bankbook/internal/adapter/repository/redis"
	"github.com/kaveh/bankbook/internal/infrastructure/config"
	"github.com/kaveh/bankbook/internal/infrastructure/logger"
	"github.com/kaveh/bankbook/internal/infrastructure/metrics"
	"github.com/kaveh/bankbook/internal/infrastructure/postgres"
	"github.com/kaveh/bankbook/internal/infrastructure/redis"
	"github.com/kaveh/bankbook/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)
	appMetrics := metrics.New()

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, idGen, cache, cfg.CacheTTL, appMetrics)
	txnUC := usecase.NewTransactionUseCase(txManager, accountRepo, txnRepo, idGen, cache, retrier, appMetrics)
	checkUC := usecase.NewCheckUseCase(accountRepo, txnRepo, cfg.UpcomingCheckDays)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	txnHandler := handler.NewTransactionHandler(txnUC)
	checkHandler := handler.NewCheckHandler(checkUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Rate limiter with periodic reset
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			rateLimiter.CleanupLimiters()
		}
	}()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		TransactionHandler: txnHandler,
		CheckHandler:       checkHandler,
		HealthHandler:      healthHandler,
		Logger:             appLogger,
		RateLimiter:        rateLimiter,
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

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
