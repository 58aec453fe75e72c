package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/mahin/ledgercore/internal/adapter/http"
	"github.com/mahin/ledgercore/internal/adapter/http/handler"
	postgresRepo "github.com/mahin/ledgercore/internal/adapter/repository/postgres"
	redisRepo "github.com/mahin/ledgercore/internal/adapter/repository/redis"
	"github.com/mahin/ledgercore/internal/fx"
	"github.com/mahin/ledgercore/internal/infrastructure/config"
	"github.com/mahin/ledgercore/internal/infrastructure/logger"
	"github.com/mahin/ledgercore/internal/infrastructure/metrics"
	"github.com/mahin/ledgercore/internal/infrastructure/postgres"
	"github.com/mahin/ledgercore/internal/infrastructure/redis"
	"github.com/mahin/ledgercore/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(log, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

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
	journalRepo := postgresRepo.NewJournalRepository(pool)
	transferRepo := postgresRepo.NewTransferRepository(pool)
	rateRepo := postgresRepo.NewRateRepository(pool)
	settingsRepo := postgresRepo.NewSettingsRepository(pool)
	paymentMethodRepo := postgresRepo.NewPaymentMethodRepository(pool)
	retrier := postgresRepo.NewRetrier(log)
	idGen := postgresRepo.NewULIDGenerator()

	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Metrics
	recorder := metrics.New()

	// Currency conversion
	resolver := fx.NewResolver(usecase.NewRateSource(rateRepo))
	aggregator := fx.NewAggregator(resolver)

	// Initialize use cases
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, journalRepo, paymentMethodRepo, settingsUC, idGen, recorder)
	journalUC := usecase.NewJournalUseCase(txManager, accountRepo, journalRepo, settingsUC, idGen, recorder)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, transferRepo, journalRepo, settingsUC, resolver, idGen, retrier, recorder)
	rateUC := usecase.NewRateUseCase(rateRepo, cache, resolver)
	reportUC := usecase.NewReportUseCase(accountRepo, transferRepo, settingsUC, aggregator, recorder)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	journalHandler := handler.NewJournalHandler(journalUC)
	transferHandler := handler.NewTransferHandler(transferUC)
	rateHandler := handler.NewRateHandler(rateUC)
	reportHandler := handler.NewReportHandler(reportUC)
	settingsHandler := handler.NewSettingsHandler(settingsUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		JournalHandler:   journalHandler,
		TransferHandler:  transferHandler,
		RateHandler:      rateHandler,
		ReportHandler:    reportHandler,
		SettingsHandler:  settingsHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		Logger:           log,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
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
