package integration

import (
	"context"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	adaptershttp "github.com/mahin/ledgercore/internal/adapter/http"
	"github.com/mahin/ledgercore/internal/adapter/http/handler"
	"github.com/mahin/ledgercore/internal/adapter/repository/postgres"
	redisrepo "github.com/mahin/ledgercore/internal/adapter/repository/redis"
	"github.com/mahin/ledgercore/internal/fx"
	"github.com/mahin/ledgercore/internal/infrastructure/metrics"
	infraredis "github.com/mahin/ledgercore/internal/infrastructure/redis"
	"github.com/mahin/ledgercore/internal/usecase"
	"github.com/mahin/ledgercore/tests/testutil"
)

// Prometheus collectors register globally; create them once per test binary.
var (
	recorderOnce   sync.Once
	sharedRecorder *metrics.Metrics
)

func testRecorder() *metrics.Metrics {
	recorderOnce.Do(func() {
		sharedRecorder = metrics.New()
	})
	return sharedRecorder
}

// stack wires the full application against a test database.
type stack struct {
	Router      http.Handler
	AccountRepo *postgres.AccountRepository
	JournalRepo *postgres.JournalRepository
	AccountUC   *usecase.AccountUseCase
	JournalUC   *usecase.JournalUseCase
	TransferUC  *usecase.TransferUseCase
	RateUC      *usecase.RateUseCase
	ReportUC    *usecase.ReportUseCase
	SettingsUC  *usecase.SettingsUseCase
	cleanup     func()
}

func newStack(t *testing.T, testDB *testutil.TestDB) *stack {
	t.Helper()

	ctx := context.Background()
	pool := testDB.Pool

	txManager := postgres.NewTxManager(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	journalRepo := postgres.NewJournalRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	rateRepo := postgres.NewRateRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	paymentMethodRepo := postgres.NewPaymentMethodRepository(pool)
	retrier := postgres.NewRetrier(zerolog.Nop())
	idGen := postgres.NewULIDGenerator()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}

	cache := redisrepo.NewCache(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)
	recorder := testRecorder()

	resolver := fx.NewResolver(usecase.NewRateSource(rateRepo))
	aggregator := fx.NewAggregator(resolver)

	settingsUC := usecase.NewSettingsUseCase(settingsRepo)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, journalRepo, paymentMethodRepo, settingsUC, idGen, recorder)
	journalUC := usecase.NewJournalUseCase(txManager, accountRepo, journalRepo, settingsUC, idGen, recorder)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, transferRepo, journalRepo, settingsUC, resolver, idGen, retrier, recorder)
	rateUC := usecase.NewRateUseCase(rateRepo, cache, resolver)
	reportUC := usecase.NewReportUseCase(accountRepo, transferRepo, settingsUC, aggregator, recorder)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC),
		JournalHandler:   handler.NewJournalHandler(journalUC),
		TransferHandler:  handler.NewTransferHandler(transferUC),
		RateHandler:      handler.NewRateHandler(rateUC),
		ReportHandler:    handler.NewReportHandler(reportUC),
		SettingsHandler:  handler.NewSettingsHandler(settingsUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		Logger:           zerolog.Nop(),
	})

	return &stack{
		Router:      router,
		AccountRepo: accountRepo,
		JournalRepo: journalRepo,
		AccountUC:   accountUC,
		JournalUC:   journalUC,
		TransferUC:  transferUC,
		RateUC:      rateUC,
		ReportUC:    reportUC,
		SettingsUC:  settingsUC,
		cleanup:     func() { redisClient.Close() },
	}
}

func (s *stack) Close() {
	s.cleanup()
}
