package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mahin/ledgercore/internal/adapter/http/handler"
	"github.com/mahin/ledgercore/internal/adapter/http/middleware"
	"github.com/mahin/ledgercore/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	JournalHandler   *handler.JournalHandler
	TransferHandler  *handler.TransferHandler
	RateHandler      *handler.RateHandler
	ReportHandler    *handler.ReportHandler
	SettingsHandler  *handler.SettingsHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	Logger           zerolog.Logger
	RateLimitRPS     float64
	RateLimitBurst   int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	if cfg.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		r.Use(limiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Post("/import", cfg.AccountHandler.Import)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Post("/{id}/archive", cfg.AccountHandler.Archive)
			r.Get("/{id}/entries", cfg.JournalHandler.ListByAccount)
			r.Get("/{id}/transfers", cfg.TransferHandler.ListByAccount)
			r.Get("/{id}/balance/history", cfg.JournalHandler.HistoricalBalance)
			r.Post("/{id}/recompute", cfg.JournalHandler.Recompute)
		})

		// Journal
		r.Route("/journal", func(r chi.Router) {
			r.Post("/", cfg.JournalHandler.PostEntry)
			r.Get("/ref/{refType}/{refID}", cfg.JournalHandler.ListByReference)
			r.Delete("/ref/{refType}/{refID}", cfg.JournalHandler.DeleteByReference)
			r.Post("/reconcile", cfg.JournalHandler.Reconcile)
		})

		// Transfers
		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Create)
			r.Get("/{id}", cfg.TransferHandler.Get)
			r.Get("/{id}/entries", cfg.TransferHandler.Entries)
		})

		// Exchange rates
		r.Route("/rates", func(r chi.Router) {
			r.Put("/", cfg.RateHandler.Upsert)
			r.Get("/", cfg.RateHandler.List)
			r.Get("/{from}/{to}", cfg.RateHandler.Get)
			r.Get("/convert", cfg.RateHandler.Convert)
		})

		// Reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/total-balance", cfg.ReportHandler.TotalBalance)
			r.Get("/transfer-volume", cfg.ReportHandler.TransferVolume)
			r.Post("/performance", cfg.ReportHandler.Performance)
		})

		// Settings
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", cfg.SettingsHandler.Get)
			r.Put("/", cfg.SettingsHandler.Update)
		})
	})

	return r
}
