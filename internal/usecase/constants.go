package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// RateCacheTTL is how long the exchange-rate list may be served from cache.
	// Rates are operator-entered; staleness in this window is accepted.
	RateCacheTTL = 5 * time.Minute

	// rateCacheKey is the cache key for the full exchange-rate list.
	rateCacheKey = "exchange_rates"
)
