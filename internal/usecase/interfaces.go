package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ListByStatus(ctx context.Context, status domain.AccountStatus) ([]*domain.Account, error)
}

// JournalRepository defines data access for journal entries. A nil
// Transaction runs the operation against the pool instead.
type JournalRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error
	// DeleteByRef removes every entry matching (refType, refID) and returns
	// the distinct account IDs that were touched.
	DeleteByRef(ctx context.Context, tx Transaction, refType, refID string) ([]string, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.JournalEntry, error)
	ListByRef(ctx context.Context, refType, refID string) ([]*domain.JournalEntry, error)
	SumByAccount(ctx context.Context, tx Transaction, accountID string) (decimal.Decimal, error)
	SumByAccountAtTime(ctx context.Context, accountID string, at time.Time) (decimal.Decimal, error)
}

// TransferRepository defines data access for transfers.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, transfer *domain.Transfer) error
	GetByID(ctx context.Context, id string) (*domain.Transfer, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.Transfer, error)
}

// RateRepository defines data access for exchange rates.
type RateRepository interface {
	Upsert(ctx context.Context, rate *domain.ExchangeRate) error
	Get(ctx context.Context, from, to string) (*domain.ExchangeRate, error)
	List(ctx context.Context) ([]*domain.ExchangeRate, error)
}

// SettingsRepository defines data access for the finance settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, settings *domain.Settings) error
}

// SettingsProvider returns the effective finance settings, creating the
// defaults on first read.
type SettingsProvider interface {
	Get(ctx context.Context) (*domain.Settings, error)
}

// PaymentMethodSource checks existence of externally managed payment-method
// keys referenced by accounts.
type PaymentMethodSource interface {
	Exists(ctx context.Context, key string) (bool, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// MetricsRecorder counts domain events. Implementations must be safe for
// concurrent use.
type MetricsRecorder interface {
	AccountCreated()
	EntryPosted(kind domain.EntryKind)
	EntriesDeleted(count int)
	TransferCreated()
	BalanceRecomputed()
	ConversionMiss(pair string)
}
