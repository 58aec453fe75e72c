package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/infrastructure/postgres/generated"
)

// SettingsRepository implements usecase.SettingsRepository. The settings
// table holds a single row keyed by a constant.
type SettingsRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Get retrieves the settings singleton.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	row, err := r.queries.GetFinanceSettings(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}

		return nil, err
	}

	return &domain.Settings{
		BaseCurrency:          row.BaseCurrency,
		AllowNegativeBalances: row.AllowNegativeBalances,
		UpdatedAt:             row.UpdatedAt.Time,
	}, nil
}

// Upsert replaces the settings singleton.
func (r *SettingsRepository) Upsert(ctx context.Context, settings *domain.Settings) error {
	_, err := r.queries.UpsertFinanceSettings(ctx, generated.UpsertFinanceSettingsParams{
		BaseCurrency:          settings.BaseCurrency,
		AllowNegativeBalances: settings.AllowNegativeBalances,
		UpdatedAt:             timeToPgTimestamptz(settings.UpdatedAt),
	})

	return err
}
