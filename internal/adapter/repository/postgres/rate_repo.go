package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/infrastructure/postgres/generated"
)

// RateRepository implements usecase.RateRepository.
type RateRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewRateRepository creates a new RateRepository.
func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Upsert stores a rate, replacing any previous row for the ordered pair.
func (r *RateRepository) Upsert(ctx context.Context, rate *domain.ExchangeRate) error {
	_, err := r.queries.UpsertExchangeRate(ctx, generated.UpsertExchangeRateParams{
		FromCurrency: rate.FromCurrency,
		ToCurrency:   rate.ToCurrency,
		Rate:         decimalToNumeric(rate.Rate),
		UpdatedAt:    timeToPgTimestamptz(rate.UpdatedAt),
	})

	return err
}

// Get retrieves the stored rate for the exact ordered pair.
func (r *RateRepository) Get(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	row, err := r.queries.GetExchangeRate(ctx, generated.GetExchangeRateParams{
		FromCurrency: from,
		ToCurrency:   to,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRateNotFound
		}

		return nil, err
	}

	return rowToRate(row), nil
}

// List lists all stored rates.
func (r *RateRepository) List(ctx context.Context) ([]*domain.ExchangeRate, error) {
	rows, err := r.queries.ListExchangeRates(ctx)
	if err != nil {
		return nil, err
	}

	rates := make([]*domain.ExchangeRate, 0, len(rows))
	for _, row := range rows {
		rates = append(rates, rowToRate(row))
	}

	return rates, nil
}

func rowToRate(row generated.ExchangeRate) *domain.ExchangeRate {
	return &domain.ExchangeRate{
		FromCurrency: row.FromCurrency,
		ToCurrency:   row.ToCurrency,
		Rate:         numericToDecimal(row.Rate),
		UpdatedAt:    row.UpdatedAt.Time,
	}
}
