package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahin/ledgercore/internal/infrastructure/postgres/generated"
)

// PaymentMethodRepository implements usecase.PaymentMethodSource against the
// payment_methods table maintained by the wider CRM.
type PaymentMethodRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewPaymentMethodRepository creates a new PaymentMethodRepository.
func NewPaymentMethodRepository(pool *pgxpool.Pool) *PaymentMethodRepository {
	return &PaymentMethodRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Exists reports whether a payment method key is known.
func (r *PaymentMethodRepository) Exists(ctx context.Context, key string) (bool, error) {
	return r.queries.PaymentMethodExists(ctx, key)
}
