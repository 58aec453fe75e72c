// Package fx resolves currency conversions against a sparse table of
// operator-entered pairwise rates and aggregates mixed-currency amounts
// into a single base currency.
package fx

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/domain"
)

// RateSource looks up a stored rate for an ordered currency pair. It returns
// domain.ErrRateNotFound when no row exists for that exact direction.
type RateSource interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// Resolver converts amounts between currencies. The rate table is a set of
// directed edges; only the direct edge and its inverse are consulted. No
// multi-hop path-finding: a missing pair is reported, never guessed.
type Resolver struct {
	source RateSource
}

// NewResolver creates a new Resolver.
func NewResolver(source RateSource) *Resolver {
	return &Resolver{source: source}
}

// Convert converts amount from one currency to another.
//
// Identity conversions return the amount untouched, with no rate lookup and
// no rounding. Otherwise the direct pair is tried first (multiply), then the
// inverse pair (divide). When neither exists the error wraps
// domain.ErrNotConvertible; the caller decides the fallback policy.
func (r *Resolver) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	rate, err := r.source.Rate(ctx, from, to)
	if err == nil {
		return amount.Mul(rate), nil
	}
	if !errors.Is(err, domain.ErrRateNotFound) {
		return decimal.Zero, err
	}

	inverse, err := r.source.Rate(ctx, to, from)
	if err == nil {
		return amount.Div(inverse), nil
	}
	if !errors.Is(err, domain.ErrRateNotFound) {
		return decimal.Zero, err
	}

	return decimal.Zero, fmt.Errorf("%w: %s → %s", domain.ErrNotConvertible, from, to)
}
