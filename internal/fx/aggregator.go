package fx

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/domain"
)

// Item is one monetary value to aggregate: an account balance, a
// transaction amount, a payout.
type Item struct {
	Amount   decimal.Decimal
	Currency string
}

// Summary is the result of aggregating mixed-currency items into a base
// currency. Items with no usable rate are excluded from Total and surfaced
// through MissingRatePairs and ExcludedAmount; consumers must render the
// exclusions, not present Total as complete.
type Summary struct {
	Total            decimal.Decimal
	MissingRatePairs []string
	ExcludedAmount   decimal.Decimal
}

// HasExclusions reports whether any item could not be converted.
func (s Summary) HasExclusions() bool {
	return len(s.MissingRatePairs) > 0
}

// Aggregator sums mixed-currency items into one base-currency total.
// Every reporting path shares this one implementation so that conversion
// and exclusion semantics cannot drift apart.
type Aggregator struct {
	resolver *Resolver
}

// NewAggregator creates a new Aggregator.
func NewAggregator(resolver *Resolver) *Aggregator {
	return &Aggregator{resolver: resolver}
}

// Sum aggregates items into baseCurrency. Base-currency items are added
// unconditionally. Other items are converted via the resolver; items the
// resolver cannot convert are excluded and flagged. Only genuine lookup
// failures (not missing rates) error out.
func (a *Aggregator) Sum(ctx context.Context, items []Item, baseCurrency string) (Summary, error) {
	summary := Summary{
		Total:          decimal.Zero,
		ExcludedAmount: decimal.Zero,
	}

	seen := make(map[string]bool)

	for _, item := range items {
		if item.Currency == baseCurrency {
			summary.Total = summary.Total.Add(item.Amount)
			continue
		}

		converted, err := a.resolver.Convert(ctx, item.Amount, item.Currency, baseCurrency)
		if err == nil {
			summary.Total = summary.Total.Add(converted)
			continue
		}

		if !errors.Is(err, domain.ErrNotConvertible) {
			return Summary{}, err
		}

		pair := fmt.Sprintf("%s → %s", item.Currency, baseCurrency)
		if !seen[pair] {
			seen[pair] = true
			summary.MissingRatePairs = append(summary.MissingRatePairs, pair)
		}

		summary.ExcludedAmount = summary.ExcludedAmount.Add(item.Amount)
	}

	return summary, nil
}
