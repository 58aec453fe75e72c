package fx_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahin/ledgercore/internal/fx"
)

func TestAggregator_Sum(t *testing.T) {
	source := mapRateSource{
		"USD/BDT": decimal.NewFromInt(100),
	}
	agg := fx.NewAggregator(fx.NewResolver(source))
	ctx := context.Background()

	t.Run("base currency items added unconditionally", func(t *testing.T) {
		summary, err := agg.Sum(ctx, []fx.Item{
			{Amount: decimal.NewFromInt(500), Currency: "BDT"},
			{Amount: decimal.NewFromInt(250), Currency: "BDT"},
		}, "BDT")
		require.NoError(t, err)
		assert.True(t, summary.Total.Equal(decimal.NewFromInt(750)))
		assert.False(t, summary.HasExclusions())
	})

	t.Run("convertible items are converted", func(t *testing.T) {
		summary, err := agg.Sum(ctx, []fx.Item{
			{Amount: decimal.NewFromInt(500), Currency: "BDT"},
			{Amount: decimal.NewFromInt(10), Currency: "USD"},
		}, "BDT")
		require.NoError(t, err)
		assert.True(t, summary.Total.Equal(decimal.NewFromInt(1500)), "got %s", summary.Total)
	})

	t.Run("unconvertible items excluded and flagged", func(t *testing.T) {
		summary, err := agg.Sum(ctx, []fx.Item{
			{Amount: decimal.NewFromInt(100), Currency: "USD"},
			{Amount: decimal.NewFromInt(200), Currency: "EUR"},
		}, "USD")
		require.NoError(t, err)

		assert.True(t, summary.Total.Equal(decimal.NewFromInt(100)), "got %s", summary.Total)
		assert.Equal(t, []string{"EUR → USD"}, summary.MissingRatePairs)
		assert.True(t, summary.ExcludedAmount.Equal(decimal.NewFromInt(200)))
		assert.True(t, summary.HasExclusions())
	})

	t.Run("missing pairs are deduplicated", func(t *testing.T) {
		summary, err := agg.Sum(ctx, []fx.Item{
			{Amount: decimal.NewFromInt(10), Currency: "EUR"},
			{Amount: decimal.NewFromInt(20), Currency: "EUR"},
			{Amount: decimal.NewFromInt(5), Currency: "GBP"},
		}, "USD")
		require.NoError(t, err)

		assert.Equal(t, []string{"EUR → USD", "GBP → USD"}, summary.MissingRatePairs)
		assert.True(t, summary.ExcludedAmount.Equal(decimal.NewFromInt(35)))
		assert.True(t, summary.Total.IsZero())
	})

	t.Run("empty input yields zero summary", func(t *testing.T) {
		summary, err := agg.Sum(ctx, nil, "USD")
		require.NoError(t, err)
		assert.True(t, summary.Total.IsZero())
		assert.False(t, summary.HasExclusions())
	})
}
