package fx_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/fx"
)

// mapRateSource is an in-memory RateSource keyed by "FROM/TO".
type mapRateSource map[string]decimal.Decimal

func (m mapRateSource) Rate(_ context.Context, from, to string) (decimal.Decimal, error) {
	if rate, ok := m[from+"/"+to]; ok {
		return rate, nil
	}
	return decimal.Zero, domain.ErrRateNotFound
}

func TestResolver_Convert(t *testing.T) {
	source := mapRateSource{
		"USD/BDT": decimal.NewFromFloat(109.5),
		"EUR/USD": decimal.NewFromFloat(1.08),
	}
	resolver := fx.NewResolver(source)
	ctx := context.Background()

	t.Run("identity conversion skips rate lookup", func(t *testing.T) {
		amount := decimal.RequireFromString("123.456789")
		got, err := resolver.Convert(ctx, amount, "XYZ", "XYZ")
		require.NoError(t, err)
		assert.True(t, got.Equal(amount), "identity conversion must not touch the amount")
	})

	t.Run("direct rate multiplies", func(t *testing.T) {
		got, err := resolver.Convert(ctx, decimal.NewFromInt(100), "USD", "BDT")
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(10950)), "got %s", got)
	})

	t.Run("inverse rate divides", func(t *testing.T) {
		got, err := resolver.Convert(ctx, decimal.NewFromInt(10950), "BDT", "USD")
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(100)), "got %s", got)
	})

	t.Run("missing pair is not convertible", func(t *testing.T) {
		_, err := resolver.Convert(ctx, decimal.NewFromInt(1), "GBP", "JPY")
		require.ErrorIs(t, err, domain.ErrNotConvertible)
	})
}

func TestResolver_ConversionSymmetry(t *testing.T) {
	source := mapRateSource{
		"USD/BDT": decimal.RequireFromString("109.73"),
	}
	resolver := fx.NewResolver(source)
	ctx := context.Background()

	amount := decimal.RequireFromString("250.50")

	// USD -> BDT uses the direct rate, BDT -> USD the inverse of the same
	// row; the round trip must return the original amount within decimal
	// division tolerance.
	there, err := resolver.Convert(ctx, amount, "USD", "BDT")
	require.NoError(t, err)

	back, err := resolver.Convert(ctx, there, "BDT", "USD")
	require.NoError(t, err)

	tolerance := decimal.RequireFromString("0.0000000001")
	assert.True(t, back.Sub(amount).Abs().LessThan(tolerance),
		"round trip drifted: sent %s, got back %s", amount, back)
}
