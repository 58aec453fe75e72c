package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/fx"
)

// RateUseCase manages the operator-entered exchange-rate table and exposes
// conversions over it.
type RateUseCase struct {
	rateRepo RateRepository
	cache    Cache
	resolver *fx.Resolver
}

// NewRateUseCase creates a new RateUseCase.
func NewRateUseCase(rateRepo RateRepository, cache Cache, resolver *fx.Resolver) *RateUseCase {
	return &RateUseCase{
		rateRepo: rateRepo,
		cache:    cache,
		resolver: resolver,
	}
}

// UpsertRateInput represents input for storing an exchange rate.
type UpsertRateInput struct {
	FromCurrency string
	ToCurrency   string
	Rate         decimal.Decimal
}

// UpsertRate stores the rate for an ordered currency pair, replacing any
// previous row for that pair, and invalidates the cached rate list.
func (uc *RateUseCase) UpsertRate(ctx context.Context, input UpsertRateInput) (*domain.ExchangeRate, error) {
	rate := &domain.ExchangeRate{
		FromCurrency: input.FromCurrency,
		ToCurrency:   input.ToCurrency,
		Rate:         input.Rate,
		UpdatedAt:    time.Now().UTC(),
	}

	if err := rate.Validate(); err != nil {
		return nil, err
	}

	if err := uc.rateRepo.Upsert(ctx, rate); err != nil {
		return nil, err
	}

	// Cache invalidation failure only extends staleness within the TTL.
	_ = uc.cache.Delete(ctx, rateCacheKey)

	return rate, nil
}

// GetRate returns the stored rate for the exact ordered pair.
func (uc *RateUseCase) GetRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	return uc.rateRepo.Get(ctx, from, to)
}

// ListRates returns all stored rates, served from cache when fresh.
func (uc *RateUseCase) ListRates(ctx context.Context) ([]*domain.ExchangeRate, error) {
	if cached, err := uc.cache.Get(ctx, rateCacheKey); err == nil && cached != nil {
		var rates []*domain.ExchangeRate
		if err := json.Unmarshal(cached, &rates); err == nil {
			return rates, nil
		}
	}

	rates, err := uc.rateRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(rates); err == nil {
		_ = uc.cache.Set(ctx, rateCacheKey, payload, RateCacheTTL)
	}

	return rates, nil
}

// Convert converts an amount between currencies using the stored rate
// table (direct, then inverse). Wraps domain.ErrNotConvertible when no
// usable rate exists.
func (uc *RateUseCase) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if err := domain.ValidateCurrency(from); err != nil {
		return decimal.Zero, err
	}

	if err := domain.ValidateCurrency(to); err != nil {
		return decimal.Zero, err
	}

	return uc.resolver.Convert(ctx, amount, from, to)
}

// repoRateSource adapts RateRepository to fx.RateSource.
type repoRateSource struct {
	repo RateRepository
}

// NewRateSource exposes the rate repository as an fx.RateSource.
func NewRateSource(repo RateRepository) fx.RateSource {
	return &repoRateSource{repo: repo}
}

func (s *repoRateSource) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	rate, err := s.repo.Get(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	return rate.Rate, nil
}
