package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/fx"
)

// ReportUseCase produces cross-currency reporting totals. Every total goes
// through the one shared aggregator so conversion and exclusion semantics
// are identical across reports; a total that excludes items always says so.
type ReportUseCase struct {
	accountRepo  AccountRepository
	transferRepo TransferRepository
	settings     SettingsProvider
	aggregator   *fx.Aggregator
	recorder     MetricsRecorder
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(
	accountRepo AccountRepository,
	transferRepo TransferRepository,
	settings SettingsProvider,
	aggregator *fx.Aggregator,
	recorder MetricsRecorder,
) *ReportUseCase {
	return &ReportUseCase{
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		settings:     settings,
		aggregator:   aggregator,
		recorder:     recorder,
	}
}

// BaseSummary is an aggregation result tagged with the base currency it is
// expressed in.
type BaseSummary struct {
	BaseCurrency string
	fx.Summary
}

func (uc *ReportUseCase) sum(ctx context.Context, items []fx.Item, baseCurrency string) (*BaseSummary, error) {
	if baseCurrency == "" {
		settings, err := uc.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		baseCurrency = settings.BaseCurrency
	}

	summary, err := uc.aggregator.Sum(ctx, items, baseCurrency)
	if err != nil {
		return nil, err
	}

	for _, pair := range summary.MissingRatePairs {
		uc.recorder.ConversionMiss(pair)
	}

	return &BaseSummary{BaseCurrency: baseCurrency, Summary: summary}, nil
}

// TotalBalance sums every active account's balance into the base currency.
func (uc *ReportUseCase) TotalBalance(ctx context.Context) (*BaseSummary, error) {
	accounts, err := uc.accountRepo.ListByStatus(ctx, domain.AccountStatusActive)
	if err != nil {
		return nil, err
	}

	items := make([]fx.Item, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, fx.Item{Amount: account.Balance, Currency: account.Currency})
	}

	return uc.sum(ctx, items, "")
}

// TransferVolume sums transfer amounts in [from, to) into the base currency.
func (uc *ReportUseCase) TransferVolume(ctx context.Context, from, to time.Time) (*BaseSummary, error) {
	transfers, err := uc.transferRepo.ListByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	items := make([]fx.Item, 0, len(transfers))
	for _, transfer := range transfers {
		items = append(items, fx.Item{Amount: transfer.Amount, Currency: transfer.Currency})
	}

	return uc.sum(ctx, items, "")
}

// SumItems aggregates arbitrary monetary items into baseCurrency (the
// stored base currency when empty). Investment and portfolio views feed
// their amounts through here so they inherit the exclusion semantics.
func (uc *ReportUseCase) SumItems(ctx context.Context, items []fx.Item, baseCurrency string) (*BaseSummary, error) {
	return uc.sum(ctx, items, baseCurrency)
}

// InvestmentPerformance aggregates invested and returned amounts and, when
// both sides converted completely and something was invested, computes ROI.
type InvestmentPerformance struct {
	Invested *BaseSummary
	Returned *BaseSummary
	ROI      decimal.Decimal
	ROIValid bool
}

// Performance computes an invested/returned/ROI report. ROI is only
// reported when no amount was excluded on either side; a ratio over a
// partial total would be a lie.
func (uc *ReportUseCase) Performance(ctx context.Context, invested, returned []fx.Item) (*InvestmentPerformance, error) {
	investedSummary, err := uc.sum(ctx, invested, "")
	if err != nil {
		return nil, err
	}

	returnedSummary, err := uc.sum(ctx, returned, investedSummary.BaseCurrency)
	if err != nil {
		return nil, err
	}

	perf := &InvestmentPerformance{
		Invested: investedSummary,
		Returned: returnedSummary,
	}

	if !investedSummary.HasExclusions() && !returnedSummary.HasExclusions() &&
		investedSummary.Total.GreaterThan(decimal.Zero) {
		perf.ROI = returnedSummary.Total.Sub(investedSummary.Total).Div(investedSummary.Total)
		perf.ROIValid = true
	}

	return perf, nil
}
