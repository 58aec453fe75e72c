package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/fx"
	"github.com/mahin/ledgercore/internal/usecase"
)

func TestAccountFromDomain(t *testing.T) {
	now := time.Now()
	account := &domain.Account{
		ID:               "acc-1",
		Name:             "Main",
		Type:             domain.AccountTypeBank,
		Currency:         "USD",
		OpeningBalance:   decimal.NewFromInt(100),
		Balance:          decimal.RequireFromString("123.45"),
		Status:           domain.AccountStatusActive,
		PaymentMethodKey: "bank",
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	resp := AccountFromDomain(account)
	if resp.ID != account.ID || resp.Type != "bank" || resp.Status != "active" {
		t.Fatalf("unexpected account response: %+v", resp)
	}
	if !resp.Balance.Equal(decimal.RequireFromString("123.45")) {
		t.Fatalf("unexpected balance: %s", resp.Balance)
	}

	list := AccountsFromDomain([]*domain.Account{account})
	if len(list) != 1 || list[0].ID != account.ID {
		t.Fatalf("AccountsFromDomain returned %+v", list)
	}
}

func TestEntryFromDomain(t *testing.T) {
	entry := &domain.JournalEntry{
		ID:         "entry-1",
		AccountID:  "acc",
		Kind:       domain.EntryKindTransferOut,
		Amount:     decimal.NewFromInt(-100),
		Currency:   "USD",
		FxRate:     decimal.RequireFromString("110.50"),
		AmountBase: decimal.RequireFromString("-11050"),
		RefType:    "transfer",
		RefID:      "tr-1",
		CreatedAt:  time.Now(),
	}

	resp := EntryFromDomain(entry)
	if resp.Kind != "transfer_out" || resp.RefID != "tr-1" {
		t.Fatalf("unexpected entry response: %+v", resp)
	}
	if !resp.AmountBase.Equal(decimal.RequireFromString("-11050")) {
		t.Fatalf("unexpected base amount: %s", resp.AmountBase)
	}

	list := EntriesFromDomain([]*domain.JournalEntry{entry})
	if len(list) != 1 || list[0].ID != entry.ID {
		t.Fatalf("EntriesFromDomain returned %+v", list)
	}
}

func TestSummaryFromUseCase_NilPairsBecomeEmpty(t *testing.T) {
	resp := SummaryFromUseCase(&usecase.BaseSummary{
		Summary: fx.Summary{Total: decimal.NewFromInt(100)},
	})

	if resp.MissingRatePairs == nil {
		t.Fatal("expected missing_rate_pairs to serialize as empty list, not null")
	}
	if len(resp.MissingRatePairs) != 0 {
		t.Fatalf("expected no missing pairs, got %v", resp.MissingRatePairs)
	}
}

func TestPerformanceFromUseCase(t *testing.T) {
	roi := decimal.RequireFromString("0.25")
	valid := &usecase.InvestmentPerformance{
		Invested: &usecase.BaseSummary{Summary: fx.Summary{Total: decimal.NewFromInt(100)}},
		Returned: &usecase.BaseSummary{Summary: fx.Summary{Total: decimal.NewFromInt(125)}},
		ROI:      roi,
		ROIValid: true,
	}

	resp := PerformanceFromUseCase(valid)
	if resp.ROI == nil || !resp.ROI.Equal(roi) {
		t.Fatalf("expected ROI 0.25, got %v", resp.ROI)
	}

	incomplete := &usecase.InvestmentPerformance{
		Invested: &usecase.BaseSummary{Summary: fx.Summary{MissingRatePairs: []string{"JPY → BDT"}}},
		Returned: &usecase.BaseSummary{},
		ROIValid: false,
	}

	resp = PerformanceFromUseCase(incomplete)
	if resp.ROI != nil {
		t.Fatalf("expected ROI omitted for incomplete totals, got %v", resp.ROI)
	}
}

func TestRowErrorsFromDomain(t *testing.T) {
	errs := domain.RowErrors{
		{Row: 1, Field: "currency", Message: "currency is required"},
		{Row: 3, Field: "name", Message: "name is required"},
	}

	out := RowErrorsFromDomain(errs)
	if len(out) != 2 {
		t.Fatalf("expected 2 row errors, got %d", len(out))
	}
	if out[1].Row != 3 || out[1].Field != "name" {
		t.Fatalf("unexpected row error: %+v", out[1])
	}
}
