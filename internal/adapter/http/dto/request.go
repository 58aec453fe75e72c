package dto

import (
	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/fx"
	"github.com/mahin/ledgercore/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	Currency         string          `json:"currency"`
	OpeningBalance   decimal.Decimal `json:"opening_balance"`
	Status           string          `json:"status,omitempty"`
	PaymentMethodKey string          `json:"payment_method_key,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:             r.Name,
		Type:             domain.AccountType(r.Type),
		Currency:         r.Currency,
		OpeningBalance:   r.OpeningBalance,
		Status:           domain.AccountStatus(r.Status),
		PaymentMethodKey: r.PaymentMethodKey,
	}
}

// ImportAccountsRequest represents a bulk account import.
type ImportAccountsRequest struct {
	Accounts []ImportAccountRow `json:"accounts"`
}

// ImportAccountRow is one row of a bulk import request.
type ImportAccountRow struct {
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	Currency         string          `json:"currency"`
	OpeningBalance   decimal.Decimal `json:"opening_balance"`
	Status           string          `json:"status"`
	PaymentMethodKey string          `json:"payment_method_key,omitempty"`
}

// ToImportRows converts to domain import rows.
func (r *ImportAccountsRequest) ToImportRows() []domain.AccountImportRow {
	rows := make([]domain.AccountImportRow, len(r.Accounts))
	for i, a := range r.Accounts {
		rows[i] = domain.AccountImportRow{
			Name:             a.Name,
			Type:             domain.AccountType(a.Type),
			Currency:         a.Currency,
			OpeningBalance:   a.OpeningBalance,
			Status:           domain.AccountStatus(a.Status),
			PaymentMethodKey: a.PaymentMethodKey,
		}
	}
	return rows
}

// PostEntryRequest represents a request to post a journal entry.
type PostEntryRequest struct {
	AccountID string          `json:"account_id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency,omitempty"`
	FxRate    decimal.Decimal `json:"fx_rate,omitempty"`
	RefType   string          `json:"ref_type"`
	RefID     string          `json:"ref_id"`
	Note      string          `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PostEntryRequest) ToUseCaseInput() usecase.PostEntryInput {
	return usecase.PostEntryInput{
		AccountID: r.AccountID,
		Kind:      domain.EntryKind(r.Kind),
		Amount:    r.Amount,
		Currency:  r.Currency,
		FxRate:    r.FxRate,
		RefType:   r.RefType,
		RefID:     r.RefID,
		Note:      r.Note,
	}
}

// CreateTransferRequest represents a request to create a transfer.
type CreateTransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency,omitempty"`
	FxRate        decimal.Decimal `json:"fx_rate,omitempty"`
	Fee           decimal.Decimal `json:"fee,omitempty"`
	Note          string          `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() usecase.CreateTransferInput {
	return usecase.CreateTransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Currency:      r.Currency,
		FxRate:        r.FxRate,
		Fee:           r.Fee,
		Note:          r.Note,
	}
}

// UpsertRateRequest represents a request to store an exchange rate.
type UpsertRateRequest struct {
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Rate         decimal.Decimal `json:"rate"`
}

// ToUseCaseInput converts to use case input.
func (r *UpsertRateRequest) ToUseCaseInput() usecase.UpsertRateInput {
	return usecase.UpsertRateInput{
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		Rate:         r.Rate,
	}
}

// MoneyItem is one amount in one currency.
type MoneyItem struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// PerformanceRequest represents a request for an investment performance
// report over mixed-currency cash flows.
type PerformanceRequest struct {
	Invested []MoneyItem `json:"invested"`
	Returned []MoneyItem `json:"returned"`
}

// ToItems converts request items to aggregator items.
func ToItems(items []MoneyItem) []fx.Item {
	out := make([]fx.Item, len(items))
	for i, it := range items {
		out[i] = fx.Item{Amount: it.Amount, Currency: it.Currency}
	}
	return out
}

// UpdateSettingsRequest represents a request to replace finance settings.
type UpdateSettingsRequest struct {
	BaseCurrency          string `json:"base_currency"`
	AllowNegativeBalances bool   `json:"allow_negative_balances"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateSettingsRequest) ToUseCaseInput() usecase.UpdateSettingsInput {
	return usecase.UpdateSettingsInput{
		BaseCurrency:          r.BaseCurrency,
		AllowNegativeBalances: r.AllowNegativeBalances,
	}
}
