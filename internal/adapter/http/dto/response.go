package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	Currency         string          `json:"currency"`
	OpeningBalance   decimal.Decimal `json:"opening_balance"`
	Balance          decimal.Decimal `json:"balance"`
	Status           string          `json:"status"`
	PaymentMethodKey string          `json:"payment_method_key,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:               a.ID,
		Name:             a.Name,
		Type:             string(a.Type),
		Currency:         a.Currency,
		OpeningBalance:   a.OpeningBalance,
		Balance:          a.Balance,
		Status:           string(a.Status),
		PaymentMethodKey: a.PaymentMethodKey,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// EntryResponse represents a journal entry in API responses.
type EntryResponse struct {
	ID         string          `json:"id"`
	AccountID  string          `json:"account_id"`
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	FxRate     decimal.Decimal `json:"fx_rate"`
	AmountBase decimal.Decimal `json:"amount_base"`
	RefType    string          `json:"ref_type"`
	RefID      string          `json:"ref_id"`
	Note       string          `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.JournalEntry) *EntryResponse {
	return &EntryResponse{
		ID:         e.ID,
		AccountID:  e.AccountID,
		Kind:       string(e.Kind),
		Amount:     e.Amount,
		Currency:   e.Currency,
		FxRate:     e.FxRate,
		AmountBase: e.AmountBase,
		RefType:    e.RefType,
		RefID:      e.RefID,
		Note:       e.Note,
		CreatedAt:  e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.JournalEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID            string          `json:"id"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	FxRate        decimal.Decimal `json:"fx_rate"`
	Fee           decimal.Decimal `json:"fee"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransferFromDomain converts domain transfer to response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		Currency:      t.Currency,
		FxRate:        t.FxRate,
		Fee:           t.Fee,
		Note:          t.Note,
		CreatedAt:     t.CreatedAt,
	}
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.Transfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// RateResponse represents an exchange rate in API responses.
type RateResponse struct {
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Rate         decimal.Decimal `json:"rate"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RateFromDomain converts domain rate to response.
func RateFromDomain(r *domain.ExchangeRate) *RateResponse {
	return &RateResponse{
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		Rate:         r.Rate,
		UpdatedAt:    r.UpdatedAt,
	}
}

// RatesFromDomain converts domain rates to responses.
func RatesFromDomain(rates []*domain.ExchangeRate) []*RateResponse {
	result := make([]*RateResponse, len(rates))
	for i, r := range rates {
		result[i] = RateFromDomain(r)
	}
	return result
}

// ConversionResponse represents a currency conversion result.
type ConversionResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Converted decimal.Decimal `json:"converted"`
}

// SettingsResponse represents finance settings in API responses.
type SettingsResponse struct {
	BaseCurrency          string    `json:"base_currency"`
	AllowNegativeBalances bool      `json:"allow_negative_balances"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// SettingsFromDomain converts domain settings to response.
func SettingsFromDomain(s *domain.Settings) *SettingsResponse {
	return &SettingsResponse{
		BaseCurrency:          s.BaseCurrency,
		AllowNegativeBalances: s.AllowNegativeBalances,
		UpdatedAt:             s.UpdatedAt,
	}
}

// SummaryResponse represents a cross-currency aggregation result. The total
// is only complete when missing_rate_pairs is empty.
type SummaryResponse struct {
	BaseCurrency     string          `json:"base_currency"`
	Total            decimal.Decimal `json:"total"`
	MissingRatePairs []string        `json:"missing_rate_pairs"`
	ExcludedAmount   decimal.Decimal `json:"excluded_amount"`
}

// SummaryFromUseCase converts a use case summary to response.
func SummaryFromUseCase(s *usecase.BaseSummary) *SummaryResponse {
	pairs := s.MissingRatePairs
	if pairs == nil {
		pairs = []string{}
	}

	return &SummaryResponse{
		BaseCurrency:     s.BaseCurrency,
		Total:            s.Total,
		MissingRatePairs: pairs,
		ExcludedAmount:   s.ExcludedAmount,
	}
}

// PerformanceResponse represents an investment performance report. ROI is
// omitted when either side had unconvertible amounts.
type PerformanceResponse struct {
	Invested *SummaryResponse `json:"invested"`
	Returned *SummaryResponse `json:"returned"`
	ROI      *decimal.Decimal `json:"roi,omitempty"`
}

// PerformanceFromUseCase converts a use case performance report to response.
func PerformanceFromUseCase(p *usecase.InvestmentPerformance) *PerformanceResponse {
	resp := &PerformanceResponse{
		Invested: SummaryFromUseCase(p.Invested),
		Returned: SummaryFromUseCase(p.Returned),
	}
	if p.ROIValid {
		roi := p.ROI
		resp.ROI = &roi
	}
	return resp
}

// ReconciliationResponse represents one account's reconciliation state.
type ReconciliationResponse struct {
	AccountID       string          `json:"account_id"`
	CachedBalance   decimal.Decimal `json:"cached_balance"`
	ComputedBalance decimal.Decimal `json:"computed_balance"`
	Difference      decimal.Decimal `json:"difference"`
	IsReconciled    bool            `json:"is_reconciled"`
}

// ReconciliationsFromUseCase converts use case results to responses.
func ReconciliationsFromUseCase(results []*usecase.ReconciliationResult) []*ReconciliationResponse {
	out := make([]*ReconciliationResponse, len(results))
	for i, r := range results {
		out[i] = &ReconciliationResponse{
			AccountID:       r.AccountID,
			CachedBalance:   r.CachedBalance,
			ComputedBalance: r.ComputedBalance,
			Difference:      r.Difference,
			IsReconciled:    r.IsReconciled,
		}
	}
	return out
}

// BalanceResponse represents a derived account balance.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
	At        *time.Time      `json:"at,omitempty"`
}

// RowErrorResponse represents one import row failure.
type RowErrorResponse struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RowErrorsFromDomain converts domain row errors to responses.
func RowErrorsFromDomain(errs domain.RowErrors) []RowErrorResponse {
	out := make([]RowErrorResponse, len(errs))
	for i, e := range errs {
		out[i] = RowErrorResponse{Row: e.Row, Field: e.Field, Message: e.Message}
	}
	return out
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error     string             `json:"error"`
	Message   string             `json:"message,omitempty"`
	RowErrors []RowErrorResponse `json:"row_errors,omitempty"`
}
