package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidStatus      = errors.New("invalid account status")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrInvalidRefType     = errors.New("invalid reference type")
	ErrInvalidEntryKind   = errors.New("invalid entry kind")
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MinAccountNameLength = 1
	MaxPostingAmount     = "1000000000000" // 1 trillion
)

var currencyRegex = regexp.MustCompile(`^[A-Z0-9]{3,6}$`)

// ValidateAccountName validates an account display name.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateCurrency validates a currency code. Crypto tickers are allowed
// alongside ISO 4217 codes, so the check is shape-only: 3-6 upper-case
// letters or digits.
func ValidateCurrency(currency string) error {
	if !currencyRegex.MatchString(currency) {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidatePostingAmount validates a journal posting amount. Postings may be
// negative (debits), but zero-amount and absurdly large postings are rejected.
func ValidatePostingAmount(amount decimal.Decimal) error {
	if amount.IsZero() {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxPostingAmount)
	if amount.Abs().GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxPostingAmount)
	}

	return nil
}

// ValidateRef validates a (refType, refID) business reference.
func ValidateRef(refType, refID string) error {
	if strings.TrimSpace(refType) == "" || strings.TrimSpace(refID) == "" {
		return fmt.Errorf("%w: ref type and ref id are required", ErrInvalidRefType)
	}

	return nil
}

// RowError describes a validation failure in one row of a batch import.
type RowError struct {
	Row     int
	Field   string
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Message)
}

// RowErrors is the full set of row-level failures for a batch. A batch with
// any RowErrors is rejected as a whole; no partial import happens.
type RowErrors []RowError

func (e RowErrors) Error() string {
	msgs := make([]string, len(e))
	for i, re := range e {
		msgs[i] = re.Error()
	}

	return strings.Join(msgs, "; ")
}

// AccountImportRow is one row of a bulk account import.
type AccountImportRow struct {
	Name             string
	Type             AccountType
	Currency         string
	OpeningBalance   decimal.Decimal
	Status           AccountStatus
	PaymentMethodKey string
}

// ValidateImportRow validates a single import row and returns every field
// error found, not just the first.
func ValidateImportRow(row int, r AccountImportRow) []RowError {
	var errs []RowError

	if err := ValidateAccountName(r.Name); err != nil {
		errs = append(errs, RowError{Row: row, Field: "name", Message: err.Error()})
	}

	if !ValidAccountType(r.Type) {
		errs = append(errs, RowError{Row: row, Field: "type", Message: fmt.Sprintf("%v: %q", ErrInvalidAccountType, r.Type)})
	}

	if err := ValidateCurrency(r.Currency); err != nil {
		errs = append(errs, RowError{Row: row, Field: "currency", Message: err.Error()})
	}

	if !ValidAccountStatus(r.Status) {
		errs = append(errs, RowError{Row: row, Field: "status", Message: fmt.Sprintf("%v: %q", ErrInvalidStatus, r.Status)})
	}

	return errs
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
