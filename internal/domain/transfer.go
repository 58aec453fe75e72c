package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer moves Amount units of Currency from one account to another.
// FxRate expresses how many destination-currency units one source unit is
// worth; the credit leg is Amount * FxRate. A Transfer is created once and
// never mutated; it deterministically produces two or three journal entries.
type Transfer struct {
	ID            string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Currency      string
	FxRate        decimal.Decimal
	Fee           decimal.Decimal
	Note          string
	CreatedAt     time.Time
}

// Validate checks transfer invariants that need no repository access.
func (t *Transfer) Validate() error {
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.FxRate.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidRate
	}

	if t.Fee.IsNegative() {
		return ErrInvalidFee
	}

	return nil
}

// CreditAmount is the amount arriving on the destination account.
func (t *Transfer) CreditAmount() decimal.Decimal {
	return t.Amount.Mul(t.FxRate)
}
