package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one operator-entered directed edge in the rate table:
// one unit of FromCurrency is worth Rate units of ToCurrency. At most one
// row exists per ordered (from, to) pair; lookups may also use the row
// inverted.
type ExchangeRate struct {
	FromCurrency string
	ToCurrency   string
	Rate         decimal.Decimal
	UpdatedAt    time.Time
}

// Validate checks the rate row shape.
func (r *ExchangeRate) Validate() error {
	if err := ValidateCurrency(r.FromCurrency); err != nil {
		return err
	}

	if err := ValidateCurrency(r.ToCurrency); err != nil {
		return err
	}

	if r.FromCurrency == r.ToCurrency {
		return ErrSameCurrency
	}

	if r.Rate.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidRate
	}

	return nil
}
