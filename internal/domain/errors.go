package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound           = errors.New("account not found")
	ErrAccountInactive           = errors.New("account inactive")
	ErrNegativeBalanceNotAllowed = errors.New("account balance would go negative")
	ErrPaymentMethodNotFound     = errors.New("payment method not found")

	// Transfer errors
	ErrSameAccount      = errors.New("cannot transfer to same account")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidFee       = errors.New("fee must not be negative")
	ErrTransferNotFound = errors.New("transfer not found")

	// Exchange rate errors
	ErrRateNotFound   = errors.New("exchange rate not found")
	ErrInvalidRate    = errors.New("rate must be positive")
	ErrSameCurrency   = errors.New("currencies must differ")
	ErrNotConvertible = errors.New("no exchange rate for currency pair")

	// Journal errors
	ErrEntryNotFound     = errors.New("journal entry not found")
	ErrTransferImmutable = errors.New("transfer entries cannot be deleted, post an offsetting transfer instead")

	// Settings errors
	ErrSettingsNotFound = errors.New("finance settings not found")
)
