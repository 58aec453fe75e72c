package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies where the money lives.
type AccountType string

const (
	AccountTypeCash         AccountType = "cash"
	AccountTypeMobileWallet AccountType = "mobile_wallet"
	AccountTypeBank         AccountType = "bank"
	AccountTypeCard         AccountType = "card"
	AccountTypeCrypto       AccountType = "crypto"
	AccountTypeOther        AccountType = "other"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusArchived AccountStatus = "archived"
)

// Account holds a balance in a single currency. The cached Balance is
// derived from the journal; the journal is the source of truth.
type Account struct {
	ID               string
	Name             string
	Type             AccountType
	Currency         string
	OpeningBalance   decimal.Decimal
	Balance          decimal.Decimal
	Status           AccountStatus
	PaymentMethodKey string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsActive reports whether the account can participate in postings.
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// ValidAccountType reports whether t is one of the known account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeCash, AccountTypeMobileWallet, AccountTypeBank,
		AccountTypeCard, AccountTypeCrypto, AccountTypeOther:
		return true
	}
	return false
}

// ValidAccountStatus reports whether s is one of the known statuses.
func ValidAccountStatus(s AccountStatus) bool {
	return s == AccountStatusActive || s == AccountStatusArchived
}
