package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies the business meaning of a journal entry.
type EntryKind string

const (
	EntryKindOpeningBalance EntryKind = "opening_balance"
	EntryKindIncome         EntryKind = "income"
	EntryKindExpense        EntryKind = "expense"
	EntryKindTransferIn     EntryKind = "transfer_in"
	EntryKindTransferOut    EntryKind = "transfer_out"
	EntryKindDeposit        EntryKind = "deposit"
	EntryKindWithdrawal     EntryKind = "withdrawal"
	EntryKindAdjustment     EntryKind = "adjustment"
)

// Reference types linking entries back to the business event that caused them.
const (
	RefTypeExpense        = "expense"
	RefTypeTransfer       = "transfer"
	RefTypeTransferFee    = "transfer_fee"
	RefTypeSubscription   = "subscription"
	RefTypeInvestment     = "investment"
	RefTypeOpeningBalance = "opening_balance"
)

// JournalEntry is one immutable signed monetary record tied to exactly one
// account and one business reference. Entries are never updated in place;
// a correction deletes the old entries by reference and posts new ones.
type JournalEntry struct {
	ID         string
	AccountID  string
	Kind       EntryKind
	Amount     decimal.Decimal
	Currency   string
	FxRate     decimal.Decimal
	AmountBase decimal.Decimal
	RefType    string
	RefID      string
	Note       string
	CreatedAt  time.Time
}

// ValidEntryKind reports whether k is one of the known entry kinds.
func ValidEntryKind(k EntryKind) bool {
	switch k {
	case EntryKindOpeningBalance, EntryKindIncome, EntryKindExpense,
		EntryKindTransferIn, EntryKindTransferOut, EntryKindDeposit,
		EntryKindWithdrawal, EntryKindAdjustment:
		return true
	}
	return false
}
