package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/domain"
)

// recomputeBalance derives an account's balance by re-summing its journal
// inside the caller's transaction and persists the result. The journal is
// the sole source of truth; the cached balance is never adjusted
// incrementally. Returns the new balance.
func recomputeBalance(
	ctx context.Context,
	tx Transaction,
	accountRepo AccountRepository,
	journalRepo JournalRepository,
	accountID string,
	allowNegative bool,
	now time.Time,
) (decimal.Decimal, error) {
	balance, err := journalRepo.SumByAccount(ctx, tx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	if !allowNegative && balance.IsNegative() {
		return decimal.Zero, domain.ErrNegativeBalanceNotAllowed
	}

	if err := accountRepo.UpdateBalance(ctx, tx, accountID, balance, now); err != nil {
		return decimal.Zero, err
	}

	return balance, nil
}
