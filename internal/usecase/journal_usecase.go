package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/domain"
)

// JournalUseCase handles the append-only ledger journal and keeps cached
// account balances consistent with it.
type JournalUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	journalRepo JournalRepository
	settings    SettingsProvider
	idGen       IDGenerator
	recorder    MetricsRecorder
}

// NewJournalUseCase creates a new JournalUseCase.
func NewJournalUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	journalRepo JournalRepository,
	settings SettingsProvider,
	idGen IDGenerator,
	recorder MetricsRecorder,
) *JournalUseCase {
	return &JournalUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		settings:    settings,
		idGen:       idGen,
		recorder:    recorder,
	}
}

// PostEntryInput represents input for posting a journal entry.
type PostEntryInput struct {
	AccountID string
	Kind      domain.EntryKind
	Amount    decimal.Decimal
	Currency  string
	FxRate    decimal.Decimal
	RefType   string
	RefID     string
	Note      string
}

// PostEntry appends one immutable entry and recomputes the owning account's
// balance in the same transaction. Currency defaults to the account
// currency and FxRate to 1 when unset.
func (uc *JournalUseCase) PostEntry(ctx context.Context, input PostEntryInput) (*domain.JournalEntry, error) {
	if !domain.ValidEntryKind(input.Kind) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidEntryKind, input.Kind)
	}

	if err := domain.ValidatePostingAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateRef(input.RefType, input.RefID); err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = account.Currency
	}

	fxRate := input.FxRate
	if fxRate.LessThanOrEqual(decimal.Zero) {
		fxRate = decimal.NewFromInt(1)
	}

	now := time.Now().UTC()
	entry := &domain.JournalEntry{
		ID:         uc.idGen.Generate(),
		AccountID:  account.ID,
		Kind:       input.Kind,
		Amount:     input.Amount,
		Currency:   currency,
		FxRate:     fxRate,
		AmountBase: input.Amount.Mul(fxRate),
		RefType:    input.RefType,
		RefID:      input.RefID,
		Note:       input.Note,
		CreatedAt:  now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the account row so concurrent postings serialize their
	// SUM + balance update.
	if _, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, account.ID); err != nil {
		return nil, err
	}

	if err := uc.journalRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	if _, err := recomputeBalance(ctx, tx, uc.accountRepo, uc.journalRepo, account.ID, settings.AllowNegativeBalances, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.recorder.EntryPosted(entry.Kind)
	uc.recorder.BalanceRecomputed()

	return entry, nil
}

// DeleteByReference deletes every entry caused by one business event and
// recomputes each touched account. A second call for the same reference is
// a no-op.
func (uc *JournalUseCase) DeleteByReference(ctx context.Context, refType, refID string) error {
	if err := domain.ValidateRef(refType, refID); err != nil {
		return err
	}

	// Transfer legs are corrected with an offsetting transfer, never removed.
	if refType == domain.RefTypeTransfer || refType == domain.RefTypeTransferFee {
		return domain.ErrTransferImmutable
	}

	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	accountIDs, err := uc.journalRepo.DeleteByRef(ctx, tx, refType, refID)
	if err != nil {
		return err
	}

	if len(accountIDs) > 0 {
		// Lock every touched account in sorted order before recomputing,
		// same protocol as transfers.
		sort.Strings(accountIDs)
		if _, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			return err
		}
	}

	for _, accountID := range accountIDs {
		if _, err := recomputeBalance(ctx, tx, uc.accountRepo, uc.journalRepo, accountID, settings.AllowNegativeBalances, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.recorder.EntriesDeleted(len(accountIDs))
	for range accountIDs {
		uc.recorder.BalanceRecomputed()
	}

	return nil
}

// RecomputeBalance is the explicit reconciliation path: it re-derives one
// account's balance from the full journal and persists it, regardless of
// what the cache said. Any corruption of the cached balance self-heals here.
func (uc *JournalUseCase) RecomputeBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback(ctx)

	if _, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID); err != nil {
		return decimal.Zero, err
	}

	// Reconciliation is never blocked by the negative-balance policy;
	// the journal is what it is.
	balance, err := recomputeBalance(ctx, tx, uc.accountRepo, uc.journalRepo, accountID, true, now)
	if err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, err
	}

	uc.recorder.BalanceRecomputed()

	return balance, nil
}

// ReconciliationResult compares an account's cached balance with the
// balance recomputed from its journal.
type ReconciliationResult struct {
	AccountID       string
	CachedBalance   decimal.Decimal
	ComputedBalance decimal.Decimal
	Difference      decimal.Decimal
	IsReconciled    bool
}

// ReconcileAll reports, for every account, whether the cached balance
// matches the journal. It does not repair anything; use RecomputeBalance
// for that.
func (uc *JournalUseCase) ReconcileAll(ctx context.Context) ([]*ReconciliationResult, error) {
	const pageSize = 1000

	var results []*ReconciliationResult
	for offset := 0; ; offset += pageSize {
		accounts, err := uc.accountRepo.List(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}

		for _, account := range accounts {
			computed, err := uc.journalRepo.SumByAccount(ctx, nil, account.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to reconcile account %s: %w", account.ID, err)
			}

			diff := account.Balance.Sub(computed)
			results = append(results, &ReconciliationResult{
				AccountID:       account.ID,
				CachedBalance:   account.Balance,
				ComputedBalance: computed,
				Difference:      diff,
				IsReconciled:    diff.IsZero(),
			})
		}

		if len(accounts) < pageSize {
			return results, nil
		}
	}
}

// ListEntriesByAccountInput represents input for listing entries.
type ListEntriesByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListEntriesByAccount lists entries for an account.
func (uc *JournalUseCase) ListEntriesByAccount(ctx context.Context, input ListEntriesByAccountInput) ([]*domain.JournalEntry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.journalRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// ListEntriesByReference lists entries caused by one business event.
func (uc *JournalUseCase) ListEntriesByReference(ctx context.Context, refType, refID string) ([]*domain.JournalEntry, error) {
	if err := domain.ValidateRef(refType, refID); err != nil {
		return nil, err
	}
	return uc.journalRepo.ListByRef(ctx, refType, refID)
}

// HistoricalBalance returns the balance at a point in time, derived from
// the entries created at or before it.
func (uc *JournalUseCase) HistoricalBalance(ctx context.Context, accountID string, at time.Time) (decimal.Decimal, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}
	return uc.journalRepo.SumByAccountAtTime(ctx, accountID, at)
}
