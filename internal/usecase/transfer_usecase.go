package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/fx"
)

// TransferUseCase posts transfers as an atomic set of journal entries.
// Either every leg lands and both balances are recomputed, or nothing is
// written; there are no partially posted transfers.
type TransferUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	transferRepo TransferRepository
	journalRepo  JournalRepository
	settings     SettingsProvider
	resolver     *fx.Resolver
	idGen        IDGenerator
	retrier      Retrier
	recorder     MetricsRecorder
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transferRepo TransferRepository,
	journalRepo JournalRepository,
	settings SettingsProvider,
	resolver *fx.Resolver,
	idGen IDGenerator,
	retrier Retrier,
	recorder MetricsRecorder,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		journalRepo:  journalRepo,
		settings:     settings,
		resolver:     resolver,
		idGen:        idGen,
		retrier:      retrier,
		recorder:     recorder,
	}
}

// CreateTransferInput represents input for creating a transfer. FxRate may
// be left zero; it is then resolved from the rate table, and the transfer
// is rejected as unconvertible when no rate exists in either direction.
type CreateTransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Currency      string
	FxRate        decimal.Decimal
	Fee           decimal.Decimal
	Note          string
}

// CreateTransfer posts a transfer. Preconditions are checked before any
// journal write: distinct accounts, both present, both active, positive
// amount, non-negative fee. The 2-3 legs and both balance recomputations
// run in one database transaction, retried on serialization failures.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, input CreateTransferInput) (*domain.Transfer, error) {
	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if input.Fee.IsNegative() {
		return nil, domain.ErrInvalidFee
	}

	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	var transfer *domain.Transfer

	err = uc.retrier.Retry(ctx, func() error {
		var postErr error
		transfer, postErr = uc.post(ctx, input, settings)
		return postErr
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.TransferCreated()

	return transfer, nil
}

func (uc *TransferUseCase) post(ctx context.Context, input CreateTransferInput, settings *domain.Settings) (*domain.Transfer, error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock both accounts in sorted ID order so that two concurrent
	// transfers touching the same accounts cannot deadlock.
	accountIDs := []string{input.FromAccountID, input.ToAccountID}
	sort.Strings(accountIDs)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(accountIDs) {
		return nil, domain.ErrAccountNotFound
	}

	var fromAccount, toAccount *domain.Account
	for _, a := range accounts {
		switch a.ID {
		case input.FromAccountID:
			fromAccount = a
		case input.ToAccountID:
			toAccount = a
		}
	}

	if fromAccount == nil || toAccount == nil {
		return nil, domain.ErrAccountNotFound
	}

	if !fromAccount.IsActive() || !toAccount.IsActive() {
		return nil, domain.ErrAccountInactive
	}

	currency := input.Currency
	if currency == "" {
		currency = fromAccount.Currency
	}

	fxRate, err := uc.resolveRate(ctx, input.FxRate, currency, toAccount.Currency)
	if err != nil {
		return nil, err
	}

	transfer := &domain.Transfer{
		ID:            uc.idGen.Generate(),
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		Amount:        input.Amount,
		Currency:      currency,
		FxRate:        fxRate,
		Fee:           input.Fee,
		Note:          input.Note,
		CreatedAt:     now,
	}

	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
		return nil, err
	}

	for _, entry := range transferLegs(transfer, uc.idGen, now) {
		if err := uc.journalRepo.Create(ctx, tx, entry); err != nil {
			return nil, err
		}
	}

	for _, accountID := range accountIDs {
		if _, err := recomputeBalance(ctx, tx, uc.accountRepo, uc.journalRepo, accountID, settings.AllowNegativeBalances, now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return transfer, nil
}

// resolveRate returns the explicit rate when given, 1 for same-currency
// moves, and otherwise the stored rate for one unit. A cross-currency
// transfer with neither an explicit nor a stored rate is a hard failure;
// the fx leg needs a definite amount.
func (uc *TransferUseCase) resolveRate(ctx context.Context, explicit decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if explicit.GreaterThan(decimal.Zero) {
		return explicit, nil
	}

	return uc.resolver.Convert(ctx, decimal.NewFromInt(1), from, to)
}

// transferLegs builds the journal entries for one transfer: the debit leg,
// the credit leg scaled by the fx rate, and a fee leg on the source when a
// fee is charged. All legs carry the transfer's currency; the fee leg uses
// its own reference type so an expense view can pick it up.
func transferLegs(t *domain.Transfer, idGen IDGenerator, now time.Time) []*domain.JournalEntry {
	legs := []*domain.JournalEntry{
		{
			ID:         idGen.Generate(),
			AccountID:  t.FromAccountID,
			Kind:       domain.EntryKindTransferOut,
			Amount:     t.Amount.Neg(),
			Currency:   t.Currency,
			FxRate:     t.FxRate,
			AmountBase: t.Amount.Neg(),
			RefType:    domain.RefTypeTransfer,
			RefID:      t.ID,
			Note:       t.Note,
			CreatedAt:  now,
		},
		{
			ID:         idGen.Generate(),
			AccountID:  t.ToAccountID,
			Kind:       domain.EntryKindTransferIn,
			Amount:     t.CreditAmount(),
			Currency:   t.Currency,
			FxRate:     t.FxRate,
			AmountBase: t.CreditAmount(),
			RefType:    domain.RefTypeTransfer,
			RefID:      t.ID,
			Note:       t.Note,
			CreatedAt:  now,
		},
	}

	if t.Fee.GreaterThan(decimal.Zero) {
		legs = append(legs, &domain.JournalEntry{
			ID:         idGen.Generate(),
			AccountID:  t.FromAccountID,
			Kind:       domain.EntryKindExpense,
			Amount:     t.Fee.Neg(),
			Currency:   t.Currency,
			FxRate:     decimal.NewFromInt(1),
			AmountBase: t.Fee.Neg(),
			RefType:    domain.RefTypeTransferFee,
			RefID:      t.ID,
			Note:       "transfer fee",
			CreatedAt:  now,
		})
	}

	return legs
}

// GetTransfer retrieves a transfer by ID.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id string) (*domain.Transfer, error) {
	return uc.transferRepo.GetByID(ctx, id)
}

// ListTransfersByAccountInput represents input for listing transfers.
type ListTransfersByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransfersByAccount lists transfers for an account.
func (uc *TransferUseCase) ListTransfersByAccount(ctx context.Context, input ListTransfersByAccountInput) ([]*domain.Transfer, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.transferRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// EntriesByTransfer lists the journal legs a transfer produced, the fee leg
// included.
func (uc *TransferUseCase) EntriesByTransfer(ctx context.Context, transferID string) ([]*domain.JournalEntry, error) {
	if _, err := uc.transferRepo.GetByID(ctx, transferID); err != nil {
		return nil, err
	}

	legs, err := uc.journalRepo.ListByRef(ctx, domain.RefTypeTransfer, transferID)
	if err != nil {
		return nil, err
	}

	feeLegs, err := uc.journalRepo.ListByRef(ctx, domain.RefTypeTransferFee, transferID)
	if err != nil {
		return nil, err
	}

	return append(legs, feeLegs...), nil
}
