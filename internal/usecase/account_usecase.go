package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	txManager      TransactionManager
	accountRepo    AccountRepository
	journalRepo    JournalRepository
	paymentMethods PaymentMethodSource
	settings       SettingsProvider
	idGen          IDGenerator
	recorder       MetricsRecorder
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	journalRepo JournalRepository,
	paymentMethods PaymentMethodSource,
	settings SettingsProvider,
	idGen IDGenerator,
	recorder MetricsRecorder,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:      txManager,
		accountRepo:    accountRepo,
		journalRepo:    journalRepo,
		paymentMethods: paymentMethods,
		settings:       settings,
		idGen:          idGen,
		recorder:       recorder,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name             string
	Type             domain.AccountType
	Currency         string
	OpeningBalance   decimal.Decimal
	Status           domain.AccountStatus
	PaymentMethodKey string
}

func (uc *AccountUseCase) validateCreateInput(ctx context.Context, input CreateAccountInput) error {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return err
	}

	if !domain.ValidAccountType(input.Type) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidAccountType, input.Type)
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return err
	}

	if input.Status != "" && !domain.ValidAccountStatus(input.Status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, input.Status)
	}

	if input.PaymentMethodKey != "" {
		exists, err := uc.paymentMethods.Exists(ctx, input.PaymentMethodKey)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %q", domain.ErrPaymentMethodNotFound, input.PaymentMethodKey)
		}
	}

	return nil
}

// CreateAccount creates a new account. A non-zero opening balance
// synthesizes one opening_balance journal entry referencing the account
// itself and recomputes the balance, all in one transaction.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := uc.validateCreateInput(ctx, input); err != nil {
		return nil, err
	}

	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	status := input.Status
	if status == "" {
		status = domain.AccountStatusActive
	}

	account := &domain.Account{
		ID:               uc.idGen.Generate(),
		Name:             input.Name,
		Type:             input.Type,
		Currency:         input.Currency,
		OpeningBalance:   input.OpeningBalance,
		Balance:          decimal.Zero,
		Status:           status,
		PaymentMethodKey: input.PaymentMethodKey,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.createAccountTx(ctx, tx, account, settings.AllowNegativeBalances, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.recorder.AccountCreated()

	return account, nil
}

// createAccountTx inserts the account and, for non-zero opening balances,
// the opening_balance entry plus the balance recomputation it triggers.
func (uc *AccountUseCase) createAccountTx(ctx context.Context, tx Transaction, account *domain.Account, allowNegative bool, now time.Time) error {
	if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
		return err
	}

	if account.OpeningBalance.IsZero() {
		return nil
	}

	entry := &domain.JournalEntry{
		ID:         uc.idGen.Generate(),
		AccountID:  account.ID,
		Kind:       domain.EntryKindOpeningBalance,
		Amount:     account.OpeningBalance,
		Currency:   account.Currency,
		FxRate:     decimal.NewFromInt(1),
		AmountBase: account.OpeningBalance,
		RefType:    domain.RefTypeOpeningBalance,
		RefID:      account.ID,
		CreatedAt:  now,
	}

	if err := uc.journalRepo.Create(ctx, tx, entry); err != nil {
		return err
	}

	balance, err := recomputeBalance(ctx, tx, uc.accountRepo, uc.journalRepo, account.ID, allowNegative, now)
	if err != nil {
		return err
	}

	account.Balance = balance

	return nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

// ArchiveAccount marks an account archived. Archived accounts keep their
// journal but are rejected as transfer endpoints.
func (uc *AccountUseCase) ArchiveAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.accountRepo.UpdateStatus(ctx, id, domain.AccountStatusArchived, now); err != nil {
		return nil, err
	}

	account.Status = domain.AccountStatusArchived
	account.UpdatedAt = now

	return account, nil
}

// ImportAccounts bulk-creates accounts from rows. Every row is validated
// first and all row errors are collected; any invalid row aborts the whole
// batch with zero accounts created.
func (uc *AccountUseCase) ImportAccounts(ctx context.Context, rows []domain.AccountImportRow) ([]*domain.Account, error) {
	var rowErrs domain.RowErrors

	for i, row := range rows {
		rowErrs = append(rowErrs, domain.ValidateImportRow(i+1, row)...)

		if row.PaymentMethodKey != "" {
			exists, err := uc.paymentMethods.Exists(ctx, row.PaymentMethodKey)
			if err != nil {
				return nil, err
			}
			if !exists {
				rowErrs = append(rowErrs, domain.RowError{
					Row:     i + 1,
					Field:   "payment_method_key",
					Message: fmt.Sprintf("payment method %q does not exist", row.PaymentMethodKey),
				})
			}
		}
	}

	if len(rowErrs) > 0 {
		return nil, rowErrs
	}

	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		account := &domain.Account{
			ID:               uc.idGen.Generate(),
			Name:             row.Name,
			Type:             row.Type,
			Currency:         row.Currency,
			OpeningBalance:   row.OpeningBalance,
			Balance:          decimal.Zero,
			Status:           row.Status,
			PaymentMethodKey: row.PaymentMethodKey,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		if err := uc.createAccountTx(ctx, tx, account, settings.AllowNegativeBalances, now); err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	for range accounts {
		uc.recorder.AccountCreated()
	}

	return accounts, nil
}
