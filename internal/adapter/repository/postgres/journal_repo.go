package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/infrastructure/postgres/generated"
	"github.com/mahin/ledgercore/internal/usecase"
)

// JournalRepository implements usecase.JournalRepository.
type JournalRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create appends a journal entry within a transaction.
func (r *JournalRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	_, err := queries.CreateJournalEntry(ctx, generated.CreateJournalEntryParams{
		ID:         entry.ID,
		AccountID:  entry.AccountID,
		Kind:       string(entry.Kind),
		Amount:     decimalToNumeric(entry.Amount),
		Currency:   entry.Currency,
		FxRate:     decimalToNumeric(entry.FxRate),
		AmountBase: decimalToNumeric(entry.AmountBase),
		RefType:    entry.RefType,
		RefID:      entry.RefID,
		Note:       stringToPgText(entry.Note),
		CreatedAt:  timeToPgTimestamptz(entry.CreatedAt),
	})

	return err
}

// DeleteByRef deletes every entry carrying the reference and returns the
// distinct account IDs that were touched, so the caller can recompute them.
func (r *JournalRepository) DeleteByRef(ctx context.Context, tx usecase.Transaction, refType, refID string) ([]string, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	accountIDs, err := queries.DeleteJournalEntriesByRef(ctx, generated.DeleteJournalEntriesByRefParams{
		RefType: refType,
		RefID:   refID,
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(accountIDs))
	distinct := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		if !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}

	return distinct, nil
}

// ListByAccount lists entries for an account, newest first.
func (r *JournalRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.JournalEntry, error) {
	rows, err := r.queries.ListJournalEntriesByAccount(ctx, generated.ListJournalEntriesByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.JournalEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToJournalEntry(row))
	}

	return entries, nil
}

// ListByRef lists entries caused by one business event.
func (r *JournalRepository) ListByRef(ctx context.Context, refType, refID string) ([]*domain.JournalEntry, error) {
	rows, err := r.queries.ListJournalEntriesByRef(ctx, generated.ListJournalEntriesByRefParams{
		RefType: refType,
		RefID:   refID,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.JournalEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToJournalEntry(row))
	}

	return entries, nil
}

// SumByAccount sums all entry amounts for an account. A nil tx runs the sum
// against the pool, outside any transaction.
func (r *JournalRepository) SumByAccount(ctx context.Context, tx usecase.Transaction, accountID string) (decimal.Decimal, error) {
	queries := r.queries
	if tx != nil {
		queries = generated.New(tx.(*Tx).PgxTx())
	}

	sum, err := queries.SumJournalEntriesByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

// SumByAccountAtTime sums entries created at or before the given time.
func (r *JournalRepository) SumByAccountAtTime(ctx context.Context, accountID string, at time.Time) (decimal.Decimal, error) {
	sum, err := r.queries.SumJournalEntriesByAccountAtTime(ctx, generated.SumJournalEntriesByAccountAtTimeParams{
		AccountID: accountID,
		CreatedAt: timeToPgTimestamptz(at),
	})
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func rowToJournalEntry(row generated.JournalEntry) *domain.JournalEntry {
	return &domain.JournalEntry{
		ID:         row.ID,
		AccountID:  row.AccountID,
		Kind:       domain.EntryKind(row.Kind),
		Amount:     numericToDecimal(row.Amount),
		Currency:   row.Currency,
		FxRate:     numericToDecimal(row.FxRate),
		AmountBase: numericToDecimal(row.AmountBase),
		RefType:    row.RefType,
		RefID:      row.RefID,
		Note:       row.Note.String,
		CreatedAt:  row.CreatedAt.Time,
	}
}
