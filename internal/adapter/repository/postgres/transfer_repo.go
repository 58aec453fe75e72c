package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/infrastructure/postgres/generated"
	"github.com/mahin/ledgercore/internal/usecase"
)

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a transfer within a transaction.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	_, err := queries.CreateTransfer(ctx, generated.CreateTransferParams{
		ID:            transfer.ID,
		FromAccountID: transfer.FromAccountID,
		ToAccountID:   transfer.ToAccountID,
		Amount:        decimalToNumeric(transfer.Amount),
		Currency:      transfer.Currency,
		FxRate:        decimalToNumeric(transfer.FxRate),
		Fee:           decimalToNumeric(transfer.Fee),
		Note:          stringToPgText(transfer.Note),
		CreatedAt:     timeToPgTimestamptz(transfer.CreatedAt),
	})

	return err
}

// GetByID retrieves a transfer by ID.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	row, err := r.queries.GetTransferByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, err
	}

	return rowToTransfer(row), nil
}

// ListByAccount lists transfers touching an account as source or destination.
func (r *TransferRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error) {
	rows, err := r.queries.ListTransfersByAccount(ctx, generated.ListTransfersByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	transfers := make([]*domain.Transfer, 0, len(rows))
	for _, row := range rows {
		transfers = append(transfers, rowToTransfer(row))
	}

	return transfers, nil
}

// ListByPeriod lists transfers created in [from, to).
func (r *TransferRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.Transfer, error) {
	rows, err := r.queries.ListTransfersByPeriod(ctx, generated.ListTransfersByPeriodParams{
		FromTime: timeToPgTimestamptz(from),
		ToTime:   timeToPgTimestamptz(to),
	})
	if err != nil {
		return nil, err
	}

	transfers := make([]*domain.Transfer, 0, len(rows))
	for _, row := range rows {
		transfers = append(transfers, rowToTransfer(row))
	}

	return transfers, nil
}

func rowToTransfer(row generated.Transfer) *domain.Transfer {
	return &domain.Transfer{
		ID:            row.ID,
		FromAccountID: row.FromAccountID,
		ToAccountID:   row.ToAccountID,
		Amount:        numericToDecimal(row.Amount),
		Currency:      row.Currency,
		FxRate:        numericToDecimal(row.FxRate),
		Fee:           numericToDecimal(row.Fee),
		Note:          row.Note.String,
		CreatedAt:     row.CreatedAt.Time,
	}
}
