package integration

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/usecase"
	"github.com/mahin/ledgercore/tests/testutil"
)

func TestConcurrentTransfers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	s := newStack(t, testDB)
	defer s.Close()

	t.Run("concurrent transfers conserve total balance", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		source := testDB.CreateTestAccount(ctx, "source", "USD", decimal.NewFromInt(1000))
		dest := testDB.CreateTestAccount(ctx, "dest", "USD", decimal.Zero)

		numTransfers := 50
		transferAmount := decimal.NewFromInt(10)

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		wg.Add(numTransfers)

		for range numTransfers {
			go func() {
				defer wg.Done()

				_, err := s.TransferUC.CreateTransfer(ctx, usecase.CreateTransferInput{
					FromAccountID: source.ID,
					ToAccountID:   dest.ID,
					Amount:        transferAmount,
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != int32(numTransfers) {
			t.Errorf("expected %d successful transfers, got %d", numTransfers, successCount.Load())
		}

		sourceAcc, _ := s.AccountRepo.GetByID(ctx, source.ID)
		destAcc, _ := s.AccountRepo.GetByID(ctx, dest.ID)

		if !sourceAcc.Balance.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected source balance 500, got %s", sourceAcc.Balance)
		}
		if !destAcc.Balance.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected dest balance 500, got %s", destAcc.Balance)
		}

		total := sourceAcc.Balance.Add(destAcc.Balance)
		if !total.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected total conserved at 1000, got %s", total)
		}
	})

	t.Run("concurrent postings to one account lose no entries", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		account := testDB.CreateTestAccount(ctx, "wallet", "BDT", decimal.NewFromInt(100))

		numPostings := 50
		amount := decimal.NewFromInt(10)

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		wg.Add(numPostings)

		for i := range numPostings {
			go func() {
				defer wg.Done()

				_, err := s.JournalUC.PostEntry(ctx, usecase.PostEntryInput{
					AccountID: account.ID,
					Kind:      domain.EntryKindIncome,
					Amount:    amount,
					RefType:   domain.RefTypeExpense,
					RefID:     fmt.Sprintf("inv-%d", i),
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != int32(numPostings) {
			t.Errorf("expected %d successful postings, got %d", numPostings, successCount.Load())
		}

		acc, _ := s.AccountRepo.GetByID(ctx, account.ID)
		if !acc.Balance.Equal(decimal.NewFromInt(600)) {
			t.Errorf("expected balance 600 after 50 postings of 10, got %s", acc.Balance)
		}
	})

	t.Run("concurrent transfers reject overdraft when negatives disallowed", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		_, err := s.SettingsUC.Update(ctx, usecase.UpdateSettingsInput{
			BaseCurrency:          "BDT",
			AllowNegativeBalances: false,
		})
		if err != nil {
			t.Fatalf("failed to update settings: %v", err)
		}

		source := testDB.CreateTestAccount(ctx, "source", "USD", decimal.NewFromInt(100))
		dest := testDB.CreateTestAccount(ctx, "dest", "USD", decimal.Zero)

		numTransfers := 20
		transferAmount := decimal.NewFromInt(10) // only 10 of 20 can fit

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		wg.Add(numTransfers)

		for range numTransfers {
			go func() {
				defer wg.Done()

				_, err := s.TransferUC.CreateTransfer(ctx, usecase.CreateTransferInput{
					FromAccountID: source.ID,
					ToAccountID:   dest.ID,
					Amount:        transferAmount,
				})
				if err == nil {
					successCount.Add(1)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != 10 {
			t.Errorf("expected exactly 10 successful transfers, got %d", successCount.Load())
		}

		sourceAcc, _ := s.AccountRepo.GetByID(ctx, source.ID)
		if sourceAcc.Balance.IsNegative() {
			t.Errorf("expected source to never go negative, got %s", sourceAcc.Balance)
		}
	})
}
