package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/adapter/http/dto"
	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/tests/testutil"
)

func TestTransfer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	s := newStack(t, testDB)
	defer s.Close()

	t.Run("create transfer between accounts", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		source := testDB.CreateTestAccount(ctx, "source", "USD", decimal.NewFromInt(1000))
		dest := testDB.CreateTestAccount(ctx, "dest", "USD", decimal.Zero)

		req := dto.CreateTransferRequest{
			FromAccountID: source.ID,
			ToAccountID:   dest.ID,
			Amount:        decimal.RequireFromString("100.50"),
		}
		body, _ := json.Marshal(req)

		r := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}

		var resp dto.TransferResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		// Verify balances derived from the journal
		sourceAccount, _ := s.AccountRepo.GetByID(ctx, source.ID)
		destAccount, _ := s.AccountRepo.GetByID(ctx, dest.ID)

		if !sourceAccount.Balance.Equal(decimal.RequireFromString("899.50")) {
			t.Errorf("expected source balance 899.50, got %s", sourceAccount.Balance)
		}
		if !destAccount.Balance.Equal(decimal.RequireFromString("100.50")) {
			t.Errorf("expected dest balance 100.50, got %s", destAccount.Balance)
		}

		// The transfer produced exactly two legs that sum to zero
		entries, err := s.JournalRepo.ListByRef(ctx, domain.RefTypeTransfer, resp.ID)
		if err != nil {
			t.Fatalf("failed to list entries: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 journal legs, got %d", len(entries))
		}

		sum := decimal.Zero
		for _, e := range entries {
			sum = sum.Add(e.Amount)
		}
		if !sum.IsZero() {
			t.Errorf("expected legs to sum to zero, got %s", sum)
		}
	})

	t.Run("transfer with fee posts a third leg", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		source := testDB.CreateTestAccount(ctx, "source", "BDT", decimal.NewFromInt(1000))
		dest := testDB.CreateTestAccount(ctx, "dest", "BDT", decimal.Zero)

		req := dto.CreateTransferRequest{
			FromAccountID: source.ID,
			ToAccountID:   dest.ID,
			Amount:        decimal.NewFromInt(100),
			Fee:           decimal.NewFromInt(5),
		}
		body, _ := json.Marshal(req)

		r := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewReader(body))
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		sourceAccount, _ := s.AccountRepo.GetByID(ctx, source.ID)
		if !sourceAccount.Balance.Equal(decimal.NewFromInt(895)) {
			t.Errorf("expected source balance 895, got %s", sourceAccount.Balance)
		}
	})

	t.Run("cross currency transfer uses stored rate", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		testDB.SeedRate(ctx, "USD", "BDT", decimal.RequireFromString("110.50"))

		source := testDB.CreateTestAccount(ctx, "usd-wallet", "USD", decimal.NewFromInt(500))
		dest := testDB.CreateTestAccount(ctx, "bdt-wallet", "BDT", decimal.Zero)

		req := dto.CreateTransferRequest{
			FromAccountID: source.ID,
			ToAccountID:   dest.ID,
			Amount:        decimal.NewFromInt(100),
		}
		body, _ := json.Marshal(req)

		r := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewReader(body))
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		destAccount, _ := s.AccountRepo.GetByID(ctx, dest.ID)
		if !destAccount.Balance.Equal(decimal.NewFromInt(11050)) {
			t.Errorf("expected dest balance 11050, got %s", destAccount.Balance)
		}
	})

	t.Run("cross currency transfer without rate is rejected", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		source := testDB.CreateTestAccount(ctx, "usd-wallet", "USD", decimal.NewFromInt(500))
		dest := testDB.CreateTestAccount(ctx, "jpy-wallet", "JPY", decimal.Zero)

		req := dto.CreateTransferRequest{
			FromAccountID: source.ID,
			ToAccountID:   dest.ID,
			Amount:        decimal.NewFromInt(100),
		}
		body, _ := json.Marshal(req)

		r := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewReader(body))
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, r)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", w.Code)
		}

		sourceAccount, _ := s.AccountRepo.GetByID(ctx, source.ID)
		if !sourceAccount.Balance.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected source balance unchanged, got %s", sourceAccount.Balance)
		}
	})

	t.Run("reject transfer to same account", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		account := testDB.CreateTestAccount(ctx, "self", "USD", decimal.NewFromInt(100))

		req := dto.CreateTransferRequest{
			FromAccountID: account.ID,
			ToAccountID:   account.ID,
			Amount:        decimal.NewFromInt(50),
		}
		body, _ := json.Marshal(req)

		r := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", bytes.NewReader(body))
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}
