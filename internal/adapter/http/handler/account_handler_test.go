package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/adapter/http/dto"
	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/usecase"
)

type accountServiceStub struct {
	createFn  func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFn     func(ctx context.Context, id string) (*domain.Account, error)
	listFn    func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	archiveFn func(ctx context.Context, id string) (*domain.Account, error)
	importFn  func(ctx context.Context, rows []domain.AccountImportRow) ([]*domain.Account, error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return s.listFn(ctx, input)
}

func (s *accountServiceStub) ArchiveAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.archiveFn(ctx, id)
}

func (s *accountServiceStub) ImportAccounts(ctx context.Context, rows []domain.AccountImportRow) ([]*domain.Account, error) {
	return s.importFn(ctx, rows)
}

func newAccountStub() *accountServiceStub {
	return &accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			return nil, nil
		},
		getFn: func(ctx context.Context, id string) (*domain.Account, error) { return nil, nil },
		listFn: func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
			return nil, nil
		},
		archiveFn: func(ctx context.Context, id string) (*domain.Account, error) { return nil, nil },
		importFn: func(ctx context.Context, rows []domain.AccountImportRow) ([]*domain.Account, error) {
			return nil, nil
		},
	}
}

func TestAccountHandler_Create_Success(t *testing.T) {
	account := &domain.Account{
		ID:       "acc-1",
		Name:     "Main Wallet",
		Type:     domain.AccountTypeCash,
		Currency: "USD",
		Balance:  decimal.NewFromInt(500),
	}

	var captured usecase.CreateAccountInput
	stub := newAccountStub()
	stub.createFn = func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
		captured = input
		return account, nil
	}
	handler := NewAccountHandler(stub)

	body, _ := json.Marshal(dto.CreateAccountRequest{
		Name:           "Main Wallet",
		Type:           "cash",
		Currency:       "USD",
		OpeningBalance: decimal.NewFromInt(500),
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Name != "Main Wallet" || captured.Currency != "USD" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "acc-1" {
		t.Fatalf("expected account ID acc-1, got %s", resp.ID)
	}
}

func TestAccountHandler_Create_InvalidJSON(t *testing.T) {
	stub := newAccountStub()
	stub.createFn = func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
		t.Fatal("CreateAccount should not be called for invalid payload")
		return nil, nil
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_ValidationError(t *testing.T) {
	stub := newAccountStub()
	stub.createFn = func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
		return nil, domain.ErrInvalidAccountName
	}
	handler := NewAccountHandler(stub)

	body, _ := json.Marshal(dto.CreateAccountRequest{Currency: "USD"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_ServiceError(t *testing.T) {
	stub := newAccountStub()
	stub.createFn = func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
		return nil, errors.New("db error")
	}
	handler := NewAccountHandler(stub)

	body, _ := json.Marshal(dto.CreateAccountRequest{Name: "test", Currency: "USD"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAccountHandler_Get(t *testing.T) {
	account := &domain.Account{ID: "acc-1", Name: "Main Wallet"}
	stub := newAccountStub()
	stub.getFn = func(ctx context.Context, id string) (*domain.Account, error) {
		if id != "acc-1" {
			t.Fatalf("expected id acc-1, got %s", id)
		}
		return account, nil
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	stub := newAccountStub()
	stub.getFn = func(ctx context.Context, id string) (*domain.Account, error) {
		return nil, domain.ErrAccountNotFound
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_List(t *testing.T) {
	stub := newAccountStub()
	stub.listFn = func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
		if input.Limit != 5 || input.Offset != 2 {
			t.Fatalf("expected limit=5 offset=2, got %+v", input)
		}
		return []*domain.Account{{ID: "acc-1"}, {ID: "acc-2"}}, nil
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/accounts?limit=5&offset=2", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(resp.Accounts))
	}
}

func TestAccountHandler_Archive(t *testing.T) {
	stub := newAccountStub()
	stub.archiveFn = func(ctx context.Context, id string) (*domain.Account, error) {
		return &domain.Account{ID: id, Status: domain.AccountStatusArchived}, nil
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/archive", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Archive(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != string(domain.AccountStatusArchived) {
		t.Fatalf("expected archived status, got %s", resp.Status)
	}
}

func TestAccountHandler_Import_RowErrors(t *testing.T) {
	stub := newAccountStub()
	stub.importFn = func(ctx context.Context, rows []domain.AccountImportRow) ([]*domain.Account, error) {
		return nil, domain.RowErrors{
			{Row: 1, Field: "currency", Message: "not ISO 4217"},
		}
	}
	handler := NewAccountHandler(stub)

	body, _ := json.Marshal(dto.ImportAccountsRequest{
		Accounts: []dto.ImportAccountRow{
			{Name: "A", Type: "cash", Currency: "USD", Status: "active"},
			{Name: "B", Type: "cash", Currency: "usd", Status: "active"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/accounts/import", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Import(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if len(resp.RowErrors) != 1 || resp.RowErrors[0].Row != 1 {
		t.Fatalf("expected row error for row 1, got %+v", resp.RowErrors)
	}
}

func TestAccountHandler_Import_Success(t *testing.T) {
	stub := newAccountStub()
	stub.importFn = func(ctx context.Context, rows []domain.AccountImportRow) ([]*domain.Account, error) {
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		return []*domain.Account{{ID: "acc-1"}, {ID: "acc-2"}}, nil
	}
	handler := NewAccountHandler(stub)

	body, _ := json.Marshal(dto.ImportAccountsRequest{
		Accounts: []dto.ImportAccountRow{
			{Name: "A", Type: "cash", Currency: "USD", Status: "active"},
			{Name: "B", Type: "bank", Currency: "EUR", Status: "active"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/accounts/import", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Import(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
