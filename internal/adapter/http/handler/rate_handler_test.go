package handler

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
	"github.com/mahin/ledgercore/internal/usecase"
)

type rateServiceStub struct {
	upsertFn  func(ctx context.Context, input usecase.UpsertRateInput) (*domain.ExchangeRate, error)
	getFn     func(ctx context.Context, from, to string) (*domain.ExchangeRate, error)
	listFn    func(ctx context.Context) ([]*domain.ExchangeRate, error)
	convertFn func(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

func (s *rateServiceStub) UpsertRate(ctx context.Context, input usecase.UpsertRateInput) (*domain.ExchangeRate, error) {
	return s.upsertFn(ctx, input)
}

func (s *rateServiceStub) GetRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	return s.getFn(ctx, from, to)
}

func (s *rateServiceStub) ListRates(ctx context.Context) ([]*domain.ExchangeRate, error) {
	return s.listFn(ctx)
}

func (s *rateServiceStub) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	return s.convertFn(ctx, amount, from, to)
}

func newRateStub() *rateServiceStub {
	return &rateServiceStub{
		upsertFn: func(ctx context.Context, input usecase.UpsertRateInput) (*domain.ExchangeRate, error) {
			return nil, nil
		},
		getFn:  func(ctx context.Context, from, to string) (*domain.ExchangeRate, error) { return nil, nil },
		listFn: func(ctx context.Context) ([]*domain.ExchangeRate, error) { return nil, nil },
		convertFn: func(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
			return decimal.Zero, nil
		},
	}
}

func TestRateHandler_Upsert(t *testing.T) {
	var captured usecase.UpsertRateInput
	stub := newRateStub()
	stub.upsertFn = func(ctx context.Context, input usecase.UpsertRateInput) (*domain.ExchangeRate, error) {
		captured = input
		return &domain.ExchangeRate{
			FromCurrency: input.FromCurrency,
			ToCurrency:   input.ToCurrency,
			Rate:         input.Rate,
		}, nil
	}
	handler := NewRateHandler(stub)

	body, _ := json.Marshal(dto.UpsertRateRequest{
		FromCurrency: "USD",
		ToCurrency:   "BDT",
		Rate:         decimal.RequireFromString("110.50"),
	})

	req := httptest.NewRequest(http.MethodPut, "/rates", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Upsert(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.FromCurrency != "USD" || captured.ToCurrency != "BDT" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
}

func TestRateHandler_Upsert_SamePair(t *testing.T) {
	stub := newRateStub()
	stub.upsertFn = func(ctx context.Context, input usecase.UpsertRateInput) (*domain.ExchangeRate, error) {
		return nil, domain.ErrSameCurrency
	}
	handler := NewRateHandler(stub)

	body, _ := json.Marshal(dto.UpsertRateRequest{
		FromCurrency: "USD",
		ToCurrency:   "USD",
		Rate:         decimal.NewFromInt(1),
	})

	req := httptest.NewRequest(http.MethodPut, "/rates", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Upsert(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRateHandler_Get_NotFound(t *testing.T) {
	stub := newRateStub()
	stub.getFn = func(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
		return nil, domain.ErrRateNotFound
	}
	handler := NewRateHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/rates/USD/JPY", nil)
	req = setChiURLParams(req, map[string]string{"from": "USD", "to": "JPY"})
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRateHandler_Convert(t *testing.T) {
	stub := newRateStub()
	stub.convertFn = func(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
		if from != "USD" || to != "BDT" {
			t.Fatalf("expected USD to BDT, got %s to %s", from, to)
		}
		return amount.Mul(decimal.RequireFromString("110.50")), nil
	}
	handler := NewRateHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/rates/convert?amount=100&from=USD&to=BDT", nil)
	rec := httptest.NewRecorder()

	handler.Convert(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ConversionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Converted.Equal(decimal.NewFromInt(11050)) {
		t.Fatalf("expected 11050, got %s", resp.Converted)
	}
}

func TestRateHandler_Convert_BadAmount(t *testing.T) {
	handler := NewRateHandler(newRateStub())

	req := httptest.NewRequest(http.MethodGet, "/rates/convert?amount=abc&from=USD&to=BDT", nil)
	rec := httptest.NewRecorder()

	handler.Convert(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRateHandler_Convert_NoRate(t *testing.T) {
	stub := newRateStub()
	stub.convertFn = func(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
		return decimal.Zero, domain.ErrNotConvertible
	}
	handler := NewRateHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/rates/convert?amount=100&from=USD&to=JPY", nil)
	rec := httptest.NewRecorder()

	handler.Convert(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}
