package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/mahin/ledgercore/internal/adapter/http/dto"
	"github.com/mahin/ledgercore/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/accounts?limit=50", nil)
	if got := parseIntQuery(req, "limit", 10); got != 50 {
		t.Fatalf("expected limit=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/accounts?limit=invalid", nil)
	if got := parseIntQuery(req, "limit", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "limit", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"transfer not found", domain.ErrTransferNotFound, http.StatusNotFound},
		{"rate not found", domain.ErrRateNotFound, http.StatusNotFound},
		{"payment method not found", fmt.Errorf("%w: %q", domain.ErrPaymentMethodNotFound, "nope"), http.StatusNotFound},
		{"invalid entry kind", fmt.Errorf("%w: %q", domain.ErrInvalidEntryKind, "bogus"), http.StatusBadRequest},
		{"not convertible", domain.ErrNotConvertible, http.StatusUnprocessableEntity},
		{"row errors", domain.RowErrors{{Row: 1, Field: "name", Message: "empty"}}, http.StatusUnprocessableEntity},
		{"negative balance", domain.ErrNegativeBalanceNotAllowed, http.StatusBadRequest},
		{"same account", domain.ErrSameAccount, http.StatusBadRequest},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"archived endpoint", domain.ErrAccountInactive, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", errors.New("detail"))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" || resp.Message != "detail" {
		t.Fatalf("expected error and message to propagate, got %+v", resp)
	}
}

func TestWriteError_RowErrors(t *testing.T) {
	rr := httptest.NewRecorder()

	rowErrs := domain.RowErrors{
		{Row: 0, Field: "name", Message: "empty"},
		{Row: 2, Field: "currency", Message: "not ISO 4217"},
	}
	writeError(rr, http.StatusUnprocessableEntity, "failed to import accounts", rowErrs)

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if len(resp.RowErrors) != 2 {
		t.Fatalf("expected 2 row errors, got %d", len(resp.RowErrors))
	}
	if resp.RowErrors[1].Row != 2 || resp.RowErrors[1].Field != "currency" {
		t.Fatalf("expected row errors to propagate, got %+v", resp.RowErrors)
	}
}
