package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/adapter/http/dto"
	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/usecase"
)

// RateService defines the behavior needed by RateHandler.
type RateService interface {
	UpsertRate(ctx context.Context, input usecase.UpsertRateInput) (*domain.ExchangeRate, error)
	GetRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error)
	ListRates(ctx context.Context) ([]*domain.ExchangeRate, error)
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// RateHandler handles exchange-rate HTTP requests.
type RateHandler struct {
	rateUC RateService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateUC RateService) *RateHandler {
	return &RateHandler{rateUC: rateUC}
}

// Upsert stores a rate, replacing any previous value for the pair.
func (h *RateHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	rate, err := h.rateUC.UpsertRate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to upsert rate", err)

		return
	}

	writeJSON(w, http.StatusOK, dto.RateFromDomain(rate))
}

// Get retrieves the stored rate for a pair. Only the exact direction is
// looked up here; conversion handles inversion.
func (h *RateHandler) Get(w http.ResponseWriter, r *http.Request) {
	from := chi.URLParam(r, "from")
	to := chi.URLParam(r, "to")

	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "missing currency pair", nil)
		return
	}

	rate, err := h.rateUC.GetRate(r.Context(), from, to)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get rate", err)

		return
	}

	writeJSON(w, http.StatusOK, dto.RateFromDomain(rate))
}

// List lists all stored rates.
func (h *RateHandler) List(w http.ResponseWriter, r *http.Request) {
	rates, err := h.rateUC.ListRates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list rates", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RatesFromDomain(rates))
}

// Convert converts an amount between currencies using stored rates,
// falling back to the inverse pair.
func (h *RateHandler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := decimal.NewFromString(q.Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err)
		return
	}

	from := q.Get("from")
	to := q.Get("to")

	converted, err := h.rateUC.Convert(r.Context(), amount, from, to)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to convert", err)

		return
	}

	writeJSON(w, http.StatusOK, dto.ConversionResponse{
		Amount:    amount,
		From:      from,
		To:        to,
		Converted: converted,
	})
}
