package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mahin/ledgercore/internal/adapter/http/dto"
	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/usecase"
)

// JournalService defines the behavior needed by JournalHandler.
type JournalService interface {
	PostEntry(ctx context.Context, input usecase.PostEntryInput) (*domain.JournalEntry, error)
	DeleteByReference(ctx context.Context, refType, refID string) error
	ListEntriesByAccount(ctx context.Context, input usecase.ListEntriesByAccountInput) ([]*domain.JournalEntry, error)
	ListEntriesByReference(ctx context.Context, refType, refID string) ([]*domain.JournalEntry, error)
	RecomputeBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	HistoricalBalance(ctx context.Context, accountID string, at time.Time) (decimal.Decimal, error)
	ReconcileAll(ctx context.Context) ([]*usecase.ReconciliationResult, error)
}

// JournalHandler handles journal-related HTTP requests.
type JournalHandler struct {
	journalUC JournalService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalUC JournalService) *JournalHandler {
	return &JournalHandler{journalUC: journalUC}
}

// PostEntry appends a journal entry and refreshes the account balance.
func (h *JournalHandler) PostEntry(w http.ResponseWriter, r *http.Request) {
	var req dto.PostEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	entry, err := h.journalUC.PostEntry(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to post entry", err)

		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// DeleteByReference removes every entry caused by one business event and
// recomputes the touched balances. Safe to repeat.
func (h *JournalHandler) DeleteByReference(w http.ResponseWriter, r *http.Request) {
	refType := chi.URLParam(r, "refType")
	refID := chi.URLParam(r, "refID")

	if refType == "" || refID == "" {
		writeError(w, http.StatusBadRequest, "missing reference", nil)
		return
	}

	if err := h.journalUC.DeleteByReference(r.Context(), refType, refID); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete entries", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByAccount lists entries for an account.
func (h *JournalHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", nil)
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.journalUC.ListEntriesByAccount(r.Context(), usecase.ListEntriesByAccountInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// ListByReference lists entries caused by one business event.
func (h *JournalHandler) ListByReference(w http.ResponseWriter, r *http.Request) {
	refType := chi.URLParam(r, "refType")
	refID := chi.URLParam(r, "refID")

	if refType == "" || refID == "" {
		writeError(w, http.StatusBadRequest, "missing reference", nil)
		return
	}

	entries, err := h.journalUC.ListEntriesByReference(r.Context(), refType, refID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// Recompute rebuilds an account balance from the journal.
func (h *JournalHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", nil)
		return
	}

	balance, err := h.journalUC.RecomputeBalance(r.Context(), accountID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to recompute balance", err)

		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID: accountID,
		Balance:   balance,
	})
}

// HistoricalBalance derives an account balance at a point in time.
// Expects an RFC 3339 "at" query parameter.
func (h *JournalHandler) HistoricalBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", nil)
		return
	}

	atParam := r.URL.Query().Get("at")
	at, err := time.Parse(time.RFC3339, atParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'at' timestamp", err)
		return
	}

	balance, err := h.journalUC.HistoricalBalance(r.Context(), accountID, at)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute balance", err)

		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID: accountID,
		Balance:   balance,
		At:        &at,
	})
}

// Reconcile compares every cached balance against the journal.
func (h *JournalHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	results, err := h.journalUC.ReconcileAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reconcile", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationsFromUseCase(results))
}
