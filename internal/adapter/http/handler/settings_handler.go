package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mahin/ledgercore/internal/adapter/http/dto"
	"github.com/mahin/ledgercore/internal/domain"
	"github.com/mahin/ledgercore/internal/usecase"
)

// SettingsService defines the behavior needed by SettingsHandler.
type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, input usecase.UpdateSettingsInput) (*domain.Settings, error)
}

// SettingsHandler handles finance settings HTTP requests.
type SettingsHandler struct {
	settingsUC SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsUC SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsUC: settingsUC}
}

// Get returns the settings singleton, creating the default row on first
// read.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsUC.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get settings", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SettingsFromDomain(settings))
}

// Update replaces the settings singleton.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	settings, err := h.settingsUC.Update(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update settings", err)

		return
	}

	writeJSON(w, http.StatusOK, dto.SettingsFromDomain(settings))
}
