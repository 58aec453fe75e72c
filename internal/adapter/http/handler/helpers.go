package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mahin/ledgercore/internal/adapter/http/dto"
	"github.com/mahin/ledgercore/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response, mapping batch row errors to a
// structured list.
func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := dto.ErrorResponse{Error: message}

	var rowErrs domain.RowErrors
	if errors.As(err, &rowErrs) {
		resp.RowErrors = dto.RowErrorsFromDomain(rowErrs)
	} else if err != nil {
		resp.Message = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var rowErrs domain.RowErrors
	if errors.As(err, &rowErrs) {
		return http.StatusUnprocessableEntity
	}

	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransferNotFound),
		errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrRateNotFound),
		errors.Is(err, domain.ErrPaymentMethodNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotConvertible):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrTransferImmutable),
		errors.Is(err, domain.ErrNegativeBalanceNotAllowed),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrSameCurrency),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidFee),
		errors.Is(err, domain.ErrInvalidRate),
		errors.Is(err, domain.ErrInvalidAccountName),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidAccountType),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidRefType),
		errors.Is(err, domain.ErrInvalidEntryKind),
		errors.Is(err, domain.ErrAmountTooLarge):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
