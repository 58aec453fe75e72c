package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mahin/ledgercore/internal/adapter/http/dto"
	"github.com/mahin/ledgercore/internal/fx"
	"github.com/mahin/ledgercore/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	TotalBalance(ctx context.Context) (*usecase.BaseSummary, error)
	TransferVolume(ctx context.Context, from, to time.Time) (*usecase.BaseSummary, error)
	Performance(ctx context.Context, invested, returned []fx.Item) (*usecase.InvestmentPerformance, error)
}

// ReportHandler handles cross-currency report HTTP requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// TotalBalance sums every active account balance in the base currency.
func (h *ReportHandler) TotalBalance(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportUC.TotalBalance(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute total balance", err)

		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromUseCase(summary))
}

// TransferVolume sums transfer amounts over a period in the base currency.
// Expects RFC 3339 "from" and "to" query parameters; the window is
// inclusive of from and exclusive of to.
func (h *ReportHandler) TransferVolume(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := time.Parse(time.RFC3339, q.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'from' timestamp", err)
		return
	}

	to, err := time.Parse(time.RFC3339, q.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'to' timestamp", err)
		return
	}

	summary, err := h.reportUC.TransferVolume(r.Context(), from, to)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute transfer volume", err)

		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromUseCase(summary))
}

// Performance computes an invested/returned/ROI report over
// mixed-currency cash flows.
func (h *ReportHandler) Performance(w http.ResponseWriter, r *http.Request) {
	var req dto.PerformanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	perf, err := h.reportUC.Performance(r.Context(), dto.ToItems(req.Invested), dto.ToItems(req.Returned))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute performance", err)

		return
	}

	writeJSON(w, http.StatusOK, dto.PerformanceFromUseCase(perf))
}
