package handlers

import (
	"net/http"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/services"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/utils"
)

// DashboardHandler serves the derived aggregate views.
type DashboardHandler struct {
	reports services.ReportService
}

func NewDashboardHandler(reports services.ReportService) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

// scopeFromRequest reads the window and category filters from the query
// string.
func scopeFromRequest(r *http.Request) services.Scope {
	return services.Scope{
		Window:   r.URL.Query().Get("window"),
		Category: r.URL.Query().Get("category"),
	}
}

func (h *DashboardHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, h.reports.Summary(scopeFromRequest(r)), http.StatusOK)
}

func (h *DashboardHandler) HandleGetCategories(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, h.reports.Categories(scopeFromRequest(r)), http.StatusOK)
}

func (h *DashboardHandler) HandleGetDaily(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, h.reports.Daily(scopeFromRequest(r)), http.StatusOK)
}

func (h *DashboardHandler) HandleGetTrend(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, h.reports.Trend(), http.StatusOK)
}

// HandleGetTransactions lists the current batch in insertion order. Parsed
// records are read-only; there is no per-record edit or delete.
func (h *DashboardHandler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, h.reports.Transactions(), http.StatusOK)
}
