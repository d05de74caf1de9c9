package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/logger"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/services"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/utils"
)

// InsightsHandler serves the financial-health view with ETag support, since
// insights are recomputed only when the batch generation changes.
type InsightsHandler struct {
	reports services.ReportService
}

func NewInsightsHandler(reports services.ReportService) *InsightsHandler {
	return &InsightsHandler{reports: reports}
}

func (h *InsightsHandler) HandleGetInsights(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	report := h.reports.Insights(scopeFromRequest(r))

	w.Header().Set("Cache-Control", "no-cache, private")
	if etag, err := utils.GenerateETag(report); err == nil && etag != "" {
		quoted := fmt.Sprintf("\"%s\"", etag)
		w.Header().Set("ETag", quoted)
		for _, clientETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(clientETag) == quoted {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	} else if err != nil {
		ctxLogger.Warn("Failed to generate ETag for insights", "error", err)
	}

	utils.SendJSON(w, report, http.StatusOK)
}
