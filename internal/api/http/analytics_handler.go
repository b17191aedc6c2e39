package http

import (
	"net/http"

	"greencommute-backend/internal/service"
)

type AnalyticsHandler struct {
	analyticsSvc service.AnalyticsService
}

func NewAnalyticsHandler(analyticsSvc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// OrganizationSummary reports on the caller's own organization.
func (h *AnalyticsHandler) OrganizationSummary(w http.ResponseWriter, r *http.Request) {
	orgID, err := callerOrgID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	summary, err := h.analyticsSvc.OrganizationSummary(r.Context(), orgID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *AnalyticsHandler) SystemSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsSvc.SystemSummary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
