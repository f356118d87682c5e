package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"mentorsurvey/internal/service"
)

// ReportHandler handles director report endpoints
type ReportHandler struct {
	reportSvc *service.ReportService
	logger    *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc, logger: logger}
}

// Team handles GET /reports/teams/{team_key}
func (h *ReportHandler) Team(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportSvc.TeamReport(r.Context(), mux.Vars(r)["team_key"])
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
