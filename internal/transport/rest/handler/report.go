package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"asdscreen/internal/service"
)

// ReportHandler handles report endpoints
type ReportHandler struct {
	reportSvc *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Get handles GET /v1/reports/{screeningId}
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	screeningID := mux.Vars(r)["screeningId"]

	report, err := h.reportSvc.Generate(r.Context(), screeningID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "screening not found")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
