package handler

import (
	"net/http"

	"asdscreen/internal/service"
)

// StatsHandler handles the analysis dashboard endpoints
type StatsHandler struct {
	statsSvc *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsSvc *service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// Distribution handles GET /v1/stats/distribution
func (h *StatsHandler) Distribution(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.statsSvc.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}
