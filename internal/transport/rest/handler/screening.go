package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"asdscreen/internal/model"
	"asdscreen/internal/scoring"
	"asdscreen/internal/service"
)

// ScreeningHandler handles questionnaire submission and retrieval
type ScreeningHandler struct {
	screeningSvc *service.ScreeningService
}

// NewScreeningHandler creates a new screening handler
func NewScreeningHandler(screeningSvc *service.ScreeningService) *ScreeningHandler {
	return &ScreeningHandler{screeningSvc: screeningSvc}
}

// Questionnaire handles GET /v1/questionnaire
func (h *ScreeningHandler) Questionnaire(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.NewQuestionnaire())
}

// Submit handles POST /v1/screenings
func (h *ScreeningHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.ScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	screening, err := h.screeningSvc.Submit(r.Context(), &req)
	if err != nil {
		var predErr *scoring.PredictionError
		if errors.As(err, &predErr) {
			// Malformed submissions are client errors; the failure
			// carries no partial score or probability.
			writeError(w, http.StatusUnprocessableEntity, predErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, screening)
}

// Get handles GET /v1/screenings/{id}
func (h *ScreeningHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	screening, err := h.screeningSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if screening == nil {
		writeError(w, http.StatusNotFound, "screening not found")
		return
	}

	writeJSON(w, http.StatusOK, screening)
}

// List handles GET /v1/screenings
func (h *ScreeningHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := int64(50)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	screenings, err := h.screeningSvc.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if screenings == nil {
		screenings = []*model.Screening{}
	}

	writeJSON(w, http.StatusOK, screenings)
}
