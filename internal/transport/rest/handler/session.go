package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"mentorsurvey/internal/model"
	"mentorsurvey/internal/service"
)

// SessionHandler handles the mentor survey endpoints
type SessionHandler struct {
	surveySvc *service.SurveyService
	logger    *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(surveySvc *service.SurveyService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{surveySvc: surveySvc, logger: logger}
}

// AnswersRequest is the request body for posting instance answers
type AnswersRequest struct {
	Answers model.Answers `json:"answers"`
}

// Create handles POST /sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	resp, err := h.surveySvc.CreateSession(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.surveySvc.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetInstance handles GET /sessions/{id}/instances/{instance_id}
func (h *SessionHandler) GetInstance(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	view, err := h.surveySvc.GetInstance(r.Context(), vars["id"], vars["instance_id"])
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SubmitAnswers handles POST /sessions/{id}/instances/{instance_id}/answers
func (h *SessionHandler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	var req AnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Answers == nil {
		req.Answers = model.Answers{}
	}

	vars := mux.Vars(r)
	res, err := h.surveySvc.SubmitAnswers(r.Context(), vars["id"], vars["instance_id"], req.Answers)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Submit handles POST /sessions/{id}/submit
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	resp, err := h.surveySvc.Submit(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
