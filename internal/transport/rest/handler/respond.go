package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mentorsurvey/internal/cache"
	"mentorsurvey/internal/engine"
	"mentorsurvey/internal/model"
	"mentorsurvey/internal/roster"
	"mentorsurvey/internal/service"
	"mentorsurvey/internal/storage"
)

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service errors to HTTP statuses. Unmapped errors are
// logged and reported as 500 without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, roster.ErrUnknownTeam), errors.Is(err, service.ErrMissingTeam):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, cache.ErrSessionNotFound),
		errors.Is(err, engine.ErrInstanceNotFound),
		errors.Is(err, storage.ErrDocumentNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionSubmitted), errors.Is(err, cache.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUploadsDisabled):
		writeError(w, http.StatusNotImplemented, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
