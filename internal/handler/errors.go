package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jmadera/tripbook/internal/domain"
)

// errorResponse is the JSON error body: {"error":{"code":...,"message":...}}.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status.
// Encoding failures at this point can only be logged — the header is gone.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError writes the standard error body.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeServiceError maps a service-layer error to its HTTP representation.
// Anything outside the domain taxonomy is a storage failure: logged with the
// request context and reported as a plain 500 without leaking details.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		writeError(w, http.StatusNotFound, "client_not_found", "client not found")
	case errors.Is(err, domain.ErrTripNotFound):
		writeError(w, http.StatusNotFound, "trip_not_found", "trip not found")
	case errors.Is(err, domain.ErrNotRegistered):
		writeError(w, http.StatusNotFound, "not_registered", "client is not registered for this trip")
	case errors.Is(err, domain.ErrTripFull):
		writeError(w, http.StatusConflict, "trip_full", "trip has reached its maximum number of participants")
	case errors.Is(err, domain.ErrAlreadyRegistered):
		writeError(w, http.StatusConflict, "already_registered", "client is already registered for this trip")
	default:
		slog.ErrorContext(r.Context(), "unhandled service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}
