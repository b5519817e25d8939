package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

// respondWithError maps service errors to status codes. Validation messages
// are returned to the client; anything else is replaced by a generic message.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, ErrValidation):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, ErrUpstream):
		statusCode = http.StatusBadGateway
		message = "The language model provider failed to respond."
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.WarnContext(r.Context(), "Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
