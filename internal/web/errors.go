package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JonMunkholm/pinstore/internal/core"
	"github.com/JonMunkholm/pinstore/internal/logging"
)

// Client-facing messages. Internal error text is logged, never returned.
const (
	msgInternal         = "Internal server error"
	msgNotFound         = "Endpoint not found"
	msgMethodNotAllowed = "Method not allowed"
	msgBodyTooLarge     = "Request body too large"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as JSON with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Warn("json encode error", "error", err)
	}
}

// writeError writes {"error": message} with the given status.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, ErrorResponse{Error: message})
}

// respondError maps a service error to a status code and client message.
// Validation errors carry their own safe message; anything else is a 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		writeError(w, r, http.StatusBadRequest, ve.Message)
		return
	}

	logger := logging.FromContext(r.Context())
	if core.IsPersistenceError(err) {
		logger.Error("persistence failure", "path", r.URL.Path, "error", err)
	} else {
		logger.Error("request error", "path", r.URL.Path, "error", err)
	}
	writeError(w, r, http.StatusInternalServerError, msgInternal)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, msgNotFound)
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}
