package api

import (
	"encoding/json"
	"net/http"

	"github.com/joestump/bookmarks/internal/logger"
	"github.com/joestump/bookmarks/internal/middleware"
)

// Plain-text messages returned to clients.
const (
	msgInvalidData   = "Invalid Data"
	msgInvalidRating = "rating must be a number between 1 and 5"
	msgInvalidURL    = "Not valid URL"
	msgNotFound      = "Bookmark not found"
	msgEmptyPatch    = "Request body must contain either 'title', 'url', 'description' or 'rating'"
)

// ErrorResponse is the JSON body of 401 and 500 responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeText writes a plain-text response with the given HTTP status code.
func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

// serverError is the single failure path for storage and unexpected errors.
func serverError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	log.Error("request failed",
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
		logger.String("request_id", middleware.GetRequestID(r.Context())),
		logger.Error(err),
	)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}
