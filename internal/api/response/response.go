// Package response provides utilities for sending consistent HTTP responses.
// Every API response carries a status field: "ok" on success, "error" otherwise.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ErrorResponse is the error envelope returned by the API.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RespondJSON sends a JSON response with the given status code.
// Sets the Content-Type header to application/json and writes the status code.
// If data is nil, only the status code is sent (useful for 204 No Content).
// Logs encoding errors but does not fail the response.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondError sends the error envelope with the given status code.
// The message should be safe to show to API consumers; internal details belong in the log.
//
// Example:
//
//	response.RespondError(w, http.StatusBadRequest, "client_id is required")
//	response.RespondError(w, http.StatusInternalServerError, "failed to load")
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{
		Status:  StatusError,
		Message: message,
	})
}
