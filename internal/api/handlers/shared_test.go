package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JasVita/wealthpilot-portal/internal/apperrors"
)

// TestRespondFailure is an internal test because respondFailure is unexported.
func TestRespondFailure(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"missing client id", apperrors.ErrMissingClientID, http.StatusBadRequest, "client_id is required"},
		{"wrapped invalid period", fmt.Errorf("%w: month", apperrors.ErrInvalidPeriod), http.StatusBadRequest, "invalid period: month"},
		{"unknown snapshot", apperrors.ErrSnapshotNotFound, http.StatusNotFound, "snapshot not found"},
		{"upstream failure hides details", fmt.Errorf("%w: %w", apperrors.ErrFailedToLoad, errors.New("connection refused")), http.StatusInternalServerError, "failed to load"},
		{"unexpected error", errors.New("boom"), http.StatusInternalServerError, "failed to load"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			respondFailure(w, "test", tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if body["status"] != "error" || body["message"] != tt.wantMessage {
				t.Errorf("Expected error envelope with %q, got %v", tt.wantMessage, body)
			}
		})
	}
}
