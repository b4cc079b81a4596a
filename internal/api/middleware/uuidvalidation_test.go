package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/JasVita/wealthpilot-portal/internal/api/handlers"
	"github.com/JasVita/wealthpilot-portal/internal/api/middleware"
	"github.com/JasVita/wealthpilot-portal/internal/testutil"
)

// newSnapshotRouter mounts the snapshot lookup the way the API does and returns
// the id of one stored cash snapshot. /latest carries no uuid parameter.
func newSnapshotRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	client := testutil.CreateClient(t, db)
	testutil.NewStatementBlock(client.ID, "2024-06-30").
		WithRows("cash", testutil.Row("HKD", 250)).
		Build(t, db)

	svc := testutil.NewTestSnapshotService(t, db)
	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	snaps, err := svc.ListSnapshots(context.Background(), client.ID)
	if err != nil || len(snaps) == 0 {
		t.Fatalf("Expected stored snapshots, got %d (err %v)", len(snaps), err)
	}

	h := handlers.NewSnapshotHandler(svc)
	r := chi.NewRouter()
	r.Route("/api/assets/snapshots", func(r chi.Router) {
		r.With(middleware.ValidateUUIDMiddleware).Get("/{uuid}", h.Get)
		r.With(middleware.ValidateUUIDMiddleware).Get("/latest", h.Get)
	})
	return r, snaps[0].ID
}

func TestValidateUUIDMiddleware(t *testing.T) {
	router, snapshotID := newSnapshotRouter(t)

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		wantMessage string
	}{
		{"stored snapshot id", "/api/assets/snapshots/" + snapshotID, http.StatusOK, ""},
		{"unknown snapshot id", "/api/assets/snapshots/" + testutil.MakeID(), http.StatusNotFound, ""},
		{"client id instead of uuid", "/api/assets/snapshots/42", http.StatusBadRequest, "invalid UUID format"},
		{"truncated snapshot id", "/api/assets/snapshots/" + snapshotID[:8], http.StatusBadRequest, "invalid UUID format"},
		{"route without uuid", "/api/assets/snapshots/latest", http.StatusBadRequest, "valid UUID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}

			var body map[string]any
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			switch {
			case tt.wantMessage != "":
				if body["status"] != "error" || body["message"] != tt.wantMessage {
					t.Errorf("Expected error %q, got %v", tt.wantMessage, body)
				}
			case tt.wantStatus == http.StatusOK:
				if body["id"] != snapshotID {
					t.Errorf("Expected snapshot %s, got %v", snapshotID, body["id"])
				}
			}
		})
	}
}
