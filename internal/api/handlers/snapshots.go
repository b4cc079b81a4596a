package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JasVita/wealthpilot-portal/internal/api/response"
	"github.com/JasVita/wealthpilot-portal/internal/model"
	"github.com/JasVita/wealthpilot-portal/internal/service"
	"github.com/JasVita/wealthpilot-portal/internal/validation"
)

// SnapshotHandler serves stored rollup snapshots.
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler
func NewSnapshotHandler(snapshotService *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
	}
}

// SnapshotSummary is one entry of the snapshot listing.
type SnapshotSummary struct {
	ID           string      `json:"id"`
	Scope        model.Scope `json:"scope"`
	MonthDate    *string     `json:"month_date"`
	GrandTotal   float64     `json:"grand_total"`
	CalculatedAt string      `json:"calculated_at"`
}

// SnapshotListResponse lists a client's snapshots.
type SnapshotListResponse struct {
	Status    string            `json:"status"`
	ClientID  int               `json:"client_id"`
	Snapshots []SnapshotSummary `json:"snapshots"`
}

// SnapshotResponse is a stored rollup in the live envelope plus its metadata.
type SnapshotResponse struct {
	RollupResponse
	ID           string      `json:"id"`
	ClientID     int         `json:"client_id"`
	Scope        model.Scope `json:"scope"`
	CalculatedAt string      `json:"calculated_at"`
}

// List handles GET requests for a client's snapshots, newest first.
//
// Endpoint: GET /api/assets/snapshots?client_id=
// Response: 200 OK with SnapshotListResponse
// Error: 400 for a missing client_id, 500 if the store fails
func (h *SnapshotHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID, err := validation.ValidateClientID(r.URL.Query().Get("client_id"))
	if err != nil {
		respondFailure(w, "list snapshots", err)
		return
	}

	snaps, err := h.snapshotService.ListSnapshots(r.Context(), clientID)
	if err != nil {
		respondFailure(w, "list snapshots", err)
		return
	}

	resp := SnapshotListResponse{
		Status:    response.StatusOK,
		ClientID:  clientID,
		Snapshots: make([]SnapshotSummary, len(snaps)),
	}
	for i, s := range snaps {
		resp.Snapshots[i] = SnapshotSummary{
			ID:           s.ID,
			Scope:        s.Scope,
			MonthDate:    s.MonthDate,
			GrandTotal:   s.GrandTotal,
			CalculatedAt: s.CalculatedAt.UTC().Format(time.RFC3339),
		}
	}
	response.RespondJSON(w, http.StatusOK, resp)
}

// Get handles GET requests for one snapshot. The uuid path parameter is checked by
// ValidateUUIDMiddleware.
//
// Endpoint: GET /api/assets/snapshots/{uuid}
// Response: 200 OK with SnapshotResponse
// Error: 404 if the snapshot does not exist
func (h *SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	snap, result, err := h.snapshotService.GetSnapshot(r.Context(), id)
	if err != nil {
		respondFailure(w, "get snapshot "+id, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, SnapshotResponse{
		RollupResponse: NewRollupResponse(model.AssetRollup{
			MonthDate: snap.MonthDate,
			Result:    result,
		}),
		ID:           snap.ID,
		ClientID:     snap.ClientID,
		Scope:        snap.Scope,
		CalculatedAt: snap.CalculatedAt.UTC().Format(time.RFC3339),
	})
}
