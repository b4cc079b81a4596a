package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/JasVita/wealthpilot-portal/internal/api/request"
	"github.com/JasVita/wealthpilot-portal/internal/api/response"
	"github.com/JasVita/wealthpilot-portal/internal/export"
	"github.com/JasVita/wealthpilot-portal/internal/model"
	"github.com/JasVita/wealthpilot-portal/internal/service"
	"github.com/JasVita/wealthpilot-portal/internal/validation"
)

// maxBodyBytes bounds POST bodies; they only carry a handful of parameters.
const maxBodyBytes = 64 << 10

// AssetHandler handles the asset rollup endpoints.
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// RollupBody groups the rollup views of an envelope.
type RollupBody struct {
	ByCurrency        model.LabeledSeries              `json:"by_currency"`
	ByBank            model.LabeledSeries              `json:"by_bank"`
	ByAccount         []model.AccountAmount            `json:"by_account"`
	ByAccountCurrency []model.AccountCurrencyBreakdown `json:"by_account_currency"`
	BankCurrency      model.BankCurrencyMatrix         `json:"bank_currency"`
}

// RollupResponse is the envelope returned by the rollup endpoints in every period mode.
type RollupResponse struct {
	Status    string             `json:"status"`
	MonthDate *string            `json:"month_date"`
	Totals    model.RollupTotals `json:"totals"`
	Cash      RollupBody         `json:"cash"`
}

// NewRollupResponse wraps a rollup in the response envelope.
func NewRollupResponse(r model.AssetRollup) RollupResponse {
	return RollupResponse{
		Status:    response.StatusOK,
		MonthDate: r.MonthDate,
		Totals:    r.Result.Totals,
		Cash: RollupBody{
			ByCurrency:        r.Result.ByCurrency,
			ByBank:            r.Result.ByBank,
			ByAccount:         r.Result.ByAccount,
			ByAccountCurrency: r.Result.ByAccountCurrency,
			BankCurrency:      r.Result.BankCurrency,
		},
	}
}

// Cash handles GET requests for the cash rollup. scope defaults to "cash"; any other
// value aggregates every category.
//
// Endpoint: GET /api/assets/cash?client_id=&scope=&year=&month=&month_date=&custodian=&account=&from=&to=
// Response: 200 OK with RollupResponse
// Error: 400 for a missing or invalid parameter, 500 "failed to load" if the store fails
func (h *AssetHandler) Cash(w http.ResponseWriter, r *http.Request) {
	h.serveRollup(w, r, model.ScopeCash)
}

// Holdings is Cash with the scope defaulting to every category.
//
// Endpoint: GET /api/assets/holdings
func (h *AssetHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	h.serveRollup(w, r, model.ScopeAll)
}

// CashPost accepts the same parameters as a JSON body, re-encodes them as the query
// string and delegates to Cash.
//
// Endpoint: POST /api/assets/cash
func (h *AssetHandler) CashPost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	values, err := request.BodyToValues(body)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	merged := r.URL.Query()
	for key, v := range values {
		merged[key] = v
	}

	get := r.Clone(r.Context())
	get.Method = http.MethodGet
	get.URL.RawQuery = merged.Encode()
	h.Cash(w, get)
}

// Export renders the rollup as an XLSX workbook.
//
// Endpoint: GET /api/assets/cash/export
// Response: 200 OK with an application/vnd.openxmlformats-officedocument.spreadsheetml.sheet body
func (h *AssetHandler) Export(w http.ResponseWriter, r *http.Request) {
	rollup, ok := h.rollup(w, r, model.ScopeCash)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteRollupXLSX(&buf, rollup.MonthDate, rollup.Result); err != nil {
		respondFailure(w, "export", err)
		return
	}

	filename := "rollup.xlsx"
	if rollup.MonthDate != nil {
		filename = fmt.Sprintf("rollup-%s.xlsx", *rollup.MonthDate)
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("export write failed: %v", err)
	}
}

// MonthResponse is one month with statement data.
type MonthResponse struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthDate string `json:"month_date"`
}

// MonthsResponse lists the months a client has data for.
type MonthsResponse struct {
	Status string          `json:"status"`
	Months []MonthResponse `json:"months"`
}

// Months lists the months with statement data that the default period search considers,
// newest first.
//
// Endpoint: GET /api/assets/months?client_id=
func (h *AssetHandler) Months(w http.ResponseWriter, r *http.Request) {
	clientID, err := validation.ValidateClientID(r.URL.Query().Get("client_id"))
	if err != nil {
		respondFailure(w, "months", err)
		return
	}

	months, err := h.assetService.AvailableMonths(r.Context(), clientID)
	if err != nil {
		respondFailure(w, "months", err)
		return
	}

	resp := MonthsResponse{Status: response.StatusOK, Months: make([]MonthResponse, len(months))}
	for i, m := range months {
		resp.Months[i] = MonthResponse{Year: m.Year, Month: m.Month, MonthDate: m.MonthDate()}
	}
	response.RespondJSON(w, http.StatusOK, resp)
}

func (h *AssetHandler) serveRollup(w http.ResponseWriter, r *http.Request, defaultScope model.Scope) {
	rollup, ok := h.rollup(w, r, defaultScope)
	if !ok {
		return
	}
	response.RespondJSON(w, http.StatusOK, NewRollupResponse(rollup))
}

// rollup parses the request and runs the pipeline. On failure it writes the error
// envelope and returns false.
func (h *AssetHandler) rollup(w http.ResponseWriter, r *http.Request, defaultScope model.Scope) (model.AssetRollup, bool) {
	q, err := request.ParseAssetQuery(r.URL.Query(), defaultScope)
	if err != nil {
		respondFailure(w, "rollup", err)
		return model.AssetRollup{}, false
	}

	// Identical requests share one rollup; it outlives any single client's disconnect.
	rollup, err := h.assetService.Rollup(context.WithoutCancel(r.Context()), q.Period, q.Scope)
	if err != nil {
		respondFailure(w, fmt.Sprintf("rollup for client %d (%s)", q.Period.ClientID, q.Scope), err)
		return model.AssetRollup{}, false
	}
	return rollup, true
}
