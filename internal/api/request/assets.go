// Package request parses and converts incoming API request parameters.
package request

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/JasVita/wealthpilot-portal/internal/model"
	"github.com/JasVita/wealthpilot-portal/internal/validation"
)

// AssetQuery is a parsed rollup request.
type AssetQuery struct {
	Period model.PeriodQuery
	Scope  model.Scope
}

// ParseAssetQuery extracts client_id, scope and the period-selection parameters from a
// query string. client_id is required; scope falls back to defaultScope when absent.
//
// Returns an error wrapping apperrors' validation sentinels if any parameter is invalid.
func ParseAssetQuery(q url.Values, defaultScope model.Scope) (AssetQuery, error) {
	clientID, err := validation.ValidateClientID(q.Get("client_id"))
	if err != nil {
		return AssetQuery{}, err
	}

	year, month, from, to, err := validation.ValidatePeriod(q.Get("year"), q.Get("month"), q.Get("from"), q.Get("to"))
	if err != nil {
		return AssetQuery{}, err
	}

	scope := defaultScope
	if raw := strings.TrimSpace(q.Get("scope")); raw != "" {
		scope = model.ParseScope(strings.ToLower(raw))
	}

	return AssetQuery{
		Period: model.PeriodQuery{
			ClientID:  clientID,
			Year:      year,
			Month:     month,
			MonthDate: strings.TrimSpace(q.Get("month_date")),
			From:      from,
			To:        to,
			Custodian: strings.TrimSpace(q.Get("custodian")),
			Account:   strings.TrimSpace(q.Get("account")),
		},
		Scope: scope,
	}, nil
}

// BodyToValues converts a JSON request body into the equivalent query string values.
// Strings, numbers and booleans are carried over; null and nested values are dropped.
// An empty body yields empty values.
func BodyToValues(body []byte) (url.Values, error) {
	values := url.Values{}
	if strings.TrimSpace(string(body)) == "" {
		return values, nil
	}

	var fields map[string]any
	decoder := json.NewDecoder(strings.NewReader(string(body)))
	decoder.UseNumber()
	if err := decoder.Decode(&fields); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	for key, v := range fields {
		switch t := v.(type) {
		case string:
			values.Set(key, t)
		case json.Number:
			values.Set(key, t.String())
		case bool:
			values.Set(key, strconv.FormatBool(t))
		}
	}
	return values, nil
}
