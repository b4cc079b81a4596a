package request_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/JasVita/wealthpilot-portal/internal/api/request"
	"github.com/JasVita/wealthpilot-portal/internal/apperrors"
	"github.com/JasVita/wealthpilot-portal/internal/model"
)

func TestParseAssetQuery(t *testing.T) {
	t.Run("requires client_id", func(t *testing.T) {
		_, err := request.ParseAssetQuery(url.Values{"scope": {"cash"}}, model.ScopeCash)
		if !errors.Is(err, apperrors.ErrMissingClientID) {
			t.Errorf("Expected ErrMissingClientID, got %v", err)
		}
	})

	t.Run("defaults scope", func(t *testing.T) {
		q, err := request.ParseAssetQuery(url.Values{"client_id": {"5"}}, model.ScopeAll)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if q.Scope != model.ScopeAll || q.Period.ClientID != 5 {
			t.Errorf("Expected client 5 scope all, got %+v", q)
		}
	})

	t.Run("any scope other than cash means all", func(t *testing.T) {
		q, err := request.ParseAssetQuery(url.Values{"client_id": {"5"}, "scope": {"holdings"}}, model.ScopeCash)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if q.Scope != model.ScopeAll {
			t.Errorf("Expected scope all, got %s", q.Scope)
		}
	})

	t.Run("carries period parameters", func(t *testing.T) {
		values := url.Values{
			"client_id":  {"9"},
			"scope":      {"CASH"},
			"year":       {"2024"},
			"month":      {"11"},
			"month_date": {"2024-11-30"},
			"custodian":  {" UBS "},
			"account":    {"ACC1"},
			"from":       {"2024-01-01"},
			"to":         {"2024-11-30"},
		}
		q, err := request.ParseAssetQuery(values, model.ScopeAll)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		p := q.Period
		if q.Scope != model.ScopeCash || *p.Year != 2024 || *p.Month != 11 || p.MonthDate != "2024-11-30" ||
			p.Custodian != "UBS" || p.Account != "ACC1" || p.From != "2024-01-01" || p.To != "2024-11-30" {
			t.Errorf("Unexpected parse result %+v", q)
		}
	})
}

func TestBodyToValues(t *testing.T) {
	values, err := request.BodyToValues([]byte(`{"client_id": 12, "scope": "cash", "year": 2025, "month": 6, "ok": true, "account": null, "nested": {"a": 1}}`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if values.Get("client_id") != "12" || values.Get("scope") != "cash" || values.Get("year") != "2025" || values.Get("month") != "6" {
		t.Errorf("Unexpected values %v", values)
	}
	if values.Get("ok") != "true" {
		t.Errorf("Expected boolean carried over, got %q", values.Get("ok"))
	}
	if values.Has("account") || values.Has("nested") {
		t.Errorf("Expected null and nested values dropped, got %v", values)
	}

	empty, err := request.BodyToValues(nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("Expected empty values for empty body, got %v %v", empty, err)
	}

	if _, err := request.BodyToValues([]byte(`[1,2]`)); err == nil {
		t.Error("Expected error for non-object body")
	}
}
