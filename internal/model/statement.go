package model

import "fmt"

// Placeholder is substituted for a missing bank name or account number.
const Placeholder = "—"

// BankBlock is one custodian/account position snapshot for a period, as returned by the
// statement store. Besides bank, account_number and as_of_date it carries zero or more
// category buckets keyed by canonical or historical alias names. The shape of a bucket is
// not known up front, so blocks stay loosely typed until the normalizer reads them.
type BankBlock map[string]any

// Bank returns the custodian name, or Placeholder when it is absent or blank.
func (b BankBlock) Bank() string {
	return stringOr(b["bank"], Placeholder)
}

// AccountNumber returns the account number, or Placeholder when it is absent or blank.
func (b BankBlock) AccountNumber() string {
	return stringOr(b["account_number"], Placeholder)
}

// AsOfDate returns the statement date, or an empty string.
func (b BankBlock) AsOfDate() string {
	return stringOr(b["as_of_date"], "")
}

// PositionRow is one holding/position line inside a category bucket.
// Historical spellings coexist (balance_usd, balanceUsd, balance), so rows are kept as maps.
type PositionRow map[string]any

// TableData is the nested shape returned by the month and range collaborators.
type TableData struct {
	TableData  []BankBlock `json:"tableData"`
	Periods    []string    `json:"periods,omitempty"`
	Custodians []string    `json:"custodians,omitempty"`
}

// Empty reports whether no blocks were returned.
func (t TableData) Empty() bool {
	return len(t.TableData) == 0
}

// YearMonth identifies one calendar month of statement data.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthDate formats the month as the ISO date of its first day.
func (ym YearMonth) MonthDate() string {
	return fmt.Sprintf("%04d-%02d-01", ym.Year, ym.Month)
}

func stringOr(v any, fallback string) string {
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	for _, r := range s {
		if r != ' ' && r != '\t' {
			return s
		}
	}
	return fallback
}
