package model

// PeriodMode names how a request's reporting period was resolved.
type PeriodMode string

const (
	PeriodModeRange    PeriodMode = "range"
	PeriodModeMonth    PeriodMode = "month"
	PeriodModeFallback PeriodMode = "fallback"
)

// PeriodQuery carries the period-selection parameters of a rollup request.
// Empty strings and nil pointers mean "not given".
type PeriodQuery struct {
	ClientID  int
	Year      *int
	Month     *int
	MonthDate string
	From      string // YYYY-MM-DD
	To        string // YYYY-MM-DD
	Custodian string
	Account   string
}

// HasRangeFilter reports whether any of from, to, custodian or account is set.
func (q PeriodQuery) HasRangeFilter() bool {
	return q.From != "" || q.To != "" || q.Custodian != "" || q.Account != ""
}

// PeriodResolution is the outcome of period resolution: the blocks to aggregate and the
// label of the period they belong to. MonthDate is nil when no data was found.
type PeriodResolution struct {
	Mode      PeriodMode
	MonthDate *string
	Blocks    []BankBlock
}
