package model

// Scope selects which asset categories a rollup covers.
type Scope string

const (
	ScopeCash Scope = "cash"
	ScopeAll  Scope = "all"
)

// ParseScope maps a request value to a Scope. Only "cash" restricts the categories;
// anything else aggregates the full set.
func ParseScope(s string) Scope {
	if s == string(ScopeCash) {
		return ScopeCash
	}
	return ScopeAll
}

// LabeledSeries is a chart-ready series: parallel labels, values and colors.
type LabeledSeries struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
	Colors []string  `json:"colors"`
}

// BankCurrencyMatrix is a dense banks x currencies matrix. Matrix[i][j] is the amount
// held at Banks[i] in Currencies[j]; absent combinations are zero.
type BankCurrencyMatrix struct {
	Banks      []string    `json:"banks"`
	Currencies []string    `json:"currencies"`
	Matrix     [][]float64 `json:"matrix"`
}

// AccountAmount is the USD-equivalent total held in one account.
type AccountAmount struct {
	Bank    string  `json:"bank"`
	Account string  `json:"account"`
	Amount  float64 `json:"amount"`
}

// CurrencyAmount is one currency line of an account breakdown.
type CurrencyAmount struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// AccountCurrencyBreakdown lists an account's totals per currency.
type AccountCurrencyBreakdown struct {
	Bank    string           `json:"bank"`
	Account string           `json:"account"`
	Items   []CurrencyAmount `json:"items"`
}

// RollupTotals holds the grand total of a rollup.
type RollupTotals struct {
	GrandTotal float64 `json:"grand_total"`
}

// RollupResult is the output of aggregation. All amounts are USD-equivalent and rounded
// to two decimal places.
type RollupResult struct {
	ByCurrency        LabeledSeries              `json:"by_currency"`
	ByBank            LabeledSeries              `json:"by_bank"`
	BankCurrency      BankCurrencyMatrix         `json:"bank_currency"`
	ByAccount         []AccountAmount            `json:"by_account"`
	ByAccountCurrency []AccountCurrencyBreakdown `json:"by_account_currency"`
	Totals            RollupTotals               `json:"totals"`
}

// EmptyRollup returns a result with every collection initialised and empty, so it
// serialises as [] rather than null.
func EmptyRollup() RollupResult {
	return RollupResult{
		ByCurrency:        LabeledSeries{Labels: []string{}, Data: []float64{}, Colors: []string{}},
		ByBank:            LabeledSeries{Labels: []string{}, Data: []float64{}, Colors: []string{}},
		BankCurrency:      BankCurrencyMatrix{Banks: []string{}, Currencies: []string{}, Matrix: [][]float64{}},
		ByAccount:         []AccountAmount{},
		ByAccountCurrency: []AccountCurrencyBreakdown{},
	}
}

// AssetRollup is a resolved and aggregated rollup for one request.
type AssetRollup struct {
	Mode      PeriodMode
	MonthDate *string
	Result    RollupResult
}
