package cli

import (
	"fmt"
	"strings"

	"github.com/JasVita/wealthpilot-portal/internal/model"
	"github.com/JasVita/wealthpilot-portal/internal/rollup"
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// SummaryMarkdown renders a rollup as markdown tables.
func SummaryMarkdown(clientID int, r model.AssetRollup) string {
	var b strings.Builder

	period := "no data"
	if r.MonthDate != nil {
		period = *r.MonthDate
	}
	fmt.Fprintf(&b, "# Client %d\n\n", clientID)
	fmt.Fprintf(&b, "Period: **%s** (%s)\n\n", period, r.Mode)
	fmt.Fprintf(&b, "Grand total: **%s**\n\n", amount(r.Result.Totals.GrandTotal))

	writeSeries(&b, "By currency", "Currency", r.Result.ByCurrency)
	writeSeries(&b, "By bank", "Bank", r.Result.ByBank)

	if len(r.Result.ByAccount) > 0 {
		b.WriteString("## By account\n\n| Bank | Account | USD |\n|---|---|---:|\n")
		for _, a := range r.Result.ByAccount {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", cell(a.Bank), cell(a.Account), amount(a.Amount))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeSeries(b *strings.Builder, title, label string, s model.LabeledSeries) {
	if len(s.Labels) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n| %s | USD |\n|---|---:|\n", title, label)
	for i, l := range s.Labels {
		fmt.Fprintf(b, "| %s | %s |\n", cell(l), amount(s.Data[i]))
	}
	b.WriteString("\n")
}

// amount renders a USD value with the currency grapheme. Values are rounded
// to cents before conversion so float noise does not truncate a cent away.
func amount(v float64) string {
	cents := decimal.NewFromFloat(v).Shift(2).Round(0).IntPart()
	return money.New(cents, rollup.DefaultCurrency).Display()
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
