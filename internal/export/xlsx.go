// Package export renders rollups into downloadable workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/JasVita/wealthpilot-portal/internal/model"
)

const (
	SheetByCurrency   = "By Currency"
	SheetByBank       = "By Bank"
	SheetBankCurrency = "Bank x Currency"
	SheetByAccount    = "By Account"
)

// WriteRollupXLSX writes one sheet per rollup view. monthDate, when set, is noted in the
// first row of every sheet.
func WriteRollupXLSX(w io.Writer, monthDate *string, result model.RollupResult) error {
	f := excelize.NewFile()
	defer f.Close()

	period := "no data"
	if monthDate != nil {
		period = *monthDate
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetByCurrency, seriesRows("Currency", result.ByCurrency, result.Totals.GrandTotal)},
		{SheetByBank, seriesRows("Bank", result.ByBank, result.Totals.GrandTotal)},
		{SheetBankCurrency, matrixRows(result.BankCurrency)},
		{SheetByAccount, accountRows(result.ByAccount)},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return fmt.Errorf("failed to name sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
		}

		rows := append([][]any{{"Period", period}, {}}, sheet.rows...)
		for r, values := range rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.name, cell, &values); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", sheet.name, r+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func seriesRows(label string, s model.LabeledSeries, grandTotal float64) [][]any {
	rows := [][]any{{label, "Amount (USD)"}}
	for i, l := range s.Labels {
		rows = append(rows, []any{l, s.Data[i]})
	}
	return append(rows, []any{"Total", grandTotal})
}

func matrixRows(m model.BankCurrencyMatrix) [][]any {
	header := []any{"Bank"}
	for _, c := range m.Currencies {
		header = append(header, c)
	}
	rows := [][]any{header}
	for i, bank := range m.Banks {
		row := []any{bank}
		for _, v := range m.Matrix[i] {
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return rows
}

func accountRows(accounts []model.AccountAmount) [][]any {
	rows := [][]any{{"Bank", "Account", "Amount (USD)"}}
	for _, a := range accounts {
		rows = append(rows, []any{a.Bank, a.Account, a.Amount})
	}
	return rows
}
