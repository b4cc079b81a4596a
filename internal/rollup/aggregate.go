package rollup

import (
	"math"
	"sort"

	"github.com/JasVita/wealthpilot-portal/internal/model"
)

// orderedSums accumulates amounts per key and remembers first-insertion order.
type orderedSums[K comparable] struct {
	keys []K
	sums map[K]float64
}

func newOrderedSums[K comparable]() *orderedSums[K] {
	return &orderedSums[K]{sums: make(map[K]float64)}
}

func (o *orderedSums[K]) touch(k K) {
	if _, ok := o.sums[k]; !ok {
		o.keys = append(o.keys, k)
		o.sums[k] = 0
	}
}

func (o *orderedSums[K]) add(k K, v float64) {
	o.touch(k)
	o.sums[k] += v
}

type accountKey struct {
	bank    string
	account string
}

// Aggregate rolls the rows of the requested categories up by currency, bank, account,
// bank x currency and account x currency.
//
// Banks and currencies are reported in first-seen order; chart colors are assigned by
// that position. Accounts whose number is missing count towards the bank and currency
// views only. Zero and non-finite row amounts are skipped.
func Aggregate(blocks []model.BankBlock, categories []Category) model.RollupResult {
	bankTotals := newOrderedSums[string]()
	ccyTotals := newOrderedSums[string]()
	matrix := make(map[string]map[string]float64)
	accountTotals := newOrderedSums[accountKey]()
	accountCurrencies := make(map[accountKey]*orderedSums[string])

	for _, block := range blocks {
		if block == nil {
			continue
		}
		bank := block.Bank()
		acct := block.AccountNumber()
		key := accountKey{bank: bank, account: acct}

		bankTotals.touch(bank)

		for _, category := range categories {
			for _, row := range CategoryRows(block, category) {
				usd := USDOf(row)
				if usd == 0 {
					continue
				}
				ccy := CurrencyOf(row)

				bankTotals.add(bank, usd)
				ccyTotals.add(ccy, usd)

				if matrix[bank] == nil {
					matrix[bank] = make(map[string]float64)
				}
				matrix[bank][ccy] += usd

				if acct == model.Placeholder {
					continue
				}
				accountTotals.add(key, usd)
				if accountCurrencies[key] == nil {
					accountCurrencies[key] = newOrderedSums[string]()
				}
				accountCurrencies[key].add(ccy, usd)
			}
		}
	}

	result := model.EmptyRollup()

	grandTotal := 0.0
	for _, ccy := range ccyTotals.keys {
		amount := R2(ccyTotals.sums[ccy])
		result.ByCurrency.Labels = append(result.ByCurrency.Labels, ccy)
		result.ByCurrency.Data = append(result.ByCurrency.Data, amount)
		grandTotal += amount
	}
	result.ByCurrency.Colors = colorsFor(len(ccyTotals.keys))

	for _, bank := range bankTotals.keys {
		result.ByBank.Labels = append(result.ByBank.Labels, bank)
		result.ByBank.Data = append(result.ByBank.Data, R2(bankTotals.sums[bank]))
	}
	result.ByBank.Colors = colorsFor(len(bankTotals.keys))

	result.BankCurrency.Banks = append(result.BankCurrency.Banks, bankTotals.keys...)
	result.BankCurrency.Currencies = append(result.BankCurrency.Currencies, ccyTotals.keys...)
	for _, bank := range bankTotals.keys {
		row := make([]float64, len(ccyTotals.keys))
		for j, ccy := range ccyTotals.keys {
			row[j] = R2(matrix[bank][ccy])
		}
		result.BankCurrency.Matrix = append(result.BankCurrency.Matrix, row)
	}

	for _, key := range accountTotals.keys {
		result.ByAccount = append(result.ByAccount, model.AccountAmount{
			Bank:    key.bank,
			Account: key.account,
			Amount:  R2(accountTotals.sums[key]),
		})
	}
	sort.SliceStable(result.ByAccount, func(i, j int) bool {
		return math.Abs(result.ByAccount[i].Amount) > math.Abs(result.ByAccount[j].Amount)
	})

	for _, key := range accountTotals.keys {
		sums := accountCurrencies[key]
		items := make([]model.CurrencyAmount, 0, len(sums.keys))
		for _, ccy := range sums.keys {
			items = append(items, model.CurrencyAmount{Currency: ccy, Amount: R2(sums.sums[ccy])})
		}
		sort.SliceStable(items, func(i, j int) bool {
			return math.Abs(items[i].Amount) > math.Abs(items[j].Amount)
		})
		result.ByAccountCurrency = append(result.ByAccountCurrency, model.AccountCurrencyBreakdown{
			Bank:    key.bank,
			Account: key.account,
			Items:   items,
		})
	}

	result.Totals.GrandTotal = R2(grandTotal)
	return result
}
