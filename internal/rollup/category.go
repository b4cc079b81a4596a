package rollup

import (
	"strings"

	"github.com/Rhymond/go-money"

	"github.com/JasVita/wealthpilot-portal/internal/model"
)

// Category is a canonical asset category key.
type Category string

const (
	CashEquivalents   Category = "cash_equivalents"
	DirectFixedIncome Category = "direct_fixed_income"
	FixedIncomeFunds  Category = "fixed_income_funds"
	DirectEquities    Category = "direct_equities"
	EquitiesFund      Category = "equities_fund"
	AlternativeFund   Category = "alternative_fund"
	StructuredProduct Category = "structured_product"
	Loans             Category = "loans"
)

// AllCategories is the full category set in display order.
var AllCategories = []Category{
	CashEquivalents,
	DirectFixedIncome,
	FixedIncomeFunds,
	DirectEquities,
	EquitiesFund,
	AlternativeFund,
	StructuredProduct,
	Loans,
}

// categoryAliases lists, per canonical category, every key the category has been stored
// under. A block is expected to carry at most one of them; if several are present the
// first in this order wins.
var categoryAliases = map[Category][]string{
	CashEquivalents:   {"cash_equivalents", "cash_and_equivalents", "cashAndEquivalents", "cash"},
	DirectFixedIncome: {"direct_fixed_income", "directFixedIncome", "fixed_income"},
	FixedIncomeFunds:  {"fixed_income_funds", "fixedIncomeFunds", "fixed_income_fund"},
	DirectEquities:    {"direct_equities", "directEquities", "equities"},
	EquitiesFund:      {"equities_fund", "equity_funds", "equitiesFund", "equities_funds"},
	AlternativeFund:   {"alternative_fund", "alternative_funds", "alternativeFunds"},
	StructuredProduct: {"structured_product", "structured_products", "structuredProducts"},
	Loans:             {"loans", "loan", "liabilities"},
}

// Aliases returns the ordered alias keys of a category.
func Aliases(c Category) []string {
	return categoryAliases[c]
}

// CategoriesFor returns the categories a scope aggregates.
func CategoriesFor(scope model.Scope) []Category {
	if scope == model.ScopeCash {
		return []Category{CashEquivalents}
	}
	return AllCategories
}

// CategoryBucket returns the raw bucket stored under the first alias of c present on
// the block, or nil.
func CategoryBucket(block model.BankBlock, c Category) any {
	for _, alias := range categoryAliases[c] {
		if v, ok := block[alias]; ok && v != nil {
			return v
		}
	}
	return nil
}

// CategoryRows returns the rows of category c on a block.
func CategoryRows(block model.BankBlock, c Category) []model.PositionRow {
	return RowsOf(CategoryBucket(block, c))
}

// DefaultCurrency applies to rows without a currency.
const DefaultCurrency = "USD"

// CurrencyOf returns the row's currency code, upper-cased and canonicalised against
// ISO 4217 when known. Rows without a currency are USD.
func CurrencyOf(row model.PositionRow) string {
	raw, ok := row["currency"].(string)
	if !ok {
		return DefaultCurrency
	}
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return DefaultCurrency
	}
	if c := money.GetCurrency(code); c != nil {
		return c.Code
	}
	return code
}
