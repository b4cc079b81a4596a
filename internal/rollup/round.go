package rollup

import "github.com/shopspring/decimal"

// R2 rounds an amount to two decimal places, half away from zero. Only emitted values
// are rounded; accumulation keeps full precision.
func R2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
