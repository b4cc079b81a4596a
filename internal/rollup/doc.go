// Package rollup flattens loosely-typed statement blocks into position rows and
// re-aggregates them into the currency, bank, account and bank x currency views
// served by the asset endpoints.
//
// Everything in this package is a pure function of its inputs. Malformed or missing
// input degrades to empty or zero values; nothing here returns an error.
package rollup
