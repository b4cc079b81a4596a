package rollup

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/JasVita/wealthpilot-portal/internal/model"
)

// BucketKind tags the shape a category bucket was found in.
type BucketKind int

const (
	// BucketUnknown is anything that is neither a row array nor a {rows: [...]} wrapper.
	BucketUnknown BucketKind = iota
	// BucketRowArray is a bare array of rows.
	BucketRowArray
	// BucketRowWrapper is an object whose "rows" field is an array of rows.
	BucketRowWrapper
)

// Bucket is a parsed category bucket.
type Bucket struct {
	Kind BucketKind
	Rows []model.PositionRow
}

// ParseBucket resolves the shape of a raw bucket value once, so callers never probe
// properties themselves.
func ParseBucket(v any) Bucket {
	if rows, ok := rowArray(v); ok {
		return Bucket{Kind: BucketRowArray, Rows: rows}
	}

	var fields map[string]any
	switch t := v.(type) {
	case map[string]any:
		fields = t
	case model.BankBlock:
		fields = t
	case model.PositionRow:
		fields = t
	default:
		return Bucket{Kind: BucketUnknown, Rows: []model.PositionRow{}}
	}

	if rows, ok := rowArray(fields["rows"]); ok {
		return Bucket{Kind: BucketRowWrapper, Rows: rows}
	}
	return Bucket{Kind: BucketUnknown, Rows: []model.PositionRow{}}
}

// RowsOf returns the rows held by a bucket. It accepts nil, a row array, or an object
// with a rows array, and returns an empty slice for anything else.
func RowsOf(v any) []model.PositionRow {
	return ParseBucket(v).Rows
}

// rowArray converts the array shapes a bucket can arrive in. Entries that are not
// objects are dropped.
func rowArray(v any) ([]model.PositionRow, bool) {
	switch t := v.(type) {
	case []any:
		rows := make([]model.PositionRow, 0, len(t))
		for _, item := range t {
			if row, ok := asRow(item); ok {
				rows = append(rows, row)
			}
		}
		return rows, true
	case []map[string]any:
		rows := make([]model.PositionRow, 0, len(t))
		for _, item := range t {
			if item != nil {
				rows = append(rows, model.PositionRow(item))
			}
		}
		return rows, true
	case []model.PositionRow:
		rows := make([]model.PositionRow, 0, len(t))
		for _, item := range t {
			if item != nil {
				rows = append(rows, item)
			}
		}
		return rows, true
	}
	return nil, false
}

func asRow(v any) (model.PositionRow, bool) {
	switch t := v.(type) {
	case map[string]any:
		return model.PositionRow(t), t != nil
	case model.PositionRow:
		return t, t != nil
	}
	return nil, false
}

// usdKeys are checked in order; the first finite value wins.
var usdKeys = []string{"balance_usd", "balanceUsd", "balance"}

// USDOf returns the signed USD-equivalent amount of a row, or 0 when none of the
// known amount fields holds a finite number.
func USDOf(row model.PositionRow) float64 {
	for _, key := range usdKeys {
		if f, ok := finite(row[key]); ok {
			return f
		}
	}
	return 0
}

func finite(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
