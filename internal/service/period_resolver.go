package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JasVita/wealthpilot-portal/internal/apperrors"
	"github.com/JasVita/wealthpilot-portal/internal/model"
)

// StatementSource is the external statement store the resolver reads from.
// Implementations return nested bank blocks; they are expected to be reliable-or-failing,
// so the resolver does not retry.
type StatementSource interface {
	// MonthTableData returns the blocks for one calendar month.
	MonthTableData(ctx context.Context, clientID, year, month int) (model.TableData, error)
	// RangeTableData returns the blocks for a date window and optional custodian/account.
	RangeTableData(ctx context.Context, clientID int, from, to, custodian, account *string) (model.TableData, error)
	// RecentMonths lists months with data, newest first.
	RecentMonths(ctx context.Context, clientID, limit int) ([]model.YearMonth, error)
}

const (
	MinFallbackMonths     = 12
	MaxFallbackMonths     = 24
	DefaultFallbackMonths = MaxFallbackMonths
)

// PeriodResolver decides which month or window of statement data a request aggregates
// and fetches its blocks.
type PeriodResolver struct {
	source         StatementSource
	fallbackMonths int
}

// NewPeriodResolver creates a resolver. fallbackMonths bounds the default-mode search
// and is clamped to 12..24.
func NewPeriodResolver(source StatementSource, fallbackMonths int) *PeriodResolver {
	return &PeriodResolver{
		source:         source,
		fallbackMonths: ClampFallbackMonths(fallbackMonths),
	}
}

// ClampFallbackMonths keeps a configured candidate count inside 12..24.
func ClampFallbackMonths(n int) int {
	switch {
	case n <= 0:
		return DefaultFallbackMonths
	case n < MinFallbackMonths:
		return MinFallbackMonths
	case n > MaxFallbackMonths:
		return MaxFallbackMonths
	}
	return n
}

// Resolve picks exactly one mode for the query:
//
//   - range: any of from, to, custodian or account is set. The window is fetched as is
//     and labelled with to, else from.
//   - month: year and month are both set, or month_date parses. That month is fetched.
//   - fallback: otherwise. Recent months are tried newest first, one at a time, until
//     one has blocks.
//
// A period without data is not an error: the resolution has no blocks and a nil
// MonthDate. Store failures are returned wrapped in apperrors.ErrFailedToLoad.
func (p *PeriodResolver) Resolve(ctx context.Context, q model.PeriodQuery) (model.PeriodResolution, error) {
	if q.HasRangeFilter() {
		return p.resolveRange(ctx, q)
	}
	if ym, ok := ExplicitMonth(q); ok {
		return p.resolveMonth(ctx, q.ClientID, ym)
	}
	return p.resolveFallback(ctx, q.ClientID)
}

// RecentMonths lists the months the fallback search would consider.
func (p *PeriodResolver) RecentMonths(ctx context.Context, clientID int) ([]model.YearMonth, error) {
	months, err := p.source.RecentMonths(ctx, clientID, p.fallbackMonths)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToLoad, err)
	}
	return months, nil
}

func (p *PeriodResolver) resolveRange(ctx context.Context, q model.PeriodQuery) (model.PeriodResolution, error) {
	td, err := p.source.RangeTableData(ctx, q.ClientID,
		optional(q.From), optional(q.To), optional(q.Custodian), optional(q.Account))
	if err != nil {
		return model.PeriodResolution{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToLoad, err)
	}

	var label *string
	switch {
	case q.To != "":
		label = optional(q.To)
	case q.From != "":
		label = optional(q.From)
	}

	return model.PeriodResolution{
		Mode:      model.PeriodModeRange,
		MonthDate: label,
		Blocks:    td.TableData,
	}, nil
}

func (p *PeriodResolver) resolveMonth(ctx context.Context, clientID int, ym model.YearMonth) (model.PeriodResolution, error) {
	td, err := p.source.MonthTableData(ctx, clientID, ym.Year, ym.Month)
	if err != nil {
		return model.PeriodResolution{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToLoad, err)
	}

	resolution := model.PeriodResolution{Mode: model.PeriodModeMonth}
	if !td.Empty() {
		resolution.MonthDate = optional(ym.MonthDate())
		resolution.Blocks = td.TableData
	}
	return resolution, nil
}

// resolveFallback fetches candidates sequentially and stops at the first non-empty month,
// keeping the number of store queries minimal.
func (p *PeriodResolver) resolveFallback(ctx context.Context, clientID int) (model.PeriodResolution, error) {
	months, err := p.RecentMonths(ctx, clientID)
	if err != nil {
		return model.PeriodResolution{}, err
	}

	for _, ym := range months {
		td, err := p.source.MonthTableData(ctx, clientID, ym.Year, ym.Month)
		if err != nil {
			return model.PeriodResolution{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToLoad, err)
		}
		if td.Empty() {
			continue
		}
		return model.PeriodResolution{
			Mode:      model.PeriodModeFallback,
			MonthDate: optional(ym.MonthDate()),
			Blocks:    td.TableData,
		}, nil
	}

	return model.PeriodResolution{Mode: model.PeriodModeFallback}, nil
}

// ExplicitMonth returns the month a query names explicitly: year and month together, or a
// parseable month_date. An unparseable month_date counts as not given.
func ExplicitMonth(q model.PeriodQuery) (model.YearMonth, bool) {
	if q.Year != nil && q.Month != nil {
		return model.YearMonth{Year: *q.Year, Month: *q.Month}, true
	}

	md := strings.TrimSpace(q.MonthDate)
	if md == "" {
		return model.YearMonth{}, false
	}
	for _, layout := range []string{"2006-01-02", "2006-01", time.RFC3339} {
		if t, err := time.Parse(layout, md); err == nil {
			return model.YearMonth{Year: t.Year(), Month: int(t.Month())}, true
		}
	}
	return model.YearMonth{}, false
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
