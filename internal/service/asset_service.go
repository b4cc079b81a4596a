package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/JasVita/wealthpilot-portal/internal/model"
	"github.com/JasVita/wealthpilot-portal/internal/rollup"
)

// AssetService resolves a request's period and rolls its blocks up for a scope.
// It keeps no results between requests; identical requests that overlap in time share
// one execution.
type AssetService struct {
	resolver *PeriodResolver
	inflight singleflight.Group
}

// NewAssetService creates a new AssetService.
func NewAssetService(resolver *PeriodResolver) *AssetService {
	return &AssetService{resolver: resolver}
}

// Rollup runs the full pipeline for one request. Store reads stop when ctx is done.
// Callers that join an in-flight execution share the first caller's ctx.
func (s *AssetService) Rollup(ctx context.Context, q model.PeriodQuery, scope model.Scope) (model.AssetRollup, error) {
	v, err, _ := s.inflight.Do(rollupKey(q, scope), func() (any, error) {
		return s.rollup(ctx, q, scope)
	})
	if err != nil {
		return model.AssetRollup{}, err
	}
	return v.(model.AssetRollup), nil
}

// AvailableMonths lists the client's months with data, newest first.
func (s *AssetService) AvailableMonths(ctx context.Context, clientID int) ([]model.YearMonth, error) {
	return s.resolver.RecentMonths(ctx, clientID)
}

func (s *AssetService) rollup(ctx context.Context, q model.PeriodQuery, scope model.Scope) (model.AssetRollup, error) {
	resolution, err := s.resolver.Resolve(ctx, q)
	if err != nil {
		return model.AssetRollup{}, err
	}

	return model.AssetRollup{
		Mode:      resolution.Mode,
		MonthDate: resolution.MonthDate,
		Result:    rollup.Aggregate(resolution.Blocks, rollup.CategoriesFor(scope)),
	}, nil
}

func rollupKey(q model.PeriodQuery, scope model.Scope) string {
	return fmt.Sprintf("%d|%s|%s|%s|%q|%q|%q|%q|%q",
		q.ClientID, scope, intPtr(q.Year), intPtr(q.Month), q.MonthDate, q.From, q.To, q.Custodian, q.Account)
}

func intPtr(p *int) string {
	if p == nil {
		return ""
	}
	return fmt.Sprint(*p)
}
