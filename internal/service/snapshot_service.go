package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JasVita/wealthpilot-portal/internal/model"
	"github.com/JasVita/wealthpilot-portal/internal/repository"
)

// SnapshotService stores default-mode rollups for every client so totals can be
// compared over time without recomputing old periods.
type SnapshotService struct {
	clientRepo   *repository.ClientRepository
	snapshotRepo *repository.SnapshotRepository
	assetService *AssetService
	concurrency  int
	now          func() time.Time
}

// NewSnapshotService creates a new SnapshotService. concurrency bounds how many clients
// are processed at once.
func NewSnapshotService(
	clientRepo *repository.ClientRepository,
	snapshotRepo *repository.SnapshotRepository,
	assetService *AssetService,
	concurrency int,
) *SnapshotService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &SnapshotService{
		clientRepo:   clientRepo,
		snapshotRepo: snapshotRepo,
		assetService: assetService,
		concurrency:  concurrency,
		now:          time.Now,
	}
}

// snapshotScopes are the scopes captured per client on every run.
var snapshotScopes = []model.Scope{model.ScopeCash, model.ScopeAll}

// Run snapshots every client in every scope. A failing client does not stop the others;
// their errors are joined into the returned error. Returns the number of snapshots written.
func (s *SnapshotService) Run(ctx context.Context) (int, error) {
	clients, err := s.clientRepo.ListClients(ctx)
	if err != nil {
		return 0, err
	}

	var (
		mu      sync.Mutex
		written int
		errs    []error
	)

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for _, c := range clients {
		c := c
		g.Go(func() error {
			n, err := s.snapshotClient(ctx, c.ID)

			mu.Lock()
			defer mu.Unlock()
			written += n
			if err != nil {
				log.Printf("snapshot for client %d failed: %v", c.ID, err)
				errs = append(errs, fmt.Errorf("client %d: %w", c.ID, err))
			}
			return nil
		})
	}
	_ = g.Wait()

	log.Printf("snapshot run complete: %d clients, %d snapshots, %d failures", len(clients), written, len(errs))
	return written, errors.Join(errs...)
}

func (s *SnapshotService) snapshotClient(ctx context.Context, clientID int) (int, error) {
	calculatedAt := s.now().UTC().Truncate(time.Second)
	written := 0

	for _, scope := range snapshotScopes {
		result, err := s.assetService.Rollup(ctx, model.PeriodQuery{ClientID: clientID}, scope)
		if err != nil {
			return written, err
		}

		payload, err := json.Marshal(result.Result)
		if err != nil {
			return written, fmt.Errorf("failed to encode snapshot payload: %w", err)
		}

		err = s.snapshotRepo.Insert(ctx, model.RollupSnapshot{
			ID:           uuid.New().String(),
			ClientID:     clientID,
			Scope:        scope,
			MonthDate:    result.MonthDate,
			GrandTotal:   result.Result.Totals.GrandTotal,
			Payload:      string(payload),
			CalculatedAt: calculatedAt,
		})
		if err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// ListSnapshots returns a client's snapshots, newest first.
func (s *SnapshotService) ListSnapshots(ctx context.Context, clientID int) ([]model.RollupSnapshot, error) {
	return s.snapshotRepo.ListByClient(ctx, clientID)
}

// GetSnapshot returns one snapshot with its decoded rollup.
func (s *SnapshotService) GetSnapshot(ctx context.Context, id string) (model.RollupSnapshot, model.RollupResult, error) {
	snap, err := s.snapshotRepo.GetByID(ctx, id)
	if err != nil {
		return model.RollupSnapshot{}, model.RollupResult{}, err
	}

	result := model.EmptyRollup()
	if err := json.Unmarshal([]byte(snap.Payload), &result); err != nil {
		return model.RollupSnapshot{}, model.RollupResult{}, fmt.Errorf("failed to decode snapshot payload: %w", err)
	}
	return snap, result, nil
}
