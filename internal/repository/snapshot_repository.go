package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/JasVita/wealthpilot-portal/internal/apperrors"
	"github.com/JasVita/wealthpilot-portal/internal/database"
	"github.com/JasVita/wealthpilot-portal/internal/model"
)

// SnapshotRepository provides data access methods for the rollup_snapshot table.
// Snapshots are written by the scheduled snapshot job and never updated.
type SnapshotRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB, dialect database.Dialect) *SnapshotRepository {
	return &SnapshotRepository{db: db, dialect: dialect}
}

// Insert stores a snapshot.
func (r *SnapshotRepository) Insert(ctx context.Context, s model.RollupSnapshot) error {
	query := `
		INSERT INTO rollup_snapshot (id, client_id, scope, month_date, grand_total, payload, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var monthDate sql.NullString
	if s.MonthDate != nil {
		monthDate = sql.NullString{String: *s.MonthDate, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(query),
		s.ID,
		s.ClientID,
		string(s.Scope),
		monthDate,
		s.GrandTotal,
		s.Payload,
		s.CalculatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert rollup_snapshot: %w", err)
	}
	return nil
}

// ListByClient returns the client's snapshots, newest first.
func (r *SnapshotRepository) ListByClient(ctx context.Context, clientID int) ([]model.RollupSnapshot, error) {
	query := `
		SELECT id, client_id, scope, month_date, grand_total, payload, calculated_at
		FROM rollup_snapshot
		WHERE client_id = ?
		ORDER BY calculated_at DESC, scope ASC
	`

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rollup_snapshot: %w", err)
	}
	defer rows.Close()

	snapshots := []model.RollupSnapshot{}
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rollup_snapshot: %w", err)
	}
	return snapshots, nil
}

// GetByID returns one snapshot, or apperrors.ErrSnapshotNotFound.
func (r *SnapshotRepository) GetByID(ctx context.Context, id string) (model.RollupSnapshot, error) {
	query := `
		SELECT id, client_id, scope, month_date, grand_total, payload, calculated_at
		FROM rollup_snapshot
		WHERE id = ?
	`

	s, err := scanSnapshot(r.db.QueryRowContext(ctx, r.dialect.Rebind(query), id))
	if err == sql.ErrNoRows {
		return model.RollupSnapshot{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return model.RollupSnapshot{}, err
	}
	return s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (model.RollupSnapshot, error) {
	var s model.RollupSnapshot
	var scope, calculatedAt string
	var monthDate sql.NullString

	err := row.Scan(&s.ID, &s.ClientID, &scope, &monthDate, &s.GrandTotal, &s.Payload, &calculatedAt)
	if err == sql.ErrNoRows {
		return s, err
	}
	if err != nil {
		return s, fmt.Errorf("failed to scan rollup_snapshot: %w", err)
	}

	s.Scope = model.Scope(scope)
	if monthDate.Valid {
		md := monthDate.String
		s.MonthDate = &md
	}
	s.CalculatedAt, err = ParseTime(calculatedAt)
	if err != nil {
		return s, fmt.Errorf("failed to parse calculated_at: %w", err)
	}
	return s, nil
}
