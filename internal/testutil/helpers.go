package testutil

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/JasVita/wealthpilot-portal/internal/database"
	"github.com/JasVita/wealthpilot-portal/internal/repository"
	"github.com/JasVita/wealthpilot-portal/internal/service"
)

// NewTestAssetService wires an AssetService over the test database.
func NewTestAssetService(t *testing.T, db *sql.DB, fallbackMonths int) *service.AssetService {
	t.Helper()

	statementRepo := repository.NewStatementRepository(db, database.DialectSQLite)
	resolver := service.NewPeriodResolver(statementRepo, fallbackMonths)

	return service.NewAssetService(resolver)
}

// NewTestSnapshotService wires a SnapshotService over the test database.
func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	return service.NewSnapshotService(
		repository.NewClientRepository(db, database.DialectSQLite),
		repository.NewSnapshotRepository(db, database.DialectSQLite),
		NewTestAssetService(t, db, service.DefaultFallbackMonths),
		2,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db, database.DialectSQLite)
}

// MakeID generates a new UUID string.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

var clientSeq atomic.Int64

// MakeClientID returns a client ID unique within the test binary.
func MakeClientID() int {
	return int(clientSeq.Add(1)) + 1000
}

// MakeClientName appends a sequence suffix to base.
//
// Example usage:
//
//	name := testutil.MakeClientName("Family Office")
//	// Returns: "Family Office 1001"
func MakeClientName(base string) string {
	return fmt.Sprintf("%s %d", base, clientSeq.Load()+1000)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
