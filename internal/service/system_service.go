package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JasVita/wealthpilot-portal/internal/database"
	"github.com/JasVita/wealthpilot-portal/internal/model"
	"github.com/JasVita/wealthpilot-portal/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, dialect database.Dialect) *SystemService {
	return &SystemService{
		db:      db,
		dialect: dialect,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the application version and the applied schema version.
func (s *SystemService) CheckVersion(ctx context.Context) (model.VersionInfo, error) {
	dbVersion, err := database.SchemaVersion(ctx, s.db, s.dialect)
	if err != nil {
		return model.VersionInfo{}, err
	}
	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  fmt.Sprint(dbVersion),
		Driver:     string(s.dialect),
	}, nil
}
