// Package cli implements the wealthctl operator commands.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/JasVita/wealthpilot-portal/internal/config"
	"github.com/JasVita/wealthpilot-portal/internal/database"
	"github.com/JasVita/wealthpilot-portal/internal/repository"
	"github.com/JasVita/wealthpilot-portal/internal/service"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&migrateCmd{}, "database")
	c.Register(&importCmd{}, "database")

	c.Register(&monthsCmd{}, "rollup")
	c.Register(&rollupCmd{}, "rollup")
	c.Register(&summaryCmd{}, "rollup")
	c.Register(&snapshotCmd{}, "rollup")
}

// store is an open, migrated database with the services built on it.
type store struct {
	db        *sql.DB
	dialect   database.Dialect
	cfg       *config.Config
	statement *repository.StatementRepository
	clients   *repository.ClientRepository
	assets    *service.AssetService
	snapshots *service.SnapshotService
}

// openStore loads the configuration, opens the configured database and applies pending
// migrations.
func openStore(ctx context.Context) (*store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	dialect, err := database.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}
	db, err := database.Open(dialect, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.Migrate(ctx, db, dialect); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	statementRepo := repository.NewStatementRepository(db, dialect)
	clientRepo := repository.NewClientRepository(db, dialect)
	assets := service.NewAssetService(service.NewPeriodResolver(statementRepo, cfg.Rollup.FallbackMonths))

	return &store{
		db:        db,
		dialect:   dialect,
		cfg:       cfg,
		statement: statementRepo,
		clients:   clientRepo,
		assets:    assets,
		snapshots: service.NewSnapshotService(
			clientRepo,
			repository.NewSnapshotRepository(db, dialect),
			assets,
			cfg.Snapshot.Concurrency,
		),
	}, nil
}

func (s *store) Close() error {
	return s.db.Close()
}

// printMarkdown renders md for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}

func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
