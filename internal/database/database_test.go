package database_test

import (
	"context"
	"testing"

	"github.com/JasVita/wealthpilot-portal/internal/database"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    database.Dialect
		wantErr bool
	}{
		{"", database.DialectSQLite, false},
		{"sqlite", database.DialectSQLite, false},
		{"SQLite3", database.DialectSQLite, false},
		{"postgres", database.DialectPostgres, false},
		{" pgx ", database.DialectPostgres, false},
		{"mysql", "", true},
	}

	for _, tt := range tests {
		got, err := database.ParseDialect(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDialect(%q): unexpected error state %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseDialect(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestRebind(t *testing.T) {
	query := "SELECT * FROM t WHERE a = ? AND b = ?"

	if got := database.DialectSQLite.Rebind(query); got != query {
		t.Errorf("Expected SQLite query unchanged, got %q", got)
	}
	want := "SELECT * FROM t WHERE a = $1 AND b = $2"
	if got := database.DialectPostgres.Rebind(query); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestMigrate(t *testing.T) {
	db, err := database.Open(database.DialectSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := database.Migrate(ctx, db, database.DialectSQLite); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	version, err := database.SchemaVersion(ctx, db, database.DialectSQLite)
	if err != nil {
		t.Fatalf("Failed to read version: %v", err)
	}
	if version != 2 {
		t.Errorf("Expected schema version 2, got %d", version)
	}

	for _, table := range []string{"client", "statement_block", "rollup_snapshot"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("Expected table %s to exist: %v", table, err)
		}
	}

	// Applying again is a no-op
	if err := database.Migrate(ctx, db, database.DialectSQLite); err != nil {
		t.Errorf("Expected second migrate to succeed, got %v", err)
	}
}
