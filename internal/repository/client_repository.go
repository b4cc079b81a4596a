package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JasVita/wealthpilot-portal/internal/database"
	"github.com/JasVita/wealthpilot-portal/internal/model"
)

// ClientRepository provides data access methods for the client table.
type ClientRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewClientRepository creates a new ClientRepository with the provided database connection.
func NewClientRepository(db *sql.DB, dialect database.Dialect) *ClientRepository {
	return &ClientRepository{db: db, dialect: dialect}
}

// ListClients returns every client ordered by id.
func (r *ClientRepository) ListClients(ctx context.Context) ([]model.Client, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM client ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query client table: %w", err)
	}
	defer rows.Close()

	clients := []model.Client{}
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan client table results: %w", err)
		}
		clients = append(clients, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client table: %w", err)
	}
	return clients, nil
}

// EnsureClient inserts the client if no row with its id exists yet.
func (r *ClientRepository) EnsureClient(ctx context.Context, c model.Client) error {
	query := `
		INSERT INTO client (id, name)
		VALUES (?, ?)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, r.dialect.Rebind(query), c.ID, c.Name); err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}
