package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/JasVita/wealthpilot-portal/internal/database"
	"github.com/JasVita/wealthpilot-portal/internal/model"
	"github.com/JasVita/wealthpilot-portal/internal/repository"
)

// ClientBuilder provides a fluent interface for creating test clients.
//
// Example usage:
//
//	client := testutil.NewClient().WithName("Acme Family Office").Build(t, db)
type ClientBuilder struct {
	ID   int
	Name string
}

// NewClient creates a ClientBuilder with a unique ID.
func NewClient() *ClientBuilder {
	id := MakeClientID()
	return &ClientBuilder{
		ID:   id,
		Name: MakeClientName("Test Client"),
	}
}

// WithID sets a custom ID.
func (b *ClientBuilder) WithID(id int) *ClientBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *ClientBuilder) WithName(name string) *ClientBuilder {
	b.Name = name
	return b
}

// Build inserts the client.
func (b *ClientBuilder) Build(t *testing.T, db *sql.DB) model.Client {
	t.Helper()

	c := model.Client{ID: b.ID, Name: b.Name}
	repo := repository.NewClientRepository(db, database.DialectSQLite)
	if err := repo.EnsureClient(context.Background(), c); err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}
	return c
}

// CreateClient creates a client with default values.
func CreateClient(t *testing.T, db *sql.DB) model.Client {
	t.Helper()
	return NewClient().Build(t, db)
}

// StatementBlockBuilder provides a fluent interface for creating stored bank blocks.
//
// Example usage:
//
//	testutil.NewStatementBlock(client.ID, "2024-03-31").
//	    WithBank("UBS").
//	    WithAccount("A-1").
//	    WithRows("cash_equivalents", testutil.Row("USD", 1000)).
//	    Build(t, db)
type StatementBlockBuilder struct {
	ClientID int
	Block    model.BankBlock
}

// NewStatementBlock creates a builder for a block dated asOfDate (YYYY-MM-DD).
func NewStatementBlock(clientID int, asOfDate string) *StatementBlockBuilder {
	return &StatementBlockBuilder{
		ClientID: clientID,
		Block: model.BankBlock{
			"bank":           "Test Bank",
			"account_number": "ACC-001",
			"as_of_date":     asOfDate,
		},
	}
}

// WithBank sets the bank name. nil leaves the key out.
func (b *StatementBlockBuilder) WithBank(bank any) *StatementBlockBuilder {
	return b.set("bank", bank)
}

// WithAccount sets the account number. nil leaves the key out.
func (b *StatementBlockBuilder) WithAccount(account any) *StatementBlockBuilder {
	return b.set("account_number", account)
}

// WithRows stores rows under key as a plain array.
func (b *StatementBlockBuilder) WithRows(key string, rows ...map[string]any) *StatementBlockBuilder {
	arr := make([]any, len(rows))
	for i, r := range rows {
		arr[i] = r
	}
	b.Block[key] = arr
	return b
}

// WithWrappedRows stores rows under key in the {"rows": [...]} form.
func (b *StatementBlockBuilder) WithWrappedRows(key string, rows ...map[string]any) *StatementBlockBuilder {
	arr := make([]any, len(rows))
	for i, r := range rows {
		arr[i] = r
	}
	b.Block[key] = map[string]any{"rows": arr}
	return b
}

// WithValue stores an arbitrary value under key.
func (b *StatementBlockBuilder) WithValue(key string, v any) *StatementBlockBuilder {
	b.Block[key] = v
	return b
}

// Build inserts the block and returns its ID.
func (b *StatementBlockBuilder) Build(t *testing.T, db *sql.DB) string {
	t.Helper()

	repo := repository.NewStatementRepository(db, database.DialectSQLite)
	id, err := repo.InsertBlock(context.Background(), b.ClientID, b.Block)
	if err != nil {
		t.Fatalf("Failed to create test statement block: %v", err)
	}
	return id
}

func (b *StatementBlockBuilder) set(key string, v any) *StatementBlockBuilder {
	if v == nil {
		delete(b.Block, key)
		return b
	}
	b.Block[key] = v
	return b
}

// Row builds a position row with a currency and a USD balance.
func Row(currency string, balanceUSD float64) map[string]any {
	return map[string]any{
		"currency":    currency,
		"balance_usd": balanceUSD,
	}
}
