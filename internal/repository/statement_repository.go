package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JasVita/wealthpilot-portal/internal/database"
	"github.com/JasVita/wealthpilot-portal/internal/model"
)

// StatementRepository provides data access methods for the statement_block table.
// Each row stores one bank/account snapshot; table_data holds its category buckets as JSON.
type StatementRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewStatementRepository creates a new StatementRepository with the provided database connection.
func NewStatementRepository(db *sql.DB, dialect database.Dialect) *StatementRepository {
	return &StatementRepository{db: db, dialect: dialect}
}

// MonthTableData returns every block stored for the client in the given calendar month,
// ordered by bank and account. A month without data yields an empty TableData.
func (r *StatementRepository) MonthTableData(ctx context.Context, clientID, year, month int) (model.TableData, error) {
	query := `
		SELECT bank, account_number, as_of_date, table_data
		FROM statement_block
		WHERE client_id = ?
		AND year = ?
		AND month = ?
		ORDER BY bank, account_number
	`

	blocks, err := r.queryBlocks(ctx, query, clientID, year, month)
	if err != nil {
		return model.TableData{}, err
	}
	return model.TableData{TableData: blocks}, nil
}

// RangeTableData returns, for every bank/account, its latest block whose as_of_date falls
// inside [from, to]. Every filter is optional; custodian and account restrict to an exact
// bank name and account number. Periods lists the YYYY-MM months present in the window
// (newest first) and Custodians the distinct banks.
func (r *StatementRepository) RangeTableData(ctx context.Context, clientID int, from, to, custodian, account *string) (model.TableData, error) {
	windowSQL, windowArgs := windowFilter("s", from, to)
	subWindowSQL, subWindowArgs := windowFilter("s2", from, to)

	var filterSQL string
	var filterArgs []any
	if custodian != nil {
		filterSQL += " AND s.bank = ?"
		filterArgs = append(filterArgs, *custodian)
	}
	if account != nil {
		filterSQL += " AND s.account_number = ?"
		filterArgs = append(filterArgs, *account)
	}

	//#nosec G202 -- Safe: only fixed fragments and placeholders are concatenated
	query := `
		SELECT s.bank, s.account_number, s.as_of_date, s.table_data
		FROM statement_block s
		WHERE s.client_id = ?
		AND s.as_of_date IS NOT NULL` + windowSQL + filterSQL + `
		AND s.as_of_date = (
			SELECT MAX(s2.as_of_date)
			FROM statement_block s2
			WHERE s2.client_id = s.client_id
			AND COALESCE(s2.bank, '') = COALESCE(s.bank, '')
			AND COALESCE(s2.account_number, '') = COALESCE(s.account_number, '')` + subWindowSQL + `
		)
		ORDER BY s.bank, s.account_number
	`
	args := []any{clientID}
	args = append(args, windowArgs...)
	args = append(args, filterArgs...)
	args = append(args, subWindowArgs...)

	blocks, err := r.queryBlocks(ctx, query, args...)
	if err != nil {
		return model.TableData{}, err
	}

	periods, err := r.periodsInWindow(ctx, clientID, from, to, filterSQL, filterArgs)
	if err != nil {
		return model.TableData{}, err
	}

	custodians, err := r.custodiansInWindow(ctx, clientID, from, to)
	if err != nil {
		return model.TableData{}, err
	}

	return model.TableData{TableData: blocks, Periods: periods, Custodians: custodians}, nil
}

// RecentMonths lists up to limit months, newest first, in which the client has at least
// one block with an as_of_date.
func (r *StatementRepository) RecentMonths(ctx context.Context, clientID, limit int) ([]model.YearMonth, error) {
	query := `
		SELECT DISTINCT year, month
		FROM statement_block
		WHERE client_id = ?
		AND as_of_date IS NOT NULL
		ORDER BY year DESC, month DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query statement_block months: %w", err)
	}
	defer rows.Close()

	months := []model.YearMonth{}
	for rows.Next() {
		var ym model.YearMonth
		if err := rows.Scan(&ym.Year, &ym.Month); err != nil {
			return nil, fmt.Errorf("failed to scan statement_block months: %w", err)
		}
		months = append(months, ym)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement_block months: %w", err)
	}

	return months, nil
}

// InsertBlock stores one block for a client. The block's bank, account_number and
// as_of_date keys are lifted into columns; the remaining keys are stored as table_data.
// as_of_date is required because it determines the block's month.
func (r *StatementRepository) InsertBlock(ctx context.Context, clientID int, block model.BankBlock) (string, error) {
	asOf, err := ParseTime(block.AsOfDate())
	if err != nil {
		return "", fmt.Errorf("invalid as_of_date for block: %w", err)
	}

	buckets := make(map[string]any, len(block))
	for k, v := range block {
		switch k {
		case "bank", "account_number", "as_of_date":
			continue
		}
		buckets[k] = v
	}
	payload, err := json.Marshal(buckets)
	if err != nil {
		return "", fmt.Errorf("failed to encode table_data: %w", err)
	}

	query := `
		INSERT INTO statement_block (id, client_id, bank, account_number, as_of_date, year, month, table_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	id := uuid.New().String()
	_, err = r.db.ExecContext(ctx, r.dialect.Rebind(query),
		id,
		clientID,
		nullableString(block["bank"]),
		nullableString(block["account_number"]),
		asOf.Format("2006-01-02"),
		asOf.Year(),
		int(asOf.Month()),
		string(payload),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert statement_block: %w", err)
	}
	return id, nil
}

func (r *StatementRepository) queryBlocks(ctx context.Context, query string, args ...any) ([]model.BankBlock, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query statement_block: %w", err)
	}
	defer rows.Close()

	blocks := []model.BankBlock{}
	for rows.Next() {
		var bank, account, asOf sql.NullString
		var tableData string

		if err := rows.Scan(&bank, &account, &asOf, &tableData); err != nil {
			return nil, fmt.Errorf("failed to scan statement_block results: %w", err)
		}

		block := model.BankBlock{}
		if strings.TrimSpace(tableData) != "" {
			if err := json.Unmarshal([]byte(tableData), &block); err != nil {
				return nil, fmt.Errorf("failed to decode statement_block table_data: %w", err)
			}
			if block == nil {
				block = model.BankBlock{}
			}
		}
		block["bank"] = nullStringValue(bank)
		block["account_number"] = nullStringValue(account)
		block["as_of_date"] = nullStringValue(asOf)

		blocks = append(blocks, block)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement_block: %w", err)
	}

	return blocks, nil
}

func (r *StatementRepository) periodsInWindow(ctx context.Context, clientID int, from, to *string, filterSQL string, filterArgs []any) ([]string, error) {
	windowSQL, windowArgs := windowFilter("s", from, to)

	//#nosec G202 -- Safe: only fixed fragments and placeholders are concatenated
	query := `
		SELECT DISTINCT s.year, s.month
		FROM statement_block s
		WHERE s.client_id = ?
		AND s.as_of_date IS NOT NULL` + windowSQL + filterSQL + `
		ORDER BY s.year DESC, s.month DESC
	`
	args := []any{clientID}
	args = append(args, windowArgs...)
	args = append(args, filterArgs...)

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query statement_block periods: %w", err)
	}
	defer rows.Close()

	periods := []string{}
	for rows.Next() {
		var year, month int
		if err := rows.Scan(&year, &month); err != nil {
			return nil, fmt.Errorf("failed to scan statement_block periods: %w", err)
		}
		periods = append(periods, fmt.Sprintf("%04d-%02d", year, month))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement_block periods: %w", err)
	}
	return periods, nil
}

func (r *StatementRepository) custodiansInWindow(ctx context.Context, clientID int, from, to *string) ([]string, error) {
	windowSQL, windowArgs := windowFilter("s", from, to)

	//#nosec G202 -- Safe: only fixed fragments and placeholders are concatenated
	query := `
		SELECT DISTINCT s.bank
		FROM statement_block s
		WHERE s.client_id = ?
		AND s.bank IS NOT NULL
		AND s.as_of_date IS NOT NULL` + windowSQL + `
		ORDER BY s.bank
	`
	args := append([]any{clientID}, windowArgs...)

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query statement_block custodians: %w", err)
	}
	defer rows.Close()

	custodians := []string{}
	for rows.Next() {
		var bank string
		if err := rows.Scan(&bank); err != nil {
			return nil, fmt.Errorf("failed to scan statement_block custodians: %w", err)
		}
		custodians = append(custodians, bank)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement_block custodians: %w", err)
	}
	return custodians, nil
}

// windowFilter builds the as_of_date bounds for a table alias.
func windowFilter(alias string, from, to *string) (string, []any) {
	var sqlFrag string
	var args []any
	if from != nil {
		sqlFrag += " AND " + alias + ".as_of_date >= ?"
		args = append(args, *from)
	}
	if to != nil {
		sqlFrag += " AND " + alias + ".as_of_date <= ?"
		args = append(args, *to)
	}
	return sqlFrag, args
}

func nullStringValue(ns sql.NullString) any {
	if !ns.Valid {
		return nil
	}
	return ns.String
}

func nullableString(v any) sql.NullString {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
