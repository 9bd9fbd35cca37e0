// Package storage implements the local SQLite write-ahead buffer. Rows are
// appended here first and copied to the spreadsheet asynchronously by the
// sync worker, so a submit never waits on the Sheets API.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"quickledger/internal/core"
	"quickledger/internal/ledger"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

// PendingRow is a buffered transaction that has not reached the sheet yet.
type PendingRow struct {
	ID  int64
	Row []string
}

// Ensure interface conformance
var (
	_ ledger.RowReader   = (*SQLiteRepository)(nil)
	_ ledger.RowAppender = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements ledger.RowAppender. The row arrives in canonical column
// order; the amount is stored as cents. Rows only reach this path through
// the validated entry form, but an unparsable amount still coerces to zero
// rather than failing the append.
func (r *SQLiteRepository) Append(ctx context.Context, row []string) (string, error) {
	if len(row) != core.ColumnCount {
		return "", fmt.Errorf("expected %d columns, got %d", core.ColumnCount, len(row))
	}

	cents, err := core.ParseDecimalToCents(row[core.ColAmount])
	if err != nil {
		cents = 0
	}
	createdAt := row[core.ColCreatedAt]
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions
			(txn_date, type, amount_cents, payment_mode, description, account, sub_account, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		row[core.ColDate], row[core.ColType], cents, row[core.ColMode],
		row[core.ColDescription], row[core.ColAccount], row[core.ColSubAccount], createdAt,
	)
	if err != nil {
		return "", ledger.Unavailable("insert transaction", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", id,
		"account", row[core.ColAccount],
		"amount_cents", cents,
		"type", row[core.ColType])

	return strconv.FormatInt(id, 10), nil
}

// ReadAll implements ledger.RowReader, returning rows in append order.
func (r *SQLiteRepository) ReadAll(ctx context.Context) ([][]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT txn_date, type, amount_cents, payment_mode, description, account, sub_account, created_at
		FROM transactions ORDER BY id`)
	if err != nil {
		return nil, ledger.Unavailable("select transactions", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, ledger.Unavailable("iterate transactions", err)
	}
	if out == nil {
		out = [][]string{}
	}
	return out, nil
}

// GetRow returns one buffered row by its local id.
func (r *SQLiteRepository) GetRow(ctx context.Context, id int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT txn_date, type, amount_cents, payment_mode, description, account, sub_account, created_at
		FROM transactions WHERE id = ?`, id)
	if err != nil {
		return nil, ledger.Unavailable("select transaction", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, ledger.Unavailable("select transaction", err)
		}
		return nil, fmt.Errorf("transaction %d: %w", id, sql.ErrNoRows)
	}
	return scanRow(rows)
}

// ListPendingSync returns up to limit rows that have not been copied to the
// sheet, oldest first.
func (r *SQLiteRepository) ListPendingSync(ctx context.Context, limit int) ([]PendingRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, txn_date, type, amount_cents, payment_mode, description, account, sub_account, created_at
		FROM transactions WHERE synced_at IS NULL ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, ledger.Unavailable("select pending transactions", err)
	}
	defer rows.Close()

	var out []PendingRow
	for rows.Next() {
		var id, cents int64
		var date, typ, mode, desc, account, subAccount, createdAt string
		if err := rows.Scan(&id, &date, &typ, &cents, &mode, &desc, &account, &subAccount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan pending transaction: %w", err)
		}
		out = append(out, PendingRow{
			ID:  id,
			Row: buildRow(date, typ, cents, mode, desc, account, subAccount, createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, ledger.Unavailable("iterate pending transactions", err)
	}
	return out, nil
}

// MarkSynced records that the row reached the sheet.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET synced_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return ledger.Unavailable("mark synced", err)
	}
	return nil
}

func scanRow(rows *sql.Rows) ([]string, error) {
	var cents int64
	var date, typ, mode, desc, account, subAccount, createdAt string
	if err := rows.Scan(&date, &typ, &cents, &mode, &desc, &account, &subAccount, &createdAt); err != nil {
		return nil, err
	}
	return buildRow(date, typ, cents, mode, desc, account, subAccount, createdAt), nil
}

func buildRow(date, typ string, cents int64, mode, desc, account, subAccount, createdAt string) []string {
	row := make([]string, core.ColumnCount)
	row[core.ColDate] = date
	row[core.ColType] = typ
	row[core.ColAmount] = core.Money{Cents: cents}.String()
	row[core.ColMode] = mode
	row[core.ColDescription] = desc
	row[core.ColAccount] = account
	row[core.ColSubAccount] = subAccount
	row[core.ColCreatedAt] = createdAt
	return row
}
