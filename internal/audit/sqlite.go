package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thruflo/liftlogic/internal/rep"

	_ "modernc.org/sqlite"
)

// SQLiteSink writes each session to a new audit_<stamp> table in a SQLite
// database file. The database accumulates sessions; each table is one.
type SQLiteSink struct {
	path string
	now  func() time.Time
}

// NewSQLiteSink creates a SQLiteSink for the database at path. now may be nil.
func NewSQLiteSink(path string, now func() time.Time) *SQLiteSink {
	if now == nil {
		now = time.Now
	}
	return &SQLiteSink{path: path, now: now}
}

// Write creates the session table, inserts events in one transaction and
// returns "<absolute db path>#<table>".
func (s *SQLiteSink) Write(ctx context.Context, events []rep.Event) (string, error) {
	path, err := filepath.Abs(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return "", fmt.Errorf("failed to open audit database: %w", err)
	}
	defer db.Close()

	table := TableName(s.now())

	var exists int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
	).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("failed to inspect audit database: %w", err)
	}
	if exists > 0 {
		return "", fmt.Errorf("%w: %s#%s", ErrArtifactExists, path, table)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin audit transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	// The table name is generated from a timestamp layout and never contains
	// user input.
	create := fmt.Sprintf(`CREATE TABLE %q (
		seq INTEGER PRIMARY KEY,
		"Time" TEXT NOT NULL,
		"Exercise" TEXT NOT NULL,
		"Result" TEXT NOT NULL,
		"Note" TEXT NOT NULL
	)`, table)
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return "", fmt.Errorf("failed to create audit table: %w", err)
	}

	insert := fmt.Sprintf(`INSERT INTO %q (seq, "Time", "Exercise", "Result", "Note") VALUES (?, ?, ?, ?, ?)`, table)
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return "", fmt.Errorf("failed to prepare audit insert: %w", err)
	}
	defer stmt.Close()

	for i, ev := range events {
		row := Row(ev)
		if _, err := stmt.ExecContext(ctx, i+1, row[0], row[1], row[2], row[3]); err != nil {
			return "", fmt.Errorf("failed to insert audit row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit audit transaction: %w", err)
	}
	return path + "#" + table, nil
}

// ReadTable loads the rows of one audit table in emission order.
func ReadTable(ctx context.Context, dbPath, table string) ([][]string, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	defer db.Close()

	query := fmt.Sprintf(`SELECT "Time", "Exercise", "Result", "Note" FROM %q ORDER BY seq`, table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit table: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var tm, exercise, result, note string
		if err := rows.Scan(&tm, &exercise, &result, &note); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		out = append(out, []string{tm, exercise, result, note})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit table: %w", err)
	}
	return out, nil
}
