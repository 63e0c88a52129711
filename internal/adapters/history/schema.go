package history

import (
	"database/sql"
	"errors"
	"fmt"
	"survey-transform-service/internal/platform/db"
)

// Initialize the transform_runs schema for the given dialect.
func InitSchema(conn *sql.DB, dialect string) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	var createRunsQuery string
	switch dialect {
	case db.DialectSQLite:
		createRunsQuery = `
	CREATE TABLE IF NOT EXISTS transform_runs (
		run_id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		source TEXT NOT NULL,
		destination TEXT NOT NULL,
		params TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		status TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL
	);
	`
	case db.DialectPostgres:
		createRunsQuery = `
	CREATE TABLE IF NOT EXISTS transform_runs (
		run_id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		source TEXT NOT NULL,
		destination TEXT NOT NULL,
		params TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		status TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		started_at TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	);
	`
	default:
		return fmt.Errorf("init schema: unknown dialect %q", dialect)
	}

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_transform_runs_started_at
	ON transform_runs(started_at);
	`

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		createRunsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
