package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"survey-transform-service/internal/domain"
	"survey-transform-service/internal/platform/obs"
	"time"
)

// SQLite backed run history. Timestamps are stored as RFC 3339 text in UTC
// so they sort lexically.
type SqliteRunLog struct {
	DB *sql.DB
}

func NewSqliteRunLog(db *sql.DB) *SqliteRunLog {
	return &SqliteRunLog{DB: db}
}

// Store a run, replacing any earlier record with the same id.
func (s *SqliteRunLog) RecordRun(ctx context.Context, run domain.Run) (err error) {
	defer obs.Time(ctx, "history.sqlite.RecordRun")(&err)

	if s.DB == nil {
		return errors.New("run log: db is nil")
	}
	if run.ID == "" {
		return errors.New("record run: id must not be empty")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO transform_runs (
		run_id,
		kind,
		source,
		destination,
		params,
		row_count,
		status,
		error,
		started_at,
		finished_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		run.ID, string(run.Kind), run.Source, run.Destination, run.Params, run.Rows,
		string(run.Status), run.Error, formatTime(run.StartedAt), formatTime(run.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("record run id=%q: %w", run.ID, err)
	}

	return nil
}

// Return up to limit runs, newest first.
func (s *SqliteRunLog) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	if s.DB == nil {
		return nil, errors.New("run log: db is nil")
	}
	if limit <= 0 {
		return []domain.Run{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT run_id, kind, source, destination, params, row_count, status, error, started_at, finished_at
	FROM transform_runs
	ORDER BY started_at DESC, run_id
	LIMIT ?;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query transform_runs table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Run, 0, limit)
	for rows.Next() {
		var r domain.Run
		var kind, status, started, finished string
		if err := rows.Scan(&r.ID, &kind, &r.Source, &r.Destination, &r.Params, &r.Rows, &status, &r.Error, &started, &finished); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		r.Kind = domain.RunKind(kind)
		r.Status = domain.RunStatus(status)
		if r.StartedAt, err = parseTime(started); err != nil {
			return nil, fmt.Errorf("list runs: run %q started_at: %w", r.ID, err)
		}
		if r.FinishedAt, err = parseTime(finished); err != nil {
			return nil, fmt.Errorf("list runs: run %q finished_at: %w", r.ID, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return out, nil
}

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) (time.Time, error) { return time.Parse(timeLayout, s) }
