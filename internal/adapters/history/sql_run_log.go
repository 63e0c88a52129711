package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"survey-transform-service/internal/domain"
	"survey-transform-service/internal/platform/obs"
)

// SQLRunLog is a Postgres-backed run history.
type SQLRunLog struct {
	DB *sql.DB
}

func NewSQLRunLog(db *sql.DB) *SQLRunLog {
	return &SQLRunLog{DB: db}
}

// Store a run, replacing any earlier record with the same id.
func (s *SQLRunLog) RecordRun(ctx context.Context, run domain.Run) (err error) {
	defer obs.Time(ctx, "history.sql.RecordRun")(&err)

	if s.DB == nil {
		return errors.New("run log: db is nil")
	}
	if run.ID == "" {
		return errors.New("record run: id must not be empty")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO transform_runs (
		run_id, kind, source, destination, params, row_count, status, error, started_at, finished_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (run_id) DO UPDATE
	SET kind = EXCLUDED.kind,
		source = EXCLUDED.source,
		destination = EXCLUDED.destination,
		params = EXCLUDED.params,
		row_count = EXCLUDED.row_count,
		status = EXCLUDED.status,
		error = EXCLUDED.error,
		started_at = EXCLUDED.started_at,
		finished_at = EXCLUDED.finished_at;
	`,
		run.ID, string(run.Kind), run.Source, run.Destination, run.Params, run.Rows,
		string(run.Status), run.Error, run.StartedAt.UTC(), run.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record run id=%q: %w", run.ID, err)
	}

	return nil
}

// Return up to limit runs, newest first.
func (s *SQLRunLog) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
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
	LIMIT $1;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query transform_runs table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Run, 0, limit)
	for rows.Next() {
		var r domain.Run
		var kind, status string
		if err := rows.Scan(&r.ID, &kind, &r.Source, &r.Destination, &r.Params, &r.Rows, &status, &r.Error, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		r.Kind = domain.RunKind(kind)
		r.Status = domain.RunStatus(status)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return out, nil
}
