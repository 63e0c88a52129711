package ports

import (
	"context"
	"survey-transform-service/internal/domain"
)

// Port: a boundary for keeping a history of transform runs.
type RunRecorder interface {
	// Store (or replace) a run record.
	RecordRun(ctx context.Context, run domain.Run) error
	// Return the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)
}
