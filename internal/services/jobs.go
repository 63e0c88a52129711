package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"survey-transform-service/internal/domain"
	"survey-transform-service/internal/platform/obs"
	"survey-transform-service/internal/ports"
	"time"
)

// JobIO describes where a job reads its table from and writes it to.
// Source and Destination are labels for the run history (file paths,
// "http" ...); the data flows through Input and Output.
type JobIO struct {
	Source      string
	Destination string
	Input       io.Reader
	Output      io.Writer
	Reader      ports.TableReader
	Writer      ports.TableWriter
	Recorder    ports.RunRecorder
}

// JobResult summarizes a successful job.
type JobResult struct {
	RunID string
	Rows  int
}

// RunConvert reads a table, converts it to UTM and writes it.
func RunConvert(ctx context.Context, job JobIO, zone domain.UtmZone) (*JobResult, error) {
	return runJob(ctx, job, domain.RunConvert, zone.String(), func(t *domain.Table) (*domain.Table, error) {
		return ConvertTable(t, zone)
	})
}

// RunRotate reads a table, rotates it about the pivot and writes it.
func RunRotate(ctx context.Context, job JobIO, pivot domain.Pivot) (*JobResult, error) {
	return runJob(ctx, job, domain.RunRotate, pivot.String(), func(t *domain.Table) (*domain.Table, error) {
		return RotateTable(t, pivot)
	})
}

// runJob drives read -> transform -> write -> record. The encoded output is
// buffered and only copied to job.Output once every step succeeded, so a
// failed job leaves the destination untouched.
func runJob(
	ctx context.Context,
	job JobIO,
	kind domain.RunKind,
	params string,
	transform func(*domain.Table) (*domain.Table, error),
) (_ *JobResult, err error) {
	if job.Input == nil || job.Output == nil || job.Reader == nil || job.Writer == nil {
		return nil, errors.New("run job: input, output, reader and writer are required")
	}

	if obs.RunID(ctx) == "" {
		ctx = obs.WithRunID(ctx, "")
	}
	defer obs.Time(ctx, "job."+string(kind))(&err)

	run := domain.Run{
		ID:          obs.RunID(ctx),
		Kind:        kind,
		Source:      job.Source,
		Destination: job.Destination,
		Params:      params,
		StartedAt:   time.Now(),
	}
	defer func() {
		run.FinishedAt = time.Now()
		run.Status = domain.RunOK
		if err != nil {
			run.Status = domain.RunFailed
			run.Error = err.Error()
		}
		record(ctx, job.Recorder, run)
	}()

	in, err := job.Reader.ReadTable(ctx, job.Input)
	if err != nil {
		return nil, fmt.Errorf("run %s: read table: %w", kind, err)
	}

	out, err := transform(in)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", kind, err)
	}
	run.Rows = out.Len()

	var buf bytes.Buffer
	if err := job.Writer.WriteTable(ctx, &buf, out); err != nil {
		return nil, fmt.Errorf("run %s: write table: %w", kind, err)
	}
	if _, err := io.Copy(job.Output, &buf); err != nil {
		return nil, fmt.Errorf("run %s: flush output: %w", kind, err)
	}

	return &JobResult{RunID: run.ID, Rows: run.Rows}, nil
}

// record stores the run; history failures never change the job outcome.
func record(ctx context.Context, rec ports.RunRecorder, run domain.Run) {
	if rec == nil {
		return
	}
	if err := rec.RecordRun(ctx, run); err != nil {
		log.Printf("run history write failed: run_id=%s err=%v", run.ID, err)
	}
}
