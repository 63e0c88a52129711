package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"survey-transform-service/internal/adapters/tables"
	"survey-transform-service/internal/domain"
	"survey-transform-service/internal/ports"
	"survey-transform-service/internal/services"
	"text/tabwriter"
	"time"
)

// Execute runs a parsed invocation. Reports go to stdout; the output table
// file is created only after the transform has succeeded.
func Execute(ctx context.Context, inv Invocation, recorder ports.RunRecorder, stdout io.Writer) error {
	switch inv.Command {
	case CommandConvert:
		return transformFile(ctx, inv, recorder, stdout, func(job services.JobIO) (*services.JobResult, error) {
			return services.RunConvert(ctx, job, inv.Zone)
		})
	case CommandRotate:
		return transformFile(ctx, inv, recorder, stdout, func(job services.JobIO) (*services.JobResult, error) {
			return services.RunRotate(ctx, job, inv.Pivot)
		})
	case CommandHistory:
		return printHistory(ctx, recorder, inv.Limit, stdout)
	}
	return invalidInvocationf("unknown command %q", inv.Command)
}

func transformFile(
	ctx context.Context,
	inv Invocation,
	recorder ports.RunRecorder,
	stdout io.Writer,
	run func(services.JobIO) (*services.JobResult, error),
) (err error) {
	reader, err := tables.ForPath(inv.InPath)
	if err != nil {
		return err
	}
	writer, err := tables.ForPath(inv.OutPath)
	if err != nil {
		return err
	}

	in, err := os.Open(inv.InPath)
	if err != nil {
		return fmt.Errorf("%s: open input: %w", inv.Command, err)
	}
	defer in.Close()

	out := &lazyFile{path: inv.OutPath}
	defer func() {
		if cerr := out.finish(err == nil); cerr != nil && err == nil {
			err = cerr
		}
	}()

	res, err := run(services.JobIO{
		Source:      inv.InPath,
		Destination: inv.OutPath,
		Input:       in,
		Output:      out,
		Reader:      reader,
		Writer:      writer,
		Recorder:    recorder,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: wrote %d rows to %s (run %s)\n", inv.Command, res.Rows, inv.OutPath, res.RunID)
	return nil
}

func printHistory(ctx context.Context, recorder ports.RunRecorder, limit int, stdout io.Writer) error {
	if recorder == nil {
		return errors.New("history: no run history configured")
	}
	runs, err := recorder.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tKIND\tSTATUS\tROWS\tPARAMS\tSOURCE\tDESTINATION")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			r.StartedAt.Local().Format(time.DateTime), r.Kind, statusLabel(r), r.Rows, r.Params, r.Source, r.Destination)
	}
	return tw.Flush()
}

func statusLabel(r domain.Run) string {
	if r.Status == domain.RunFailed && r.Error != "" {
		return fmt.Sprintf("%s (%s)", r.Status, r.Error)
	}
	return string(r.Status)
}

// lazyFile creates its file on the first Write, so a failed job leaves no
// output file behind.
type lazyFile struct {
	path string
	f    *os.File
}

func (l *lazyFile) Write(p []byte) (int, error) {
	if l.f == nil {
		f, err := os.Create(l.path)
		if err != nil {
			return 0, fmt.Errorf("create output %q: %w", l.path, err)
		}
		l.f = f
	}
	return l.f.Write(p)
}

// finish closes the file, removing it when the job did not succeed.
func (l *lazyFile) finish(ok bool) error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	if !ok {
		_ = os.Remove(l.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("close output %q: %w", l.path, err)
	}
	return nil
}
