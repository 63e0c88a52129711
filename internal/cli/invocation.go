package cli

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"survey-transform-service/internal/config"
	"survey-transform-service/internal/domain"
)

const (
	ExitSuccess           = 0
	ExitTransformFailure  = 1
	ExitInvalidInvocation = 2
	ExitConfigError       = 3
	ExitInternalError     = 4
)

type Command string

const (
	CommandConvert Command = "convert"
	CommandRotate  Command = "rotate"
	CommandHistory Command = "history"
)

const usage = `usage:
  survey convert -in FILE -out FILE [-zone N] [-hemisphere N|S]
  survey rotate  -in FILE -out FILE [-x0 X] [-y0 Y] [-angle DEG]
  survey history [-limit N]`

// Invocation is a fully validated description of one CLI run.
type Invocation struct {
	Command Command
	InPath  string
	OutPath string
	Zone    domain.UtmZone
	Pivot   domain.Pivot
	Limit   int
}

type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

// ParseInvocation parses the subcommand and its flags. Flags left unset fall
// back to defaults (environment or parameter file); the merged values are
// validated here so no file is touched with bad parameters.
func ParseInvocation(args []string, defaults config.Params) (Invocation, error) {
	if len(args) == 0 {
		return Invocation{}, invalidInvocationf("missing command\n%s", usage)
	}

	cmd := Command(strings.ToLower(args[0]))
	fs := flag.NewFlagSet("survey "+string(cmd), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parsing errors are returned, not printed

	var inv Invocation
	var zone, hemisphere, x0, y0, angle string

	switch cmd {
	case CommandConvert:
		fs.StringVar(&inv.InPath, "in", "", "Input table (.csv or .xlsx). Required.")
		fs.StringVar(&inv.OutPath, "out", "", "Output table (.csv or .xlsx). Required.")
		fs.StringVar(&zone, "zone", defaults.Zone, "UTM zone number 1-60.")
		fs.StringVar(&hemisphere, "hemisphere", defaults.Hemisphere, "Hemisphere N or S.")
	case CommandRotate:
		fs.StringVar(&inv.InPath, "in", "", "Input table (.csv or .xlsx). Required.")
		fs.StringVar(&inv.OutPath, "out", "", "Output table (.csv or .xlsx). Required.")
		fs.StringVar(&x0, "x0", defaults.Pivot.X0, "Pivot easting.")
		fs.StringVar(&y0, "y0", defaults.Pivot.Y0, "Pivot northing.")
		fs.StringVar(&angle, "angle", defaults.Pivot.Angle, "Rotation angle in degrees, counter-clockwise.")
	case CommandHistory:
		fs.IntVar(&inv.Limit, "limit", 20, "Number of runs to show.")
	default:
		return Invocation{}, invalidInvocationf("unknown command %q\n%s", args[0], usage)
	}
	inv.Command = cmd

	if err := fs.Parse(args[1:]); err != nil {
		return Invocation{}, invalidInvocationf("%v", err)
	}
	if fs.NArg() != 0 {
		return Invocation{}, invalidInvocationf("unexpected positional arguments: %q", strings.Join(fs.Args(), " "))
	}

	var err error
	switch cmd {
	case CommandConvert:
		if err = requirePaths(&inv); err != nil {
			return Invocation{}, err
		}
		inv.Zone, err = domain.ParseUtmZone(zone, hemisphere)
	case CommandRotate:
		if err = requirePaths(&inv); err != nil {
			return Invocation{}, err
		}
		inv.Pivot, err = domain.ParsePivot(x0, y0, angle)
	case CommandHistory:
		if inv.Limit < 1 {
			err = invalidInvocationf("-limit must be positive (got %d)", inv.Limit)
		}
	}
	if err != nil {
		return Invocation{}, err
	}

	return inv, nil
}

func requirePaths(inv *Invocation) error {
	if strings.TrimSpace(inv.InPath) == "" {
		return invalidInvocationf("-in is required")
	}
	if strings.TrimSpace(inv.OutPath) == "" {
		return invalidInvocationf("-out is required")
	}
	inv.InPath = filepath.Clean(inv.InPath)
	inv.OutPath = filepath.Clean(inv.OutPath)
	if inv.InPath == inv.OutPath {
		return invalidInvocationf("-in and -out must differ (got %q)", inv.InPath)
	}
	return nil
}

// ExitCode maps an error from ParseInvocation or Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil {
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInvocation
	}

	var cfgErr *domain.ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}

	var pe *domain.ParseError
	var re *domain.RowError
	var csvErr *csv.ParseError
	if errors.As(err, &pe) || errors.As(err, &re) || errors.As(err, &csvErr) ||
		errors.Is(err, domain.ErrTableShape) ||
		errors.Is(err, domain.ErrEmptyTable) ||
		errors.Is(err, domain.ErrMalformedTable) ||
		errors.Is(err, domain.ErrUnsupportedFormat) {
		return ExitTransformFailure
	}
	return ExitInternalError
}
