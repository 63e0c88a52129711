package domain

import "time"

type RunKind string

const (
	RunConvert RunKind = "convert"
	RunRotate  RunKind = "rotate"
)

type RunStatus string

const (
	RunOK     RunStatus = "ok"
	RunFailed RunStatus = "failed"
)

// Represents one invocation of a transform.
// A Run records where a table came from and went to, the parameters and
// the outcome. It never holds table content.
type Run struct {
	ID          string
	Kind        RunKind
	Source      string
	Destination string
	Params      string
	Rows        int
	Status      RunStatus
	Error       string
	StartedAt   time.Time
	FinishedAt  time.Time
}
