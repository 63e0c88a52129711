package dto

import "time"

type RunResponse struct {
	RunID       string    `json:"run_id"`
	Kind        string    `json:"kind"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Params      string    `json:"params"`
	Rows        int       `json:"rows"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

type ListRunsResponse struct {
	Runs []RunResponse `json:"runs"`
}
