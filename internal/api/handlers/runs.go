package handlers

import (
	"log"
	"net/http"
	"strconv"
	"survey-transform-service/internal/api/dto"
	"survey-transform-service/internal/ports"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 500
)

// RunHandler exposes read-only access to the run history.
type RunHandler struct {
	Recorder ports.RunRecorder
}

func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := defaultRunLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRunLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	runs, err := h.Recorder.ListRuns(r.Context(), limit)
	if err != nil {
		log.Printf("list runs failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRunsResponse{
		Runs: make([]dto.RunResponse, 0, len(runs)),
	}
	for _, run := range runs {
		res.Runs = append(res.Runs, dto.RunResponse{
			RunID:       run.ID,
			Kind:        string(run.Kind),
			Source:      run.Source,
			Destination: run.Destination,
			Params:      run.Params,
			Rows:        run.Rows,
			Status:      string(run.Status),
			Error:       run.Error,
			StartedAt:   run.StartedAt,
			FinishedAt:  run.FinishedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
