package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"log"
	"net/http"
	"strconv"
	"survey-transform-service/internal/adapters/tables"
	"survey-transform-service/internal/api/dto"
	"survey-transform-service/internal/domain"
	"survey-transform-service/internal/ports"
	"survey-transform-service/internal/services"
)

const defaultMaxBodyBytes = 32 << 20

// TransformHandler exposes the converter and the rotator over HTTP.
// The request body is a table (CSV or XLSX); the response is the
// transformed table in the same format.
type TransformHandler struct {
	Recorder     ports.RunRecorder
	MaxBodyBytes int64
}

// Convert handles POST /convert?zone=32&hemisphere=N.
func (h *TransformHandler) Convert(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}

	q := r.URL.Query()
	zone, err := domain.ParseUtmZone(q.Get("zone"), q.Get("hemisphere"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.serve(w, r, func(job services.JobIO) (*services.JobResult, error) {
		return services.RunConvert(r.Context(), job, zone)
	})
}

// Rotate handles POST /rotate?x0=..&y0=..&angle=..
func (h *TransformHandler) Rotate(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}

	q := r.URL.Query()
	pivot, err := domain.ParsePivot(q.Get("x0"), q.Get("y0"), q.Get("angle"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.serve(w, r, func(job services.JobIO) (*services.JobResult, error) {
		return services.RunRotate(r.Context(), job, pivot)
	})
}

func (h *TransformHandler) serve(
	w http.ResponseWriter,
	r *http.Request,
	run func(services.JobIO) (*services.JobResult, error),
) {
	codec, err := tables.ForContentType(r.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, r, http.StatusUnsupportedMediaType, err.Error())
		return
	}

	limit := h.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	body := http.MaxBytesReader(w, r.Body, limit)
	defer body.Close()

	var out bytes.Buffer
	res, err := run(services.JobIO{
		Source:      "http:" + r.URL.Path,
		Destination: "http:response",
		Input:       body,
		Output:      &out,
		Reader:      codec,
		Writer:      codec,
		Recorder:    h.Recorder,
	})
	if err != nil {
		writeTransformError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", tables.ContentType(codec))
	w.Header().Set("X-Row-Count", strconv.Itoa(res.Rows))
	w.WriteHeader(http.StatusOK)
	if _, err := out.WriteTo(w); err != nil {
		log.Printf("write response failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

// writeTransformError maps the domain error taxonomy onto HTTP statuses.
func writeTransformError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		cfgErr  *domain.ConfigError
		maxErr  *http.MaxBytesError
		status  = http.StatusInternalServerError
		message = "internal server error"
	)

	switch {
	case errors.As(err, &cfgErr):
		status, message = http.StatusBadRequest, err.Error()
	case errors.As(err, &maxErr):
		status, message = http.StatusRequestEntityTooLarge, "request body too large"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		status, message = http.StatusUnsupportedMediaType, err.Error()
	case isTransformError(err):
		status, message = http.StatusUnprocessableEntity, err.Error()
	default:
		log.Printf("transform failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}

	res := dto.ErrorResponse{Error: message}
	if row, col, ok := domain.Position(err); ok {
		res.Row = row
		res.Column = &col
	}
	writeJSON(w, r, status, res)
}

func isTransformError(err error) bool {
	var pe *domain.ParseError
	var re *domain.RowError
	var csvErr *csv.ParseError
	return errors.As(err, &pe) ||
		errors.As(err, &re) ||
		errors.Is(err, domain.ErrTableShape) ||
		errors.Is(err, domain.ErrEmptyTable) ||
		errors.Is(err, domain.ErrMalformedTable) ||
		errors.As(err, &csvErr)
}

func allowPost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}
