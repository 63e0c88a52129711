package api

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"survey-transform-service/internal/adapters/history"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestRouterEchoesRequestID(t *testing.T) {
	logs := captureLog(t)
	srv := httptest.NewServer(NewRouter(history.Nop{}, 0))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/convert?zone=31&hemisphere=N", strings.NewReader("lat,lon\n0,3\n"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/csv")
	req.Header.Set(requestIDHeader, "req-42")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "req-42", res.Header.Get(requestIDHeader))

	var body bytes.Buffer
	_, err = body.ReadFrom(res.Body)
	require.NoError(t, err)
	assert.Equal(t, "Easting,Northing\n500000.000,0.000\n", body.String())

	srv.Close()
	assert.Contains(t, logs.String(), "run_id=req-42 method=POST path=/convert?zone=31&hemisphere=N status=200")
	assert.Contains(t, logs.String(), "run_id=req-42 op=job.convert")
}

func TestRouterGeneratesRequestID(t *testing.T) {
	captureLog(t)
	h := NewRouter(history.Nop{}, 0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Header().Get(requestIDHeader), 36)
}

func TestRouterRoutes(t *testing.T) {
	captureLog(t)
	h := NewRouter(history.Nop{}, 0)

	for target, want := range map[string]int{
		"/health":  http.StatusOK,
		"/runs":    http.StatusOK,
		"/convert": http.StatusMethodNotAllowed,
		"/rotate":  http.StatusMethodNotAllowed,
		"/missing": http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, want, rec.Code, target)
	}
}

func TestStatusWriterDefaultsTo200(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec}

	n, err := sw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusOK, sw.status)
	assert.Equal(t, 5, sw.bytes)
}
