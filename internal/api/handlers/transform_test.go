package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"survey-transform-service/internal/adapters/history"
	"survey-transform-service/internal/adapters/tables"
	"survey-transform-service/internal/api/dto"
	"survey-transform-service/internal/domain"
	"survey-transform-service/internal/platform/db"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(db.DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var res dto.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return res
}

func TestConvertCSV(t *testing.T) {
	h := &TransformHandler{Recorder: newStore(t)}

	req := httptest.NewRequest(http.MethodPost, "/convert?zone=32&hemisphere=N", strings.NewReader("lat,lon,id,note\n45.0,7.0,id1,extra\n"))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()

	h.Convert(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "1", rec.Header().Get("X-Row-Count"))
	assert.Equal(t, "Easting,Northing,id,note\n342369.359,4984896.171,id1,extra\n", rec.Body.String())

	runs, err := h.Recorder.ListRuns(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.RunOK, runs[0].Status)
	assert.Equal(t, "http:/convert", runs[0].Source)
}

func TestRotateXLSX(t *testing.T) {
	h := &TransformHandler{Recorder: history.Nop{}}

	var body bytes.Buffer
	in := &domain.Table{
		Header: []string{"id", "x", "y", "z", "old"},
		Rows:   []domain.Row{{"1", "500010", "4000000", "5", "stale"}},
	}
	require.NoError(t, tables.NewXLSXTable().WriteTable(context.Background(), &body, in))

	req := httptest.NewRequest(http.MethodPost, "/rotate?x0=500000&y0=4000000&angle=90", &body)
	req.Header.Set("Content-Type", tables.ContentTypeXLSX)
	rec := httptest.NewRecorder()

	h.Rotate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, tables.ContentTypeXLSX, rec.Header().Get("Content-Type"))

	out, err := tables.NewXLSXTable().ReadTable(context.Background(), rec.Body)
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "5.000000000000000000e+05", out.Rows[0][1])
	assert.Equal(t, "4.000010000000000000e+06", out.Rows[0][2])
	assert.Equal(t, "nan", out.Rows[0][4])
}

func TestTransformErrors(t *testing.T) {
	cases := []struct {
		name        string
		method      string
		target      string
		contentType string
		body        string
		status      int
		row         int
		column      *int
	}{
		{"wrong method", http.MethodGet, "/convert?zone=32&hemisphere=N", "", "", http.StatusMethodNotAllowed, 0, nil},
		{"missing zone", http.MethodPost, "/convert?hemisphere=N", "text/csv", "lat,lon\n", http.StatusBadRequest, 0, nil},
		{"bad hemisphere", http.MethodPost, "/convert?zone=32&hemisphere=Q", "text/csv", "lat,lon\n", http.StatusBadRequest, 0, nil},
		{"bad angle", http.MethodPost, "/rotate?x0=0&y0=0&angle=steep", "text/csv", "a,b,c,d\n", http.StatusBadRequest, 0, nil},
		{"unsupported type", http.MethodPost, "/convert?zone=32&hemisphere=N", "application/json", "{}", http.StatusUnsupportedMediaType, 0, nil},
		{"parse error", http.MethodPost, "/convert?zone=32&hemisphere=N", "text/csv", "lat,lon\n45,7\nabc,7\n", http.StatusUnprocessableEntity, 2, intPtr(0)},
		{"latitude", http.MethodPost, "/convert?zone=32&hemisphere=N", "text/csv", "lat,lon\n89,7\n", http.StatusUnprocessableEntity, 1, intPtr(0)},
		{"longitude", http.MethodPost, "/convert?zone=32&hemisphere=N", "text/csv", "lat,lon\n45,x\n", http.StatusUnprocessableEntity, 1, intPtr(1)},
		{"shape", http.MethodPost, "/rotate?x0=0&y0=0&angle=1", "text/csv", "id,x,y\n1,2,3\n", http.StatusUnprocessableEntity, 0, nil},
		{"ragged csv", http.MethodPost, "/rotate?x0=0&y0=0&angle=1", "text/csv", "id,x,y,z\n1,2,3\n", http.StatusUnprocessableEntity, 0, nil},
		{"empty body", http.MethodPost, "/rotate?x0=0&y0=0&angle=1", "", "", http.StatusUnprocessableEntity, 0, nil},
		{"not a workbook", http.MethodPost, "/convert?zone=32&hemisphere=N", tables.ContentTypeXLSX, "lat,lon\n45,7\n", http.StatusUnprocessableEntity, 0, nil},
		{"bad quote", http.MethodPost, "/rotate?x0=0&y0=0&angle=1", "text/csv", "id,x,y,z\n1,\"2,3,4\n", http.StatusUnprocessableEntity, 0, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := &TransformHandler{Recorder: history.Nop{}}
			req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}
			rec := httptest.NewRecorder()

			if strings.HasPrefix(tc.target, "/rotate") {
				h.Rotate(rec, req)
			} else {
				h.Convert(rec, req)
			}

			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			res := decodeError(t, rec)
			assert.NotEmpty(t, res.Error)
			assert.Equal(t, tc.row, res.Row)
			assert.Equal(t, tc.column, res.Column)
		})
	}
}

func TestTransformBodyTooLarge(t *testing.T) {
	h := &TransformHandler{Recorder: history.Nop{}, MaxBodyBytes: 16}

	body := "lat,lon\n" + strings.Repeat("45.0,7.0\n", 50)
	req := httptest.NewRequest(http.MethodPost, "/convert?zone=32&hemisphere=N", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Convert(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestTransformXLSXBodyTooLarge(t *testing.T) {
	h := &TransformHandler{Recorder: history.Nop{}, MaxBodyBytes: 16}

	req := httptest.NewRequest(http.MethodPost, "/convert?zone=32&hemisphere=N", strings.NewReader(strings.Repeat("x", 64)))
	req.Header.Set("Content-Type", tables.ContentTypeXLSX)
	rec := httptest.NewRecorder()

	h.Convert(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func intPtr(v int) *int { return &v }
