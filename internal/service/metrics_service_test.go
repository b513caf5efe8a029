package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szlg-ftv/ftv-api/internal/models"
)

func TestMetricsServiceRecordImport(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/users/import-csv-preview", http.StatusOK, 20*time.Millisecond)
	m.RecordImport(ImportResultInvalid, &models.ValidationOutcome{
		Users:    []models.ParsedUser{{}, {}},
		Warnings: []string{"w"},
		Rejected: 1,
		Skipped:  3,
	}, time.Millisecond)
	m.RecordImport(ImportResultParseFailed, nil, time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, uint64(1), snap.RequestsTotal)
	assert.InDelta(t, 20.0, snap.AverageRequestDurationMs, 0.001)
	assert.Equal(t, uint64(2), snap.PreviewsTotal)
	assert.Equal(t, uint64(2), snap.PreviewsFailed)
	assert.Equal(t, uint64(2), snap.RowsAccepted)
	assert.Equal(t, uint64(1), snap.RowsRejected)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `user_import_previews_total{result="validation_failed"} 1`)
	assert.Contains(t, body, `user_import_rows_total{status="skipped"} 3`)
	assert.Contains(t, body, "user_import_warnings_total 1")
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Second)
	m.RecordImport(ImportResultAccepted, nil, time.Second)
	assert.Equal(t, models.ImportMetricsSnapshot{}, m.Snapshot())

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
