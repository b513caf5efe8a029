package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/szlg-ftv/ftv-api/internal/models"
)

// Import preview results used as metric labels.
const (
	ImportResultAccepted    = "accepted"
	ImportResultPartial     = "partial"
	ImportResultInvalid     = "validation_failed"
	ImportResultParseFailed = "parse_failed"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	importPreviews  *prometheus.CounterVec
	importRows      *prometheus.CounterVec
	importWarnings  prometheus.Counter
	importDuration  prometheus.Histogram

	requestCount         uint64
	requestDurationTotal uint64
	previewCount         uint64
	previewFailedCount   uint64
	rowsAccepted         uint64
	rowsRejected         uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	importPreviews := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "user_import_previews_total",
		Help: "CSV user import previews by result",
	}, []string{"result"})

	importRows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "user_import_rows_total",
		Help: "CSV user import rows by status",
	}, []string{"status"})

	importWarnings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "user_import_warnings_total",
		Help: "Non-fatal row warnings emitted by CSV user imports",
	})

	importDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "user_import_duration_seconds",
		Help:    "Time spent running the CSV user import pipeline",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, importPreviews, importRows, importWarnings, importDuration, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		importPreviews:  importPreviews,
		importRows:      importRows,
		importWarnings:  importWarnings,
		importDuration:  importDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordImport records one pipeline run. outcome is nil when the file failed to parse.
func (m *MetricsService) RecordImport(result string, outcome *models.ValidationOutcome, duration time.Duration) {
	if m == nil {
		return
	}
	m.importPreviews.WithLabelValues(result).Inc()
	m.importDuration.Observe(duration.Seconds())
	atomic.AddUint64(&m.previewCount, 1)
	if result == ImportResultInvalid || result == ImportResultParseFailed {
		atomic.AddUint64(&m.previewFailedCount, 1)
	}
	if outcome == nil {
		return
	}
	m.importRows.WithLabelValues("accepted").Add(float64(len(outcome.Users)))
	m.importRows.WithLabelValues("rejected").Add(float64(outcome.Rejected))
	m.importRows.WithLabelValues("skipped").Add(float64(outcome.Skipped))
	m.importWarnings.Add(float64(len(outcome.Warnings)))
	atomic.AddUint64(&m.rowsAccepted, uint64(len(outcome.Users)))
	atomic.AddUint64(&m.rowsRejected, uint64(outcome.Rejected))
}

// Snapshot returns aggregated counters for the JSON metrics endpoint.
func (m *MetricsService) Snapshot() models.ImportMetricsSnapshot {
	if m == nil {
		return models.ImportMetricsSnapshot{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return models.ImportMetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		PreviewsTotal:            atomic.LoadUint64(&m.previewCount),
		PreviewsFailed:           atomic.LoadUint64(&m.previewFailedCount),
		RowsAccepted:             atomic.LoadUint64(&m.rowsAccepted),
		RowsRejected:             atomic.LoadUint64(&m.rowsRejected),
		Goroutines:               runtime.NumGoroutine(),
	}
}
