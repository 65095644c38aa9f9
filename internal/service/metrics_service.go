package service

import (
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ArchivalRunsTotal   *prometheus.CounterVec
	RecordsTransitioned *prometheus.CounterVec
	Goroutines          prometheus.GaugeFunc
}

// NewMetrics builds and registers the application collectors on a fresh
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "drrmo_http_requests_total",
		Help: "HTTP requests processed, by method, path and status.",
	}, []string{"method", "path", "status"})

	m.HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "drrmo_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	m.ArchivalRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "drrmo_archival_runs_total",
		Help: "Archive and restore runs, by operation and outcome status.",
	}, []string{"operation", "status"})

	m.RecordsTransitioned = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "drrmo_records_transitioned_total",
		Help: "Records moved between active and archived state, by operation and record kind.",
	}, []string{"operation", "kind"})

	m.Goroutines = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "drrmo_goroutines",
		Help: "Current number of goroutines.",
	}, func() float64 { return float64(runtime.NumGoroutine()) })

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ArchivalRunsTotal,
		m.RecordsTransitioned,
		m.Goroutines,
	)
	return m
}

// Registry exposes the underlying registry for the metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records one processed HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveArchivalRun records the outcome of one archive or restore run.
func (m *Metrics) ObserveArchivalRun(operation string, result *ArchivalResult) {
	if m == nil || result == nil {
		return
	}
	m.ArchivalRunsTotal.WithLabelValues(operation, string(result.Status)).Inc()
	if result.Applied == nil {
		return
	}
	for kind, count := range result.Applied.Counts {
		if count > 0 {
			m.RecordsTransitioned.WithLabelValues(operation, string(kind)).Add(float64(count))
		}
	}
}
