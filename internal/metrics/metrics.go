// Package metrics exposes prometheus collectors for fetches, exports and sessions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeOK     = "ok"
	OutcomeError  = "error"
	OutcomeNoPath = "no_path"
)

// Metrics owns a private registry so tests can build as many instances as they need.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	fetches        *prometheus.CounterVec
	fetchDuration  *prometheus.HistogramVec
	staleFetches   prometheus.Counter
	exports        *prometheus.CounterVec
	exportRows     prometheus.Histogram
	activeSessions prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_fetches_total",
			Help: "Record fetches by chart type and outcome.",
		}, []string{"chart_type", "outcome"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inventory_fetch_duration_seconds",
			Help:    "Document store query latency by chart type.",
			Buckets: prometheus.DefBuckets,
		}, []string{"chart_type"}),
		staleFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_stale_fetches_total",
			Help: "Fetch results discarded because a newer fetch was issued.",
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_exports_total",
			Help: "Spreadsheet exports by chart type and outcome.",
		}, []string{"chart_type", "outcome"}),
		exportRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "inventory_export_rows",
			Help:    "Data rows per successful export.",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000},
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inventory_active_sessions",
			Help: "Open list sessions.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.fetches,
		m.fetchDuration,
		m.staleFetches,
		m.exports,
		m.exportRows,
		m.activeSessions,
	)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveFetch(chartType, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(chartType, outcome).Inc()
	if outcome != OutcomeNoPath {
		m.fetchDuration.WithLabelValues(chartType).Observe(d.Seconds())
	}
}

func (m *Metrics) StaleFetch() {
	if m == nil {
		return
	}
	m.staleFetches.Inc()
}

func (m *Metrics) ObserveExport(chartType, outcome string, rows int) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(chartType, outcome).Inc()
	if outcome == OutcomeOK {
		m.exportRows.Observe(float64(rows))
	}
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}
