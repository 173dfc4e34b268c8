package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "task_service"

// Repository counts the write-side work of the batched repository.
type Repository struct {
	Flushes   *prometheus.CounterVec
	Rows      *prometheus.CounterVec
	ChunkSize *prometheus.HistogramVec
}

func NewRepository(reg prometheus.Registerer) *Repository {
	m := &Repository{
		Flushes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "repository_flushes_total",
				Help:      "Number of unit-of-work flushes issued against the store",
			},
			[]string{"operation"},
		),
		Rows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "repository_rows_total",
				Help:      "Rows inserted, updated or deleted by the repository",
			},
			[]string{"operation"},
		),
		ChunkSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "repository_chunk_size",
				Help:      "Rows carried by a single flush",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"operation"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Flushes, m.Rows, m.ChunkSize)
	}
	return m
}

func (m *Repository) Flushed(operation string, rows int) {
	if m == nil {
		return
	}
	m.Flushes.WithLabelValues(operation).Inc()
	m.ChunkSize.WithLabelValues(operation).Observe(float64(rows))
}

func (m *Repository) Affected(operation string, rows int64) {
	if m == nil {
		return
	}
	m.Rows.WithLabelValues(operation).Add(float64(rows))
}

// HTTP tracks requests served by the API.
type HTTP struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Active   prometheus.Gauge
}

func NewHTTP(reg prometheus.Registerer) *HTTP {
	m := &HTTP{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "code"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of HTTP request durations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Active: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_active_requests",
				Help:      "Number of in-flight HTTP requests",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Requests, m.Duration, m.Active)
	}
	return m
}
