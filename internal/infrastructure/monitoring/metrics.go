package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Audit record kinds used as metric labels.
const (
	AuditRecordOperation = "operation"
	AuditRecordBusiness  = "business"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Operation metrics
	OperationsTotal *prometheus.CounterVec

	// Audit write metrics
	AuditWritesTotal   *prometheus.CounterVec
	AuditWriteFailures *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a metrics collector on the default Prometheus registry
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates a metrics collector on a specific registry.
// Tests use a fresh registry to avoid duplicate registration panics.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "soma_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "soma_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "soma_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "soma_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		// Operation metrics
		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "soma_operations_total",
				Help: "Total number of computed operations",
			},
			[]string{"type"},
		),

		// Audit write metrics
		AuditWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "soma_audit_writes_total",
				Help: "Total number of attempted audit record writes",
			},
			[]string{"kind"},
		),
		AuditWriteFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "soma_audit_write_failures_total",
				Help: "Total number of failed audit record writes",
			},
			[]string{"kind"},
		),

		// System metrics
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "soma_uptime_seconds",
				Help: "Backend uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
}

// IncOperations increments the computed-operations counter
func (m *Metrics) IncOperations(opType string) {
	m.OperationsTotal.WithLabelValues(opType).Inc()
}

// RecordAuditWrite records one attempted audit write and, if it failed,
// one failure
func (m *Metrics) RecordAuditWrite(kind string, ok bool) {
	m.AuditWritesTotal.WithLabelValues(kind).Inc()
	if !ok {
		m.AuditWriteFailures.WithLabelValues(kind).Inc()
	}
}
