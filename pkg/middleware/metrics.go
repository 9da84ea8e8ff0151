// Package middleware provides HTTP observability middleware for hosts
// embedding the overlay playground: Prometheus metrics and OpenTelemetry
// tracing, plus recording helpers for popup lifecycle instrumentation.
package middleware

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "popup").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "popup",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus instruments.
type metrics struct {
	opensTotal          prometheus.Counter
	closesTotal         prometheus.Counter
	redundantCalls      *prometheus.CounterVec
	timersCancelled     prometheus.Counter
	openPopups          prometheus.Gauge
	activeSessions      prometheus.Gauge
	transitionDurations prometheus.Histogram
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
}

// globalMetrics is the singleton instance, created on first Metrics call.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus instruments.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		opensTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "opens_total",
			Help:        "Total number of accepted popup open requests",
			ConstLabels: config.ConstLabels,
		}),

		closesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "closes_total",
			Help:        "Total number of accepted popup close requests",
			ConstLabels: config.ConstLabels,
		}),

		redundantCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "redundant_calls_total",
			Help:        "Open/close calls that were no-ops because the popup was already in that state",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		timersCancelled: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "close_timers_cancelled_total",
			Help:        "Pending close timers cancelled by a reopen",
			ConstLabels: config.ConstLabels,
		}),

		openPopups: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "open_popups",
			Help:        "Number of popups currently logically open",
			ConstLabels: config.ConstLabels,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of active playground WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		transitionDurations: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transition_duration_seconds",
			Help:        "Configured transition durations of accepted open/close requests",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{0.05, 0.1, 0.2, 0.3, 0.5, 1, 2},
		}),

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_requests_total",
			Help:        "Total HTTP requests served by the playground",
			ConstLabels: config.ConstLabels,
		}, []string{"path", "method", "status"}),

		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request handling duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"path"}),
	}
}

// statusRecorder captures the response status for metric labels.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Hijack delegates to the wrapped writer so protocol upgrades (the
// playground's WebSocket endpoint) work through the middleware chain.
func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer %T does not support hijacking", w.ResponseWriter)
	}
	return h.Hijack()
}

// Flush delegates streaming writes to the wrapped writer.
func (w *statusRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Metrics creates middleware that collects Prometheus metrics for every
// HTTP request, and initializes the popup lifecycle instruments used by
// the Record* helpers.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Metrics(middleware.WithNamespace("myapp")))
//	r.Handle("/metrics", promhttp.Handler())
func Metrics(opts ...MetricsOption) func(http.Handler) http.Handler {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "" {
				path = "/"
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rec, r)

			m.httpDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
			m.httpRequests.WithLabelValues(path, r.Method, strconv.Itoa(rec.status)).Inc()
		})
	}
}

// =============================================================================
// Lifecycle Recording Functions
// =============================================================================

// RecordOpen records an accepted open with its configured transition
// duration.
func RecordOpen(transitionDuration time.Duration) {
	if globalMetrics != nil {
		globalMetrics.opensTotal.Inc()
		globalMetrics.openPopups.Inc()
		globalMetrics.transitionDurations.Observe(transitionDuration.Seconds())
	}
}

// RecordClose records an accepted close with its configured transition
// duration.
func RecordClose(transitionDuration time.Duration) {
	if globalMetrics != nil {
		globalMetrics.closesTotal.Inc()
		globalMetrics.openPopups.Dec()
		globalMetrics.transitionDurations.Observe(transitionDuration.Seconds())
	}
}

// RecordRedundant records a no-op open or close call.
func RecordRedundant(op string) {
	if globalMetrics != nil {
		globalMetrics.redundantCalls.WithLabelValues(op).Inc()
	}
}

// RecordTimerCancelled records a pending close timer cancelled by a
// reopen.
func RecordTimerCancelled() {
	if globalMetrics != nil {
		globalMetrics.timersCancelled.Inc()
	}
}

// RecordSessionStart records a new playground session.
func RecordSessionStart() {
	if globalMetrics != nil {
		globalMetrics.activeSessions.Inc()
	}
}

// RecordSessionEnd records a playground session ending.
func RecordSessionEnd() {
	if globalMetrics != nil {
		globalMetrics.activeSessions.Dec()
	}
}
