package middleware

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus middleware.
type MetricsConfig struct {
	// Namespace prefixes every metric. Default "vimg".
	Namespace string

	// Subsystem is placed between namespace and name. Default "http".
	Subsystem string

	// ConstLabels are added to every series.
	ConstLabels prometheus.Labels

	// Buckets for the duration histogram. Default prometheus.DefBuckets.
	Buckets []float64

	// Registry receives the collectors. Default prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registerer.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vimg",
		Subsystem: "http",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type httpMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
	bytes    *prometheus.CounterVec
}

func newHTTPMetrics(c MetricsConfig) *httpMetrics {
	factory := promauto.With(c.Registry)
	return &httpMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   c.Namespace,
			Subsystem:   c.Subsystem,
			Name:        "requests_total",
			Help:        "HTTP requests by method, route and status.",
			ConstLabels: c.ConstLabels,
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   c.Namespace,
			Subsystem:   c.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			ConstLabels: c.ConstLabels,
			Buckets:     c.Buckets,
		}, []string{"method", "route"}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   c.Namespace,
			Subsystem:   c.Subsystem,
			Name:        "requests_in_flight",
			Help:        "HTTP requests currently being served.",
			ConstLabels: c.ConstLabels,
		}),
		bytes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   c.Namespace,
			Subsystem:   c.Subsystem,
			Name:        "response_bytes_total",
			Help:        "Response body bytes by route.",
			ConstLabels: c.ConstLabels,
		}, []string{"route"}),
	}
}

// Prometheus returns middleware recording request count, duration, bytes
// and in-flight requests. It registers its collectors immediately, so call
// it once per registry.
//
// Metrics (default namespace and subsystem):
//   - vimg_http_requests_total{method,route,status}
//   - vimg_http_request_duration_seconds{method,route}
//   - vimg_http_requests_in_flight
//   - vimg_http_response_bytes_total{route}
func Prometheus(opts ...MetricsOption) func(http.Handler) http.Handler {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	m := newHTTPMetrics(config)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.inFlight.Inc()
			defer m.inFlight.Dec()

			ww := wrap(w, r)
			start := time.Now()
			next.ServeHTTP(ww, r)

			route := routePattern(r)
			m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			m.requests.WithLabelValues(r.Method, route, statusLabel(status(ww))).Inc()
			m.bytes.WithLabelValues(route).Add(float64(ww.BytesWritten()))
		})
	}
}
