package img

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Load outcomes recorded by Metrics.
const (
	OutcomeLoaded = "loaded"
	OutcomeError  = "error"
)

// Metrics holds the Prometheus collectors for image instances. Create one per
// registry and share it between services with WithMetrics. A nil *Metrics
// records nothing.
type Metrics struct {
	loads     *prometheus.CounterVec
	cacheHits prometheus.Counter
	visible   prometheus.Counter
	observed  prometheus.Gauge
}

// NewMetrics registers the image collectors on reg under the "vimg"
// namespace. A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		loads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vimg",
			Name:      "image_loads_total",
			Help:      "Image load results by outcome",
		}, []string{"outcome"}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vimg",
			Name:      "cache_hits_total",
			Help:      "Images mounted with a source already in the load cache",
		}),

		visible: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vimg",
			Name:      "visibility_callbacks_total",
			Help:      "Visibility observer callbacks run",
		}),

		observed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "vimg",
			Name:      "observed_elements",
			Help:      "Elements waiting for the visibility observer",
		}),
	}
}

func (m *Metrics) recordLoad(outcome string) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(outcome).Inc()
}

func (m *Metrics) recordCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) recordVisible() {
	if m == nil {
		return
	}
	m.visible.Inc()
}

func (m *Metrics) addObserved(delta int) {
	if m == nil || delta == 0 {
		return
	}
	m.observed.Add(float64(delta))
}
