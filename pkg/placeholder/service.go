package placeholder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vango-dev/vimg/pkg/placeholder"

// Metrics holds the Prometheus collectors of a Service.
type Metrics struct {
	duration *prometheus.HistogramVec
	memoHits prometheus.Counter
}

// NewMetrics registers the placeholder collectors on reg under the "vimg"
// namespace. A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vimg",
			Subsystem: "placeholder",
			Name:      "generate_duration_seconds",
			Help:      "Placeholder generation duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"outcome"}),

		memoHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vimg",
			Subsystem: "placeholder",
			Name:      "memo_hits_total",
			Help:      "Placeholders served from memory",
		}),
	}
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithMetrics records generation metrics on m.
func WithMetrics(m *Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTracer sets the tracer. Default: the global provider's tracer.
func WithTracer(tracer trace.Tracer) ServiceOption {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// Service generates placeholders for keys of a Source and keeps them in
// memory. Safe for concurrent use.
type Service struct {
	source  Source
	gen     *Generator
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *Metrics

	mu   sync.RWMutex
	memo map[string]*Placeholder
}

// NewService creates a Service.
func NewService(source Source, gen *Generator, opts ...ServiceOption) *Service {
	if gen == nil {
		gen = NewGenerator(Options{})
	}
	s := &Service{
		source: source,
		gen:    gen,
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
		memo:   make(map[string]*Placeholder),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the placeholder for key, generating it on first use.
// Failures are not remembered.
func (s *Service) Get(ctx context.Context, key string) (*Placeholder, error) {
	key, err := CleanKey(key)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	p, ok := s.memo[key]
	s.mu.RUnlock()
	if ok {
		if s.metrics != nil {
			s.metrics.memoHits.Inc()
		}
		return p, nil
	}

	p, err = s.generate(ctx, key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if existing, ok := s.memo[key]; ok {
		p = existing
	} else {
		s.memo[key] = p
	}
	s.mu.Unlock()
	return p, nil
}

func (s *Service) generate(ctx context.Context, key string) (p *Placeholder, err error) {
	ctx, span := s.tracer.Start(ctx, "placeholder.generate",
		trace.WithAttributes(attribute.String("vimg.placeholder.key", key)))
	start := time.Now()

	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.logger.Warn("placeholder generation failed", "key", key, "error", err)
		} else {
			span.SetAttributes(
				attribute.Int("vimg.placeholder.width", p.Width),
				attribute.Int("vimg.placeholder.height", p.Height),
			)
			span.SetStatus(codes.Ok, "")
			s.logger.Debug("placeholder generated", "key", key, "bytes", len(p.JPEG))
		}
		if s.metrics != nil {
			s.metrics.duration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		}
		span.End()
	}()

	rc, err := s.source.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	p, err = s.gen.Generate(ctx, rc)
	if err != nil {
		return nil, err
	}
	p.Key = key
	return p, nil
}

// Forget drops the remembered placeholder for key.
func (s *Service) Forget(key string) {
	if key, err := CleanKey(key); err == nil {
		s.mu.Lock()
		delete(s.memo, key)
		s.mu.Unlock()
	}
}

// Len returns the number of remembered placeholders.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.memo)
}
