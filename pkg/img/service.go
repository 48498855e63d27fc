package img

import (
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/vimg/pkg/features/hooks"
)

// Config holds the presentation defaults of a Service.
type Config struct {
	// RootMargin is the observer proximity margin in pixels.
	// Default: 200
	RootMargin int

	// FadeIn is the fade-in duration of an image loaded for the first time.
	// Default: 500ms
	FadeIn time.Duration

	// FadeInSeen is the fade-in duration of an image found in the load cache.
	// Default: 200ms
	FadeInSeen time.Duration

	// PlaceholderFade is the fade-out duration of the placeholder.
	// Default: 200ms
	PlaceholderFade time.Duration

	// PlaceholderDelay delays the placeholder fade-out so it overlaps the
	// image fade-in.
	// Default: 500ms
	PlaceholderDelay time.Duration

	// ErrorMessage is the default error panel text.
	// Default: "Image not found"
	ErrorMessage string

	// ObjectPosition is the default object-position.
	// Default: "center center"
	ObjectPosition string
}

// DefaultConfig returns the default Config.
func DefaultConfig() Config {
	return Config{
		RootMargin:       DefaultRootMargin,
		FadeIn:           500 * time.Millisecond,
		FadeInSeen:       200 * time.Millisecond,
		PlaceholderFade:  200 * time.Millisecond,
		PlaceholderDelay: 500 * time.Millisecond,
		ErrorMessage:     "Image not found",
		ObjectPosition:   "center center",
	}
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the presentation defaults. Zero fields keep their default.
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		def := s.config
		if cfg.RootMargin > 0 {
			def.RootMargin = cfg.RootMargin
		}
		if cfg.FadeIn > 0 {
			def.FadeIn = cfg.FadeIn
		}
		if cfg.FadeInSeen > 0 {
			def.FadeInSeen = cfg.FadeInSeen
		}
		if cfg.PlaceholderFade > 0 {
			def.PlaceholderFade = cfg.PlaceholderFade
		}
		if cfg.PlaceholderDelay > 0 {
			def.PlaceholderDelay = cfg.PlaceholderDelay
		}
		if cfg.ErrorMessage != "" {
			def.ErrorMessage = cfg.ErrorMessage
		}
		if cfg.ObjectPosition != "" {
			def.ObjectPosition = cfg.ObjectPosition
		}
		s.config = def
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records instance activity on m.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithCache shares a load cache between services, for example between the
// server render of a page and the live session that follows it.
func WithCache(c *LoadCache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// Service owns the state shared by the images of one client session: the
// feature flags, the visibility observer and the load cache. It is safe for
// concurrent use.
type Service struct {
	config  Config
	logger  *slog.Logger
	metrics *Metrics
	cache   *LoadCache

	mu       sync.Mutex
	env      Environment
	detector *Detector
	observer *Observer

	nextID atomic.Uint64
}

// NewService creates a Service. env may be nil when the client has not
// reported its capabilities yet; see SetEnvironment.
func NewService(env Environment, opts ...Option) *Service {
	s := &Service{
		config: DefaultConfig(),
		logger: slog.Default(),
		cache:  NewLoadCache(),
		env:    env,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the presentation defaults.
func (s *Service) Config() Config { return s.config }

// Logger returns the service logger.
func (s *Service) Logger() *slog.Logger { return s.logger }

// Cache returns the load cache.
func (s *Service) Cache() *LoadCache { return s.cache }

// SetEnvironment sets the host environment. It has no effect once the
// feature flags have been read and returns false in that case.
func (s *Service) SetEnvironment(env Environment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detector != nil {
		return false
	}
	s.env = env
	return true
}

// HandleCapabilities sets the environment from a client capabilities event.
func (s *Service) HandleCapabilities(e hooks.HookEvent) bool {
	return s.SetEnvironment(EnvironmentFromHook(e))
}

// resolve fixes the environment on first use.
func (s *Service) resolve() (*Detector, *Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detector == nil {
		s.detector = NewDetector(s.env)
		s.observer = NewObserver(s.detector.Flags().Intersection, s.config.RootMargin)
		s.observer.metrics = s.metrics
		s.logger.Debug("image features detected",
			"nativeLazy", s.detector.Flags().NativeLazy,
			"intersection", s.detector.Flags().Intersection)
	}
	return s.detector, s.observer
}

// Features returns the feature flags, fixing the environment.
func (s *Service) Features() FeatureFlags {
	d, _ := s.resolve()
	return d.Flags()
}

// Observer returns the visibility observer, fixing the environment.
func (s *Service) Observer() *Observer {
	_, o := s.resolve()
	return o
}

func (s *Service) newID() string {
	return "vimg-" + strconv.FormatUint(s.nextID.Add(1), 10)
}
