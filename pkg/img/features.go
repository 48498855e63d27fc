package img

import (
	"sync"

	"github.com/vango-dev/vimg/pkg/features/hooks"
	"github.com/vango-dev/vimg/pkg/features/hooks/standard"
)

// FeatureFlags are the browser capabilities that drive deferral decisions.
type FeatureFlags struct {
	// NativeLazy reports support for <img loading="lazy">.
	NativeLazy bool
	// Intersection reports support for viewport intersection notification.
	Intersection bool
}

// Environment reports the capabilities of the host that displays the image.
type Environment interface {
	NativeLazySupported() bool
	IntersectionSupported() bool
}

// Capabilities is a static Environment.
type Capabilities struct {
	NativeLazy   bool
	Intersection bool
}

// NativeLazySupported implements Environment.
func (c Capabilities) NativeLazySupported() bool { return c.NativeLazy }

// IntersectionSupported implements Environment.
func (c Capabilities) IntersectionSupported() bool { return c.Intersection }

// ServerEnvironment is the environment of a render with no browser attached.
var ServerEnvironment Environment = Capabilities{}

// EnvironmentFromHook builds an Environment from a client capabilities event.
func EnvironmentFromHook(e hooks.HookEvent) Capabilities {
	return Capabilities(standard.ParseCapabilities(e))
}

// DetectFeatures reads the capabilities of env. A nil env is treated as the
// server environment.
func DetectFeatures(env Environment) FeatureFlags {
	if env == nil {
		return FeatureFlags{}
	}
	return FeatureFlags{
		NativeLazy:   env.NativeLazySupported(),
		Intersection: env.IntersectionSupported(),
	}
}

// Detector memoizes DetectFeatures for its lifetime.
type Detector struct {
	env   Environment
	once  sync.Once
	flags FeatureFlags
}

// NewDetector creates a Detector for env.
func NewDetector(env Environment) *Detector {
	return &Detector{env: env}
}

// Flags returns the capabilities, reading the environment on first call only.
func (d *Detector) Flags() FeatureFlags {
	d.once.Do(func() {
		d.flags = DetectFeatures(d.env)
	})
	return d.flags
}
