package img

// LoadState is the load lifecycle of one image instance.
type LoadState uint8

const (
	// Idle: the image is deferred and not attached to the page.
	Idle LoadState = iota
	// Load: the image is attached and the browser is fetching it.
	Load
	// Loaded: the image decoded with non-zero dimensions.
	Loaded
	// Error: the image failed to load or decoded as zero-sized.
	Error
)

// String returns the lowercase name of the state.
func (s LoadState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Load:
		return "load"
	case Loaded:
		return "loaded"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s LoadState) Terminal() bool {
	return s == Loaded || s == Error
}

// Conditions decide how an instance loads. Critical and SeenBefore are
// fixed at creation; Features are confirmed at Commit.
type Conditions struct {
	// Critical images opt out of deferral (loading="eager").
	Critical bool
	// SeenBefore is true when the source is already in the load cache.
	SeenBefore bool
	// Features are the host capabilities.
	Features FeatureFlags
}

// UseObserver reports whether the instance waits for the visibility
// observer before loading. Native lazy loading makes the observer
// unnecessary, and critical or cached images never wait.
func (c Conditions) UseObserver() bool {
	return !c.Features.NativeLazy && c.Features.Intersection && !c.Critical && !c.SeenBefore
}

// Machine is the per-instance load state machine.
//
// Construction yields the provisional state used for the first render. It
// depends only on Critical and SeenBefore, so a server render and the first
// client render agree. Commit moves to the environment-confirmed state.
//
// Machine is not safe for concurrent use; Instance serializes access.
type Machine struct {
	cond      Conditions
	state     LoadState
	committed bool
}

// NewMachine creates a Machine in its provisional state.
func NewMachine(critical, seenBefore bool) *Machine {
	state := Idle
	if critical || seenBefore {
		state = Load
	}
	return &Machine{
		cond:  Conditions{Critical: critical, SeenBefore: seenBefore},
		state: state,
	}
}

// Conditions returns the creation-time conditions.
func (m *Machine) Conditions() Conditions { return m.cond }

// State returns the current state.
func (m *Machine) State() LoadState { return m.state }

// Committed reports whether Commit has run.
func (m *Machine) Committed() bool { return m.committed }

// Visible reports whether the image element should be attached.
func (m *Machine) Visible() bool {
	return m.state != Idle || m.cond.SeenBefore
}

// Commit confirms the environment after the first render is mounted. It
// returns true when the caller must register with the visibility observer.
// Without an observer the image becomes visible immediately, whether or not
// the host supports native lazy loading. Only the first call has an effect.
func (m *Machine) Commit(features FeatureFlags) (observe bool) {
	if m.committed {
		return false
	}
	m.committed = true
	m.cond.Features = features
	if m.state != Idle {
		return false
	}
	if m.cond.UseObserver() {
		return true
	}
	m.state = Load
	return false
}

// Reveal moves Idle to Load when the observer reports the element near the
// viewport. It is rejected before Commit and outside Idle.
func (m *Machine) Reveal() bool {
	if !m.committed || m.state != Idle {
		return false
	}
	m.state = Load
	return true
}

// Complete applies a load signal. A complete image with zero natural width
// is broken and moves to Error. Signals outside Load are ignored.
func (m *Machine) Complete(complete bool, naturalWidth int) (LoadState, bool) {
	if m.state != Load {
		return m.state, false
	}
	if complete && naturalWidth > 0 {
		m.state = Loaded
	} else {
		m.state = Error
	}
	return m.state, true
}

// Fail applies an error signal. Signals outside Load are ignored.
func (m *Machine) Fail() bool {
	if m.state != Load {
		return false
	}
	m.state = Error
	return true
}
