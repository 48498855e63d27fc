package img

import (
	"sync"

	"github.com/vango-dev/vimg/internal/errors"
	"github.com/vango-dev/vimg/pkg/features/hooks/standard"
)

// Instance is one mounted image component. It implements vdom.Component.
//
// Lifecycle: NewImage yields the provisional state used for the first
// render. After the first render is mounted the host calls Commit. Client
// hook events are delivered through HandleIntersect, HandleLoad and
// HandleError (the rendered tree wires them). Unmount cancels any pending
// visibility registration.
type Instance struct {
	svc   *Service
	id    string
	props Props

	mu        sync.Mutex
	machine   *Machine
	observing bool
	unmounted bool
	onChange  func(LoadState)
}

// NewImage creates an image instance. It returns an E002 error when the
// props are invalid.
func (s *Service) NewImage(p Props) (*Instance, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p = p.withDefaults(s.config)

	seen := s.cache.Has(p.CacheKey())
	if seen {
		s.metrics.recordCacheHit()
	}

	return &Instance{
		svc:     s,
		id:      s.newID(),
		props:   p,
		machine: NewMachine(p.Critical(), seen),
	}, nil
}

// ID returns the element identity used by the visibility observer.
func (i *Instance) ID() string { return i.id }

// Props returns the props with defaults applied.
func (i *Instance) Props() Props { return i.props }

// State returns the current load state.
func (i *Instance) State() LoadState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.machine.State()
}

// Visible reports whether the image element is attached.
func (i *Instance) Visible() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.machine.Visible()
}

// SeenBefore reports whether the source was in the load cache at creation.
func (i *Instance) SeenBefore() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.machine.Conditions().SeenBefore
}

// Observing reports whether the instance waits for the visibility observer.
func (i *Instance) Observing() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.observing
}

// OnChange sets a function called after every state change, outside any
// lock. Hosts use it to schedule a re-render.
func (i *Instance) OnChange(fn func(LoadState)) {
	i.mu.Lock()
	i.onChange = fn
	i.mu.Unlock()
}

func (i *Instance) notify(state LoadState) {
	i.mu.Lock()
	fn := i.onChange
	i.mu.Unlock()
	if fn != nil {
		fn(state)
	}
}

// Commit confirms the environment once the first render is mounted. The
// instance either registers with the visibility observer or starts loading.
func (i *Instance) Commit() {
	features := i.svc.Features()

	i.mu.Lock()
	if i.unmounted || i.machine.Committed() {
		i.mu.Unlock()
		return
	}
	before := i.machine.State()
	observe := i.machine.Commit(features)
	i.observing = observe
	after := i.machine.State()
	i.mu.Unlock()

	if observe {
		if i.svc.Observer().Observe(i.id, i.reveal) {
			i.svc.logger.Debug("image observed", "id", i.id, "src", i.props.Src())
			return
		}
		// Registration refused: load without waiting.
		i.reveal()
		return
	}
	if after != before {
		i.svc.logger.Debug("image committed", "id", i.id, "state", after.String())
		i.notify(after)
	}
}

// reveal is the visibility observer callback.
func (i *Instance) reveal() {
	i.mu.Lock()
	i.observing = false
	if i.unmounted {
		i.mu.Unlock()
		return
	}
	changed := i.machine.Reveal()
	i.mu.Unlock()

	if changed {
		i.svc.logger.Debug("image visible", "id", i.id, "src", i.props.Src())
		i.notify(Load)
	}
}

// HandleIntersect delivers a client intersection report for this instance.
// An empty target is taken to be this instance.
func (i *Instance) HandleIntersect(e standard.IntersectEntry) bool {
	target := e.Target
	if target == "" {
		target = i.id
	}
	return i.svc.Observer().Dispatch(IntersectionEntry{
		Target:            target,
		IsIntersecting:    e.IsIntersecting,
		IntersectionRatio: e.IntersectionRatio,
	}) > 0
}

// HandleLoad applies a load report from the image element. A complete
// report with zero natural width is treated as a failure. It returns
// whether the state changed.
func (i *Instance) HandleLoad(r standard.LoadReport) bool {
	if i.props.OnLoad != nil {
		i.props.OnLoad(r)
	}

	i.mu.Lock()
	if i.unmounted {
		i.mu.Unlock()
		return false
	}
	state, changed := i.machine.Complete(r.Complete, r.NaturalWidth)
	i.mu.Unlock()

	if !changed {
		return false
	}
	if state == Loaded {
		key := r.CurrentSrc
		if key == "" {
			key = i.props.CacheKey()
		}
		i.svc.cache.MarkLoaded(key)
		i.svc.metrics.recordLoad(OutcomeLoaded)
		i.svc.logger.Debug("image loaded", "id", i.id, "currentSrc", key)
	} else {
		i.failed(r.CurrentSrc, "complete without natural size")
	}
	i.notify(state)
	return true
}

// HandleError applies an error signal from the image element.
func (i *Instance) HandleError() bool {
	if i.props.OnError != nil {
		i.props.OnError()
	}

	i.mu.Lock()
	if i.unmounted {
		i.mu.Unlock()
		return false
	}
	changed := i.machine.Fail()
	i.mu.Unlock()

	if !changed {
		return false
	}
	i.failed("", "error event")
	i.notify(Error)
	return true
}

func (i *Instance) failed(currentSrc, detail string) {
	i.svc.metrics.recordLoad(OutcomeError)
	err := errors.New("E001").WithDetail(detail)
	i.svc.logger.Warn("image failed to load",
		"id", i.id,
		"src", i.props.Src(),
		"currentSrc", currentSrc,
		"error", err)
}

// Unmount tears the instance down. Pending visibility callbacks are
// cancelled and later signals are ignored. Safe to call more than once.
func (i *Instance) Unmount() {
	i.mu.Lock()
	if i.unmounted {
		i.mu.Unlock()
		return
	}
	i.unmounted = true
	observing := i.observing
	i.observing = false
	i.mu.Unlock()

	if observing {
		i.svc.Observer().Unobserve(i.id)
	}
}
