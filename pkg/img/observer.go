package img

import "sync"

// DefaultRootMargin is the default proximity margin in pixels.
const DefaultRootMargin = 200

// IntersectionEntry is one intersection observation for an element.
type IntersectionEntry struct {
	Target            string
	IsIntersecting    bool
	IntersectionRatio float64
}

// nearViewport reports whether the entry counts as visible. Some browsers
// omit IsIntersecting, so a non-zero ratio also counts.
func (e IntersectionEntry) nearViewport() bool {
	return e.IsIntersecting || e.IntersectionRatio > 0
}

// Observer tracks elements waiting to come near the viewport and runs each
// element's callback at most once.
type Observer struct {
	enabled    bool
	rootMargin int
	metrics    *Metrics

	mu        sync.Mutex
	listeners map[string]func()
}

// NewObserver creates an Observer. When enabled is false (the host cannot
// report intersections) Observe is a no-op.
func NewObserver(enabled bool, rootMargin int) *Observer {
	if rootMargin < 0 {
		rootMargin = DefaultRootMargin
	}
	return &Observer{
		enabled:    enabled,
		rootMargin: rootMargin,
		listeners:  make(map[string]func()),
	}
}

// Enabled reports whether the observer can watch elements.
func (o *Observer) Enabled() bool { return o.enabled }

// RootMargin returns the proximity margin in pixels.
func (o *Observer) RootMargin() int { return o.rootMargin }

// Observe registers onVisible for the element id. It returns false when the
// observer is disabled or the element is already registered; the existing
// registration is kept in the latter case.
func (o *Observer) Observe(id string, onVisible func()) bool {
	if !o.enabled || onVisible == nil {
		return false
	}

	o.mu.Lock()
	if _, exists := o.listeners[id]; exists {
		o.mu.Unlock()
		return false
	}
	o.listeners[id] = onVisible
	o.mu.Unlock()

	o.metrics.addObserved(1)
	return true
}

// Unobserve cancels the registration for id. Safe to call for elements that
// were never registered or already fired.
func (o *Observer) Unobserve(id string) {
	o.mu.Lock()
	_, ok := o.listeners[id]
	delete(o.listeners, id)
	o.mu.Unlock()

	if ok {
		o.metrics.addObserved(-1)
	}
}

// Observing reports whether id is currently registered.
func (o *Observer) Observing(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.listeners[id]
	return ok
}

// Len returns the number of registered elements.
func (o *Observer) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.listeners)
}

// Dispatch processes intersection entries. For each entry near the viewport
// whose target is registered, the target is deregistered and its callback
// runs once. Callbacks run after the registry lock is released and in entry
// order. It returns the number of callbacks run.
func (o *Observer) Dispatch(entries ...IntersectionEntry) int {
	var fire []func()

	o.mu.Lock()
	for _, entry := range entries {
		if !entry.nearViewport() {
			continue
		}
		cb, ok := o.listeners[entry.Target]
		if !ok {
			continue
		}
		delete(o.listeners, entry.Target)
		fire = append(fire, cb)
	}
	o.mu.Unlock()

	o.metrics.addObserved(-len(fire))
	for _, cb := range fire {
		o.metrics.recordVisible()
		cb()
	}
	return len(fire)
}
