// Package hooks provides client-side hooks for vimg components.
//
// A hook is a small piece of browser code attached to an element. It observes
// something the server cannot see (viewport intersection, image decode
// results, browser capabilities) and reports it back as a HookEvent.
//
// Usage:
//
//	Div(
//	    Hook("Intersect", map[string]any{"rootMargin": "200px"}),
//	    OnEvent("intersect", func(e HookEvent) { ... }),
//	)
package hooks
