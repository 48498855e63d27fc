package standard

import (
	"fmt"

	"github.com/vango-dev/vimg/pkg/features/hooks"
	"github.com/vango-dev/vimg/pkg/vdom"
)

// IntersectHook is the client hook name for viewport intersection reports.
const IntersectHook = "Intersect"

// IntersectEvent is the event name emitted by the Intersect hook.
const IntersectEvent = "intersect"

// IntersectConfig configures the Intersect hook.
type IntersectConfig struct {
	// RootMargin is the proximity margin in pixels around the viewport.
	RootMargin int
}

// Intersect creates an Intersect hook attribute. The client creates one
// IntersectionObserver per distinct root margin and reports every entry for
// the element until the server stops rendering the hook.
func Intersect(config IntersectConfig) vdom.Attr {
	return hooks.Hook(IntersectHook, map[string]any{
		"rootMargin": fmt.Sprintf("%dpx", config.RootMargin),
	})
}

// IntersectEntry is one intersection observation reported by the client.
type IntersectEntry struct {
	Target            string
	IsIntersecting    bool
	IntersectionRatio float64
}

// ParseIntersect decodes an intersect hook event.
// Browsers that omit isIntersecting leave it false; the ratio is still reported.
func ParseIntersect(e hooks.HookEvent) IntersectEntry {
	return IntersectEntry{
		Target:            e.String("target"),
		IsIntersecting:    e.Bool("isIntersecting"),
		IntersectionRatio: e.Float("intersectionRatio"),
	}
}
