package standard

import (
	"github.com/vango-dev/vimg/pkg/features/hooks"
	"github.com/vango-dev/vimg/pkg/vdom"
)

// CapabilitiesHook is the client hook name for browser feature reports.
const CapabilitiesHook = "Capabilities"

// CapabilitiesEvent is emitted once when the hook mounts.
const CapabilitiesEvent = "capabilities"

// ReportCapabilities creates a Capabilities hook attribute. It belongs on one
// page-level element; the client checks for loading="lazy" and
// IntersectionObserver support and reports both once.
func ReportCapabilities() vdom.Attr {
	return hooks.Hook(CapabilitiesHook, nil)
}

// Capabilities are the browser features reported by the Capabilities hook.
type Capabilities struct {
	NativeLazy   bool
	Intersection bool
}

// ParseCapabilities decodes a capabilities hook event.
func ParseCapabilities(e hooks.HookEvent) Capabilities {
	return Capabilities{
		NativeLazy:   e.Bool("nativeLazy"),
		Intersection: e.Bool("intersection"),
	}
}
