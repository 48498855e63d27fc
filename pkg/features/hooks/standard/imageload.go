package standard

import (
	"github.com/vango-dev/vimg/pkg/features/hooks"
	"github.com/vango-dev/vimg/pkg/vdom"
)

// ImageLoadHook is the client hook name for image load reporting.
const ImageLoadHook = "ImageLoad"

// Events emitted by the ImageLoad hook.
const (
	LoadEvent  = "load"
	ErrorEvent = "error"
)

// ImageLoad creates an ImageLoad hook attribute for an <img>. On the load
// and error events the client reports the element's decode state. An image
// that is already complete when the hook mounts reports load immediately.
func ImageLoad() vdom.Attr {
	return hooks.Hook(ImageLoadHook, nil)
}

// LoadReport is the element state sent with a load event.
type LoadReport struct {
	Complete      bool
	NaturalWidth  int
	NaturalHeight int
	CurrentSrc    string
}

// ParseLoad decodes a load hook event.
func ParseLoad(e hooks.HookEvent) LoadReport {
	return LoadReport{
		Complete:      e.Bool("complete"),
		NaturalWidth:  e.Int("naturalWidth"),
		NaturalHeight: e.Int("naturalHeight"),
		CurrentSrc:    e.String("currentSrc"),
	}
}
