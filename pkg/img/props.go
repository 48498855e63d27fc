package img

import (
	"github.com/vango-dev/vimg/internal/errors"
	"github.com/vango-dev/vimg/pkg/features/hooks/standard"
	"github.com/vango-dev/vimg/pkg/vdom"
)

// Loading is the loading attribute of the image.
type Loading string

const (
	LoadingLazy  Loading = "lazy"
	LoadingEager Loading = "eager"
	LoadingAuto  Loading = "auto"
)

// Variant selects between a single image and a responsive picture.
type Variant interface {
	// src is the URL placed on the <img> element.
	src() string
	isVariant()
}

// SimpleImage renders a single <img>.
type SimpleImage struct {
	Src string
}

func (v SimpleImage) src() string { return v.Src }
func (SimpleImage) isVariant()    {}

// PictureSource is one <source> of a responsive picture.
type PictureSource struct {
	SrcSet string
	Media  string
	Type   string
	Sizes  string
}

// PictureImage renders a <picture> with ordered sources and a fallback <img>.
type PictureImage struct {
	Sources  []PictureSource
	Fallback string
}

func (v PictureImage) src() string { return v.Fallback }
func (PictureImage) isVariant()    {}

// Props configures one image component.
type Props struct {
	// Variant is SimpleImage or PictureImage.
	Variant Variant

	// Alt is the alternative text. Required by HTML; rendered even if empty.
	Alt string

	// PlaceholderSrc is a small blurred image shown until the image loads.
	PlaceholderSrc string

	// BackgroundColor fills the container behind the placeholder.
	BackgroundColor string

	// Loading defaults to LoadingLazy. LoadingEager marks the image critical.
	Loading Loading

	// ObjectPosition defaults to the service config ("center center").
	ObjectPosition string

	// ErrorMessage is the text of the built-in error panel.
	ErrorMessage string

	// ErrorContent replaces ErrorMessage in the error panel.
	ErrorContent *vdom.VNode

	// ErrorAttrs are applied to the error panel after the defaults. A
	// vdom.Style is merged over the default style; a StyleAttr string
	// replaces it.
	ErrorAttrs []vdom.Attr

	// Fill makes the container fill its parent instead of taking Width and
	// Height.
	Fill bool

	// CurrentSrc is a browser-resolved source reported by an earlier mount
	// of this image. When set it keys the load cache instead of the
	// configured source.
	CurrentSrc string

	// Children renders status-dependent content. When set, the built-in
	// error panel is not rendered.
	Children func(LoadState) *vdom.VNode

	// OnLoad and OnError are called for every load and error report, before
	// the state changes.
	OnLoad  func(standard.LoadReport)
	OnError func()

	// Pass-through <img> attributes.
	Width       int
	Height      int
	SrcSet      string
	Sizes       string
	CrossOrigin string
	Title       string
	Draggable   string
}

// Validate checks the variant.
func (p Props) Validate() error {
	switch v := p.Variant.(type) {
	case nil:
		return errors.New("E002").WithDetail("variant is required")
	case PictureImage:
		if len(v.Sources) == 0 {
			return errors.New("E002").WithDetail("picture has no sources")
		}
		if v.Fallback == "" {
			return errors.New("E002").WithDetail("picture has no fallback")
		}
	}
	return nil
}

// Critical reports whether the image opts out of deferral.
func (p Props) Critical() bool {
	return p.Loading == LoadingEager
}

// Src returns the URL placed on the <img> element.
func (p Props) Src() string {
	if p.Variant == nil {
		return ""
	}
	return p.Variant.src()
}

// CacheKey returns the load cache key for the image.
func (p Props) CacheKey() string {
	if p.CurrentSrc != "" {
		return p.CurrentSrc
	}
	return p.Src()
}

// withDefaults fills unset options from cfg.
func (p Props) withDefaults(cfg Config) Props {
	if p.Loading == "" {
		p.Loading = LoadingLazy
	}
	if p.ObjectPosition == "" {
		p.ObjectPosition = cfg.ObjectPosition
	}
	if p.ErrorMessage == "" {
		p.ErrorMessage = cfg.ErrorMessage
	}
	return p
}
