package img

import (
	"strconv"
	"time"

	"github.com/vango-dev/vimg/pkg/features/hooks"
	"github.com/vango-dev/vimg/pkg/features/hooks/standard"
	"github.com/vango-dev/vimg/pkg/vdom"
)

// snapshot is the instance state read once per render.
type snapshot struct {
	state      LoadState
	visible    bool
	observing  bool
	seenBefore bool
}

func (i *Instance) snapshot() snapshot {
	i.mu.Lock()
	defer i.mu.Unlock()
	return snapshot{
		state:      i.machine.State(),
		visible:    i.machine.Visible(),
		observing:  i.observing,
		seenBefore: i.machine.Conditions().SeenBefore,
	}
}

// cssDuration formats d in milliseconds, or "0s".
func cssDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}

func opacity(on bool) string {
	if on {
		return "1"
	}
	return "0"
}

// coverStyle positions a layer over the whole container.
func coverStyle(objectPosition string) vdom.Style {
	return vdom.Style{}.
		Set("position", "absolute").
		Set("top", "0px").
		Set("left", "0px").
		Set("width", "100%").
		Set("height", "100%").
		Set("object-fit", "cover").
		Set("object-position", objectPosition)
}

// Render implements vdom.Component.
func (i *Instance) Render() *vdom.VNode {
	snap := i.snapshot()
	p := i.props
	cfg := i.svc.config

	container := vdom.Style{}.
		Set("position", "relative").
		Set("overflow", "hidden").
		Set("background-color", p.BackgroundColor)
	if p.Fill {
		container = container.Set("width", "100%").Set("height", "100%")
	} else {
		container = container.Set("width", vdom.Px(p.Width)).Set("height", vdom.Px(p.Height))
	}

	var status *vdom.VNode
	if p.Children != nil {
		status = p.Children(snap.state)
	}

	args := []any{
		vdom.ID(i.id),
		vdom.Data("state", snap.state.String()),
		vdom.StyleOf(container),
	}
	if snap.observing {
		args = append(args,
			standard.Intersect(standard.IntersectConfig{RootMargin: cfg.RootMargin}),
			hooks.OnEvent(standard.IntersectEvent, func(e hooks.HookEvent) {
				i.HandleIntersect(standard.ParseIntersect(e))
			}),
		)
	}
	args = append(args,
		i.renderPlaceholder(snap),
		vdom.When(snap.visible, func() *vdom.VNode { return i.renderImage(snap) }),
		vdom.When(snap.state == Error && p.Children == nil, i.renderError),
		status,
		vdom.When(!p.Critical(), func() *vdom.VNode {
			return vdom.Noscript(vdom.Raw(NoscriptMarkup(p)))
		}),
	)
	return vdom.Div(args...)
}

func (i *Instance) renderPlaceholder(snap snapshot) *vdom.VNode {
	p := i.props
	if p.PlaceholderSrc == "" {
		return nil
	}
	loaded := snap.state == Loaded

	alt := p.Alt
	if loaded {
		alt = ""
	}

	cfg := i.svc.config
	style := coverStyle(p.ObjectPosition).
		Set("opacity", opacity(!loaded)).
		Set("transition", "opacity "+cssDuration(cfg.PlaceholderFade)+" ease "+cssDuration(cfg.PlaceholderDelay))

	return vdom.Img(
		vdom.AriaHidden(true),
		vdom.Src(p.PlaceholderSrc),
		vdom.Alt(alt),
		vdom.StyleOf(style),
	)
}

// renderImage returns the primary <img>, wrapped in a <picture> for the
// picture variant.
func (i *Instance) renderImage(snap snapshot) *vdom.VNode {
	p := i.props
	cfg := i.svc.config

	fade := cfg.FadeIn
	if snap.seenBefore {
		fade = cfg.FadeInSeen
	}
	style := coverStyle(p.ObjectPosition).
		Set("opacity", opacity(snap.state == Loaded)).
		Set("transition", "opacity "+cssDuration(fade)+" ease 0s")

	img := vdom.Img(
		vdom.Src(p.Src()),
		vdom.Alt(p.Alt),
		vdom.Loading(string(p.Loading)),
		vdom.Width(p.Width),
		vdom.Height(p.Height),
		vdom.Srcset(p.SrcSet),
		vdom.SizesAttr(p.Sizes),
		vdom.Crossorigin(p.CrossOrigin),
		vdom.TitleAttr(p.Title),
		vdom.DraggableAttr(p.Draggable),
		vdom.StyleOf(style),
		standard.ImageLoad(),
		hooks.OnEvent(standard.LoadEvent, func(e hooks.HookEvent) {
			i.HandleLoad(standard.ParseLoad(e))
		}),
		hooks.OnEvent(standard.ErrorEvent, func(hooks.HookEvent) {
			i.HandleError()
		}),
	)

	pic, ok := p.Variant.(PictureImage)
	if !ok {
		return img
	}
	sources := vdom.Range(pic.Sources, func(s PictureSource, _ int) *vdom.VNode {
		return vdom.Source(
			vdom.Srcset(s.SrcSet),
			vdom.Media(s.Media),
			vdom.Type(s.Type),
			vdom.SizesAttr(s.Sizes),
		)
	})
	return vdom.Picture(sources, img)
}

func (i *Instance) renderError() *vdom.VNode {
	p := i.props

	style := vdom.Style{}.
		Set("position", "absolute").
		Set("width", "100%").
		Set("height", "100%").
		Set("display", "flex").
		Set("align-items", "center").
		Set("justify-content", "center").
		Set("background-color", "#fdfdfd").
		Set("box-shadow", "inset 0px 0px 1px 1px #F5F5F5")

	var content any = p.ErrorMessage
	if p.ErrorContent != nil {
		content = p.ErrorContent
	}

	return vdom.Div(
		vdom.Role("alert"),
		vdom.StyleOf(style),
		p.ErrorAttrs,
		content,
	)
}
