package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/vimg/pkg/vdom"
)

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("Image not found"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Image not found" {
		t.Errorf("got %q, want %q", html, "Image not found")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("<script>alert('xss')</script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderElement(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Class("container"),
		vdom.Span(vdom.Text("Title")),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div class="container"><span>Title</span></div>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderVoidElements(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{"img", vdom.Img(vdom.Src("a.jpg"), vdom.Alt("A")), `<img alt="A" src="a.jpg">`},
		{"source", vdom.Source(vdom.Srcset("a.webp"), vdom.Media("(min-width:600px)")), `<source media="(min-width:600px)" srcset="a.webp">`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer.Reset()
			got, err := renderer.RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderRequiredImgAttributes(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Img(vdom.Src(""), vdom.Alt(""), vdom.TitleAttr(""), vdom.Width(0)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != `<img alt="" src="">` {
		t.Errorf("got %q", html)
	}

	// Only img carries required attributes.
	html, _ = renderer.RenderToString(vdom.Source(vdom.Src("")))
	if html != `<source>` {
		t.Errorf("got %q, want <source>", html)
	}
}

func TestRenderStyle(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.StyleOf(vdom.Style{}.Set("position", "relative").Set("width", vdom.Px(300))))
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != `<div style="position:relative;width:300px"></div>` {
		t.Errorf("got %q", html)
	}
}

func TestRenderHydrationID(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	onLoad := func() {}
	node := vdom.Div(vdom.Img(vdom.Src("a.jpg"), vdom.Alt(""), vdom.OnLoad(onLoad)))
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Count(html, "data-hid") != 1 {
		t.Errorf("only the interactive img needs a hid, got %q", html)
	}
	if extractAttrValue(t, html, "data-hid") != "h1" {
		t.Errorf("unexpected hid in %q", html)
	}
	if !strings.Contains(html, `data-on-load="true"`) {
		t.Errorf("missing load marker in %q", html)
	}
	if _, ok := renderer.GetHandlers()["h1_onload"]; !ok {
		t.Errorf("handler not registered: %v", renderer.GetHandlers())
	}
}

func TestRenderHookConfig(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Attr{Key: HookProp, Value: HookConfig{
		Name:   "Intersect",
		Config: map[string]any{"rootMargin": "200px"},
	}})
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extractAttrValue(t, html, "data-hook") != "Intersect" {
		t.Errorf("got %q", html)
	}
	if got := extractAttrValue(t, html, "data-hook-config"); got != `{&quot;rootMargin&quot;:&quot;200px&quot;}` {
		t.Errorf("data-hook-config = %q", got)
	}
}

func TestRenderHookConfigWrongType(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Attr{Key: HookProp, Value: "Intersect"})
	if _, err := renderer.RenderToString(node); err == nil {
		t.Error("expected error for malformed hook prop")
	}
}

func TestRenderHookConfigMarshalError(t *testing.T) {
	var buf bytes.Buffer
	err := renderHookConfig(&buf, HookConfig{Name: "Bad", Config: map[string]any{"ch": make(chan int)}})
	if err == nil {
		t.Fatal("expected marshal error")
	}
}

func TestRenderRaw(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Noscript(vdom.Raw(`<img src="a.jpg" alt="">`))
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != `<noscript><img src="a.jpg" alt=""></noscript>` {
		t.Errorf("got %q", html)
	}
}

func TestRenderPretty(t *testing.T) {
	renderer := NewRenderer(RendererConfig{Pretty: true})

	html, err := renderer.RenderToString(vdom.Div(vdom.Img(vdom.Src("a"), vdom.Alt("b"))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "\n  <img") {
		t.Errorf("expected indented child, got %q", html)
	}
}

func TestRenderNilNode(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "" {
		t.Errorf("got %q, want empty", html)
	}
}

func TestRenderComponent(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	comp := vdom.Func(func() *vdom.VNode { return vdom.Span(vdom.Text("inner")) })
	html, err := renderer.RenderToString(vdom.Div(comp))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<div><span>inner</span></div>" {
		t.Errorf("got %q", html)
	}
}

func TestRenderFragment(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Fragment(vdom.Span(), vdom.Fragment(vdom.P())))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<span></span><p></p>" {
		t.Errorf("got %q", html)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	if _, err := renderer.RenderToString(&vdom.VNode{Kind: vdom.VKind(99)}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestRendererReset(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	renderer.RenderToString(vdom.Img(vdom.OnLoad(func() {})))
	renderer.Reset()
	if len(renderer.GetHandlers()) != 0 {
		t.Error("handlers should be cleared")
	}
	html, _ := renderer.RenderToString(vdom.Img(vdom.OnLoad(func() {})))
	if extractAttrValue(t, html, "data-hid") != "h1" {
		t.Errorf("hid counter not reset: %q", html)
	}
}

func TestRenderAttributeEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Img(vdom.Src("a.jpg?x=1&y=2"), vdom.Alt(`"quoted"`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extractAttrValue(t, html, "src") != "a.jpg?x=1&amp;y=2" {
		t.Errorf("src not escaped: %q", html)
	}
	if extractAttrValue(t, html, "alt") != "&quot;quoted&quot;" {
		t.Errorf("alt not escaped: %q", html)
	}
}

func TestRenderBooleanAttributes(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Div(
		vdom.Attr{Key: "hidden", Value: true},
		vdom.Attr{Key: "disabled", Value: false},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != `<div hidden></div>` {
		t.Errorf("got %q", html)
	}
}

type failingWriter struct{ writes int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errors.New("disk full")
}

func TestRenderStopsAtFirstWriteError(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	w := &failingWriter{}
	err := renderer.RenderToWriter(w, vdom.Div(vdom.P(vdom.Text("a")), vdom.P(vdom.Text("b"))))
	if err == nil || err.Error() != "disk full" {
		t.Fatalf("err = %v, want disk full", err)
	}
	if w.writes != 1 {
		t.Errorf("writes after failure = %d, want 1", w.writes)
	}
}
