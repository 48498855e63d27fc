package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/vimg/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty indents nested block elements. Meant for the CLI and tests.
	Pretty bool

	// Indent is one level of indentation in pretty mode. Default "  ".
	Indent string
}

// Renderer serializes VNode trees to HTML. Elements carrying event handlers
// get a data-hid attribute and their handlers are collected under
// "<hid>_<prop>" so a client runtime can route events back.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	config   RendererConfig
	hid      int
	handlers map[string]any
}

// NewRenderer creates a Renderer.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config, handlers: make(map[string]any)}
}

// RenderToString renders node to a string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams node to w. The first write error stops rendering.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	hw := &htmlWriter{w: w}
	if err := r.node(hw, node, 0); err != nil {
		return err
	}
	return hw.err
}

// GetHandlers returns the handlers collected so far, keyed "h1_onload".
func (r *Renderer) GetHandlers() map[string]any {
	return r.handlers
}

// Reset clears hydration IDs and collected handlers.
func (r *Renderer) Reset() {
	r.hid = 0
	r.handlers = make(map[string]any)
}

// htmlWriter remembers the first write error so the tree walk can ignore
// errors until the end.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) Write(p []byte) (int, error) {
	if hw.err != nil {
		return 0, hw.err
	}
	var n int
	n, hw.err = hw.w.Write(p)
	return n, hw.err
}

func (hw *htmlWriter) str(s string) {
	if hw.err == nil {
		_, hw.err = io.WriteString(hw.w, s)
	}
}

func (hw *htmlWriter) attr(name, value string) {
	hw.str(" " + name + `="` + EscapeAttr(value) + `"`)
}

func (r *Renderer) newline(hw *htmlWriter) {
	if r.config.Pretty {
		hw.str("\n")
	}
}

func (r *Renderer) indent(hw *htmlWriter, depth int) {
	if r.config.Pretty && depth > 0 {
		hw.str(strings.Repeat(r.config.Indent, depth))
	}
}

func (r *Renderer) node(hw *htmlWriter, n *vdom.VNode, depth int) error {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case vdom.KindElement:
		return r.element(hw, n, depth)
	case vdom.KindText:
		hw.str(EscapeHTML(n.Text))
	case vdom.KindRaw:
		hw.str(n.Text)
	case vdom.KindFragment:
		return r.children(hw, n.Children, depth)
	case vdom.KindComponent:
		if n.Comp != nil {
			return r.node(hw, n.Comp.Render(), depth)
		}
	default:
		return fmt.Errorf("render: unknown node kind %d", n.Kind)
	}
	return nil
}

func (r *Renderer) children(hw *htmlWriter, children []*vdom.VNode, depth int) error {
	for _, c := range children {
		if err := r.node(hw, c, depth); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) element(hw *htmlWriter, n *vdom.VNode, depth int) error {
	r.indent(hw, depth)
	hw.str("<" + n.Tag)
	events, err := r.attributes(hw, n)
	if err != nil {
		return err
	}
	if len(events) > 0 {
		r.hid++
		hid := "h" + strconv.Itoa(r.hid)
		hw.attr("data-hid", hid)
		for _, key := range events {
			r.handlers[hid+"_"+key] = n.Props[key]
		}
	}
	hw.str(">")

	if isVoidElement(n.Tag) {
		r.newline(hw)
		return nil
	}

	block := r.config.Pretty && len(n.Children) > 0 && !isInlineElement(n.Tag)
	if block {
		hw.str("\n")
	}
	if err := r.children(hw, n.Children, depth+1); err != nil {
		return err
	}
	if block {
		r.indent(hw, depth)
	}
	hw.str("</" + n.Tag + ">")
	r.newline(hw)
	return nil
}

// attributes writes the attributes of n in key order and returns the
// event handler props, also in key order. Each handler gets a
// data-on-<event> marker.
func (r *Renderer) attributes(hw *htmlWriter, n *vdom.VNode) ([]string, error) {
	keys := make([]string, 0, len(n.Props))
	for key := range n.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var events []string
	for _, key := range keys {
		value := n.Props[key]
		switch {
		case key == HookProp:
			hc, ok := value.(HookConfig)
			if !ok {
				return nil, fmt.Errorf("render: %s prop has type %T", HookProp, value)
			}
			if err := renderHookConfig(hw, hc); err != nil {
				return nil, err
			}
		case strings.HasPrefix(key, "_"):
		case strings.HasPrefix(key, "on") && isEventHandler(value):
			events = append(events, key)
		case isBooleanAttr(key):
			if b, ok := value.(bool); ok {
				if b {
					hw.str(" " + key)
				}
				continue
			}
			if s := attrToString(value); s != "" {
				hw.attr(key, s)
			}
		default:
			s := attrToString(value)
			if s == "" && !alwaysRendered(n.Tag, key) {
				continue
			}
			hw.attr(key, s)
		}
	}
	for _, key := range events {
		hw.attr("data-on-"+strings.ToLower(key[2:]), "true")
	}
	return events, nil
}

// isEventHandler reports whether a prop value is a callable handler.
func isEventHandler(value any) bool {
	switch value.(type) {
	case nil:
		return false
	case func(), func(any), vdom.EventHandler:
		return true
	default:
		return strings.HasPrefix(fmt.Sprintf("%T", value), "func")
	}
}

// attrToString converts an attribute value to its HTML form. Zero ints are
// treated as unset.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case vdom.Style:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int:
		if v == 0 {
			return ""
		}
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
