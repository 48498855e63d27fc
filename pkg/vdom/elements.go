package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement builds an element. Each argument is an Attr, a []Attr, an
// EventHandler, or a child accepted by Fragment; nil is skipped so callers
// can pass conditional parts inline.
func createElement(tag string, args []any) *VNode {
	node := &VNode{Kind: KindElement, Tag: tag, Props: make(Props)}
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case Attr:
			node.setAttr(v)
		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}
		case EventHandler:
			node.Props[v.Event] = v.Handler
		default:
			node.Children = appendChild(node.Children, v)
		}
	}
	return node
}

// setAttr applies a single attribute. Later attributes override earlier ones,
// except style, where a later Style is merged over an earlier Style.
func (v *VNode) setAttr(a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			v.Key = s
		}
		return
	}
	if a.Key == "style" {
		if next, ok := a.Value.(Style); ok {
			if prev, ok := v.Props["style"].(Style); ok {
				v.Props["style"] = prev.Merge(next)
				return
			}
		}
	}
	v.Props[a.Key] = a.Value
}

// Key sets the reconciliation key.
func Key(key string) Attr { return attr("key", key) }

// Text content elements

func Div(args ...any) *VNode  { return createElement("div", args) }
func P(args ...any) *VNode    { return createElement("p", args) }
func Span(args ...any) *VNode { return createElement("span", args) }

// Media elements

func Img(args ...any) *VNode     { return createElement("img", args) }
func Picture(args ...any) *VNode { return createElement("picture", args) }
func Source(args ...any) *VNode  { return createElement("source", args) }

// Scripting elements

func Noscript(args ...any) *VNode { return createElement("noscript", args) }
