package render

import "github.com/vango-dev/vimg/pkg/vdom"

// Tag tables used while serializing. Void elements come from vdom so the
// builder and the renderer agree on which tags take children.

// inlineTags keep their children on one line in pretty output.
var inlineTags = set("a", "b", "code", "em", "i", "small", "span", "strong", "sub", "sup", "time")

// booleanAttrs render as a bare name when true and are omitted when false.
var booleanAttrs = set("async", "defer", "disabled", "hidden", "ismap", "nomodule")

// requiredAttrs are written even when empty. An <img> without src or alt is
// invalid markup.
var requiredAttrs = map[string]map[string]bool{
	"img": set("src", "alt"),
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func isVoidElement(tag string) bool   { return vdom.IsVoidElement(tag) }
func isInlineElement(tag string) bool { return inlineTags[tag] }
func isBooleanAttr(name string) bool  { return booleanAttrs[name] }

func alwaysRendered(tag, name string) bool {
	return requiredAttrs[tag][name]
}
