// Package vdom provides the virtual DOM used by vimg components.
//
// Components build a VNode tree on the server. The tree is rendered to HTML
// for the first paint by package render and re-rendered whenever a client
// hook reports an event that changes component state.
//
// # Core Types
//
// VNode is the fundamental building block representing elements, text,
// fragments, components, and raw HTML. Props holds attributes and event
// handlers. Attr and EventHandler are used to build Props. Style is an
// ordered list of inline CSS declarations; a later Style attribute on the
// same element is merged over the earlier one.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(StyleOf(Style{}.Set("position", "relative")),
//	    Img(Src("/a.jpg"), Alt("A"), OnLoad(handler)),
//	)
package vdom
