// Package render provides server-side rendering (SSR) of vdom trees.
//
// The render package converts VNode trees into HTML strings or streams:
//
//   - HTML5 compliant element rendering
//   - Text and attribute escaping (XSS prevention)
//   - Void element handling (img, source, etc.)
//   - Required attributes on img (src and alt are emitted even when empty)
//   - Client hook configuration as data-hook attributes
//   - Hydration IDs for elements with event handlers
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Hydration IDs
//
// Elements with event handlers receive a data-hid attribute. The handlers
// are collected during rendering and can be retrieved via GetHandlers().
//
// # Security
//
// All text content is escaped by default. Raw HTML can be inserted using
// KindRaw nodes and should only carry trusted, already-escaped content.
package render
