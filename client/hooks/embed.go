package clienthooks

import _ "embed"

// HooksJS defines the Capabilities, Intersect and ImageLoad client hooks as
// window.VimgHooks.
//
// It is served by `vimg serve` at "/_vimg/hooks.js".
//
//go:embed hooks.js
var HooksJS []byte

// Path is the URL path HooksJS is served at.
const Path = "/_vimg/hooks.js"
