package vdom

import (
	"fmt"
	"strings"
)

// Decl is a single CSS declaration.
type Decl struct {
	Property string
	Value    string
}

// Style is an ordered list of inline CSS declarations.
// Declarations keep insertion order so rendered output is stable.
type Style []Decl

// Set adds or replaces a declaration. Empty values are ignored.
func (s Style) Set(property, value string) Style {
	if value == "" {
		return s
	}
	for i := range s {
		if s[i].Property == property {
			out := make(Style, len(s))
			copy(out, s)
			out[i].Value = value
			return out
		}
	}
	return append(s, Decl{Property: property, Value: value})
}

// Get returns the value of a declaration, or "".
func (s Style) Get(property string) string {
	for _, d := range s {
		if d.Property == property {
			return d.Value
		}
	}
	return ""
}

// Merge returns s with every declaration of other applied on top.
func (s Style) Merge(other Style) Style {
	out := make(Style, len(s), len(s)+len(other))
	copy(out, s)
	for _, d := range other {
		out = out.Set(d.Property, d.Value)
	}
	return out
}

// String renders the declarations as an inline style attribute value.
func (s Style) String() string {
	var b strings.Builder
	for i, d := range s {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(d.Property)
		b.WriteByte(':')
		b.WriteString(d.Value)
	}
	return b.String()
}

// Px formats an integer pixel length. Zero yields "".
func Px(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%dpx", n)
}

// StyleOf sets the style attribute from a Style value.
func StyleOf(s Style) Attr { return attr("style", s) }
