package img

import (
	"strconv"
	"strings"

	"github.com/vango-dev/vimg/pkg/render"
)

// noscriptAttr writes name="value" followed by a space. Optional attributes
// are skipped when empty so the markup stays valid (no width="").
func noscriptAttr(b *strings.Builder, name, value string, required bool) {
	if value == "" && !required {
		return
	}
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(render.EscapeAttr(value))
	b.WriteString(`" `)
}

func itoa(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// NoscriptImg returns the <img> markup shown when scripting is disabled.
// src and alt are always present; every other attribute only when set.
func NoscriptImg(p Props) string {
	var b strings.Builder
	b.WriteString("<img ")
	noscriptAttr(&b, "loading", string(p.Loading), false)
	noscriptAttr(&b, "width", itoa(p.Width), false)
	noscriptAttr(&b, "height", itoa(p.Height), false)
	noscriptAttr(&b, "sizes", p.Sizes, false)
	noscriptAttr(&b, "srcset", p.SrcSet, false)
	noscriptAttr(&b, "src", p.Src(), true)
	noscriptAttr(&b, "alt", p.Alt, true)
	noscriptAttr(&b, "title", p.Title, false)
	noscriptAttr(&b, "crossorigin", p.CrossOrigin, false)
	noscriptAttr(&b, "draggable", p.Draggable, false)

	position := p.ObjectPosition
	if position == "" {
		position = "center"
	}
	b.WriteString(`style="position:absolute;top:0;left:0;opacity:1;width:100%;height:100%;object-fit:cover;object-position:`)
	b.WriteString(render.EscapeAttr(position))
	b.WriteString(`"/>`)
	return b.String()
}

// NoscriptPicture returns the <picture> markup shown when scripting is
// disabled: one <source> per picture source followed by the fallback <img>.
func NoscriptPicture(p Props, pic PictureImage) string {
	var b strings.Builder
	b.WriteString("<picture>")
	for _, s := range pic.Sources {
		b.WriteString("<source ")
		noscriptAttr(&b, "srcset", s.SrcSet, true)
		noscriptAttr(&b, "media", s.Media, false)
		noscriptAttr(&b, "type", s.Type, false)
		noscriptAttr(&b, "sizes", s.Sizes, false)
		b.WriteString(">")
	}
	p.Variant = SimpleImage{Src: pic.Fallback}
	b.WriteString(NoscriptImg(p))
	b.WriteString("</picture>")
	return b.String()
}

// NoscriptMarkup returns the no-script markup for the props' variant.
func NoscriptMarkup(p Props) string {
	if pic, ok := p.Variant.(PictureImage); ok {
		return NoscriptPicture(p, pic)
	}
	return NoscriptImg(p)
}
