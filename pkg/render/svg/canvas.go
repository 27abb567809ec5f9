// Package svg provides a [tab.Surface] that records drawing calls and
// serializes them as SVG.
//
// A tab sheet uses two canvases, one for the string-lines and one for the
// notes and highlight. [Compose] stacks them into a single document:
//
//	base, overlay := svg.NewCanvas(), svg.NewCanvas()
//	b := tab.NewBuilder(base, overlay, tab.Options{})
//	b.AddNote(1, 3, "5")
//	out := svg.Compose(tab.ReferenceWidth, b.Height(), base, overlay)
//
// [tab.Surface]: github.com/matzehuels/tabsmith/pkg/tab#Surface
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/tabsmith/pkg/tab"
)

type opKind uint8

const (
	opRect opKind = iota
	opCircle
	opText
)

// Glyph metrics relative to font size, used to estimate text bounds.
const (
	charWidth = 0.55
	ascent    = 0.7
	descent   = 0.2
)

// eps absorbs floating point noise when testing containment.
const eps = 1e-6

type op struct {
	kind       opKind
	x, y, w, h float64
	r          float64
	color      tab.Color
	alpha      float64
	text       string
	size       float64
	align      tab.Align
}

func (o op) bounds() (x, y, w, h float64) {
	switch o.kind {
	case opCircle:
		return o.x - o.r, o.y - o.r, 2 * o.r, 2 * o.r
	case opText:
		tw := float64(len([]rune(o.text))) * o.size * charWidth
		left := o.x
		switch o.align {
		case tab.AlignCenter:
			left -= tw / 2
		case tab.AlignRight:
			left -= tw
		}
		return left, o.y - ascent*o.size, tw, (ascent + descent) * o.size
	default:
		return o.x, o.y, o.w, o.h
	}
}

func (o op) inside(x, y, w, h float64) bool {
	ox, oy, ow, oh := o.bounds()
	return ox >= x-eps && oy >= y-eps && ox+ow <= x+w+eps && oy+oh <= y+h+eps
}

// Canvas is a retained display list implementing tab.Surface.
type Canvas struct {
	ops []op
}

// NewCanvas returns an empty canvas.
func NewCanvas() *Canvas { return &Canvas{} }

func (c *Canvas) FillRect(x, y, w, h float64, color tab.Color, alpha float64, clearFirst bool) {
	if clearFirst {
		c.ClearRect(x, y, w, h)
	}
	c.ops = append(c.ops, op{kind: opRect, x: x, y: y, w: w, h: h, color: color, alpha: alpha})
}

// ClearRect drops every recorded operation whose bounds lie inside the
// region. Partially covered operations are kept.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	kept := c.ops[:0]
	for _, o := range c.ops {
		if !o.inside(x, y, w, h) {
			kept = append(kept, o)
		}
	}
	clear(c.ops[len(kept):])
	c.ops = kept
}

func (c *Canvas) DrawCircle(x, y, r float64, color tab.Color) {
	c.ops = append(c.ops, op{kind: opCircle, x: x, y: y, r: r, color: color, alpha: 1})
}

func (c *Canvas) DrawText(text string, x, y, fontSize float64, color tab.Color, align tab.Align) {
	c.ops = append(c.ops, op{kind: opText, x: x, y: y, text: text, size: fontSize, color: color, align: align, alpha: 1})
}

func (c *Canvas) Clear() { c.ops = nil }

// Len returns the number of recorded operations.
func (c *Canvas) Len() int { return len(c.ops) }

// Render writes the recorded operations as SVG elements.
func (c *Canvas) Render(buf *bytes.Buffer) {
	for _, o := range c.ops {
		switch o.kind {
		case opRect:
			fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"%s/>`+"\n",
				num(o.x), num(o.y), num(o.w), num(o.h), escape(string(o.color)), opacity(o.alpha))
		case opCircle:
			fmt.Fprintf(buf, `  <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
				num(o.x), num(o.y), num(o.r), escape(string(o.color)))
		case opText:
			fmt.Fprintf(buf, `  <text x="%s" y="%s" font-family="monospace" font-size="%s" fill="%s" text-anchor="%s">%s</text>`+"\n",
				num(o.x), num(o.y), num(o.size), escape(string(o.color)), o.align, escape(o.text))
		}
	}
}

// Compose stacks layers bottom to top into a standalone SVG document of the
// given size.
func Compose(width, height float64, layers ...*Canvas) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	for i, l := range layers {
		if l == nil {
			continue
		}
		fmt.Fprintf(&buf, "  <g id=\"layer-%d\">\n", i)
		l.Render(&buf)
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func opacity(a float64) string {
	if a >= 1 {
		return ""
	}
	return ` fill-opacity="` + num(a) + `"`
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

var _ tab.Surface = (*Canvas)(nil)
