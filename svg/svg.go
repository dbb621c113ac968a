// Package svg is a minimal, write-only SVG document model: just enough
// shapes to draw a transit map, serialized deterministically.
//
// Shapes are a sum type (Circle | Polyline | Text), not a class
// hierarchy: the document is a slice of that sum, and rendering is a
// type switch. Shared visual attributes (stroke, fill, stroke width,
// caps, joins) live in Attributes, embedded by every variant.
package svg

import (
	"fmt"
	"io"
	"strings"
)

// Color is a discriminated union: none, a named/hex string, rgb or
// rgba. The zero value is None.
type Color struct {
	kind colorKind
	name string
	r, g, b uint8
	a       float64
}

type colorKind int

const (
	ColorNone colorKind = iota
	ColorNamed
	ColorRGB
	ColorRGBA
)

// Kind reports which case of the union is populated.
func (c Color) Kind() colorKind { return c.kind }

func NewNamedColor(name string) Color { return Color{kind: ColorNamed, name: name} }
func NewRGBColor(r, g, b uint8) Color { return Color{kind: ColorRGB, r: r, g: g, b: b} }
func NewRGBAColor(r, g, b uint8, a float64) Color {
	return Color{kind: ColorRGBA, r: r, g: g, b: b, a: a}
}

// Components exposes the union's fields, for callers (e.g. the
// snapshot codec) that need to inspect rather than render it.
func (c Color) Components() (name string, r, g, b uint8, a float64) {
	return c.name, c.r, c.g, c.b, c.a
}

func (c Color) String() string {
	switch c.kind {
	case ColorNone:
		return "none"
	case ColorNamed:
		return c.name
	case ColorRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.r, c.g, c.b)
	case ColorRGBA:
		return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.r, c.g, c.b, trimFloat(c.a))
	default:
		return "none"
	}
}

// Point is a canvas-space coordinate, already projected.
type Point struct {
	X, Y float64
}

// Attributes are the visual properties shared by every shape.
type Attributes struct {
	Fill            Color
	Stroke          Color
	StrokeWidth     float64
	HasStrokeWidth  bool
	StrokeLineCap   string
	StrokeLineJoin  string
}

func (a Attributes) writeTo(b *strings.Builder) {
	fmt.Fprintf(b, " fill=\"%s\"", a.Fill.String())
	if a.Stroke.kind != ColorNone {
		fmt.Fprintf(b, " stroke=\"%s\"", a.Stroke.String())
	}
	if a.HasStrokeWidth {
		fmt.Fprintf(b, " stroke-width=\"%s\"", trimFloat(a.StrokeWidth))
	}
	if a.StrokeLineCap != "" {
		fmt.Fprintf(b, " stroke-linecap=\"%s\"", a.StrokeLineCap)
	}
	if a.StrokeLineJoin != "" {
		fmt.Fprintf(b, " stroke-linejoin=\"%s\"", a.StrokeLineJoin)
	}
}

// Circle is a <circle> element.
type Circle struct {
	Attributes
	Center Point
	Radius float64
}

// Polyline is a <polyline> element.
type Polyline struct {
	Attributes
	Points []Point
}

// Text is a <text> element.
type Text struct {
	Attributes
	Position   Point
	Offset     Point
	FontSize   int
	FontFamily string
	FontWeight string
	Content    string
}

// Element is the shape sum type. Only *this* package's three shapes
// implement it.
type Element interface {
	writeTo(b *strings.Builder)
}

func (c Circle) writeTo(b *strings.Builder) {
	b.WriteString("<circle")
	fmt.Fprintf(b, " cx=\"%s\" cy=\"%s\" r=\"%s\"", trimFloat(c.Center.X), trimFloat(c.Center.Y), trimFloat(c.Radius))
	c.Attributes.writeTo(b)
	b.WriteString("/>")
}

func (p Polyline) writeTo(b *strings.Builder) {
	b.WriteString("<polyline points=\"")
	for i, pt := range p.Points {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(b, "%s,%s", trimFloat(pt.X), trimFloat(pt.Y))
	}
	b.WriteString("\"")
	p.Attributes.writeTo(b)
	b.WriteString("/>")
}

func (t Text) writeTo(b *strings.Builder) {
	b.WriteString("<text")
	fmt.Fprintf(b, " x=\"%s\" y=\"%s\"", trimFloat(t.Position.X), trimFloat(t.Position.Y))
	fmt.Fprintf(b, " dx=\"%s\" dy=\"%s\"", trimFloat(t.Offset.X), trimFloat(t.Offset.Y))
	fmt.Fprintf(b, " font-size=\"%d\"", t.FontSize)
	if t.FontFamily != "" {
		fmt.Fprintf(b, " font-family=\"%s\"", t.FontFamily)
	}
	if t.FontWeight != "" {
		fmt.Fprintf(b, " font-weight=\"%s\"", t.FontWeight)
	}
	t.Attributes.writeTo(b)
	b.WriteString(">")
	b.WriteString(escapeText(t.Content))
	b.WriteString("</text>")
}

// Document is an ordered sequence of elements. Serialization preserves
// that order: it is the rendering's observable output contract.
type Document struct {
	Elements []Element
}

func (d *Document) Add(e Element) {
	d.Elements = append(d.Elements, e)
}

const header = `<?xml version="1.0" encoding="UTF-8" ?>` + "\n" +
	`<svg xmlns="http://www.w3.org/2000/svg" version="1.1">` + "\n"

const footer = `</svg>`

// Render serializes the document as a single UTF-8 SVG string.
func (d *Document) Render() string {
	var b strings.Builder
	b.WriteString(header)
	for _, e := range d.Elements {
		e.writeTo(&b)
		b.WriteByte('\n')
	}
	b.WriteString(footer)
	return b.String()
}

// WriteTo writes the rendered document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	s := d.Render()
	n, err := io.WriteString(w, s)
	return int64(n), err
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.6f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

func escapeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
