// Package vgdraw draws a splom.Matrix onto a gonum/plot vector graphics
// canvas and writes it as SVG, PNG or PDF.
//
// Matrix pixels map one to one onto canvas points. The canvas y axis points
// up, so every y coordinate is flipped against the matrix height.
package vgdraw

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
	"sync"

	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/splom"
)

// Format is an output file format.
type Format string

// Supported formats.
const (
	SVG Format = "svg"
	PNG Format = "png"
	PDF Format = "pdf"
)

// Errors returned by this package.
var (
	ErrFormat    = errors.New("vgdraw: unsupported format")
	ErrNilMatrix = errors.New("vgdraw: nil matrix")
)

// ParseFormat returns the format named s, ignoring case and a leading dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	switch f {
	case SVG, PNG, PDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case SVG:
		return "image/svg+xml"
	case PNG:
		return "image/png"
	case PDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// DefaultBackground is dark so that the white labels stay readable.
var DefaultBackground = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}

type config struct {
	background color.Color
	typeface   font.Typeface
}

// Option configures drawing.
type Option func(*config)

// WithBackground fills the canvas with c before drawing. A nil colour
// leaves the canvas untouched.
func WithBackground(c color.Color) Option {
	return func(cfg *config) { cfg.background = c }
}

func newConfig(opts []Option) config {
	cfg := config{background: DefaultBackground, typeface: "Liberation"}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

var registerFonts sync.Once

func face(typeface font.Typeface, size float64) font.Face {
	registerFonts.Do(func() {
		font.DefaultCache.Add(liberation.Collection())
	})
	return font.DefaultCache.Lookup(font.Font{Typeface: typeface, Variant: "Sans"}, vg.Length(size))
}

// Write draws m and encodes it to w in the given format.
func Write(w io.Writer, m *splom.Matrix, f Format, opts ...Option) error {
	if m == nil {
		return ErrNilMatrix
	}

	width, height := vg.Length(m.Width), vg.Length(m.Height)

	var c interface {
		vg.Canvas
		io.WriterTo
	}
	switch f {
	case SVG:
		c = vgsvg.New(width, height)
	case PNG:
		c = vgimg.PngCanvas{Canvas: vgimg.New(width, height)}
	case PDF:
		c = vgpdf.New(width, height)
	default:
		return fmt.Errorf("%w: %q", ErrFormat, f)
	}

	if err := Draw(c, m, opts...); err != nil {
		return err
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("vgdraw: write %s: %w", f, err)
	}
	return nil
}

// Draw draws m onto c.
func Draw(c vg.Canvas, m *splom.Matrix, opts ...Option) error {
	if m == nil {
		return ErrNilMatrix
	}

	cfg := newConfig(opts)
	d := drawer{c: c, h: m.Height, cfg: cfg}

	if cfg.background != nil {
		c.SetColor(cfg.background)
		c.Fill(rect(0, 0, m.Width, m.Height))
	}

	c.Push()
	c.Translate(vg.Point{X: vg.Length(m.OriginX), Y: -vg.Length(m.OriginY)})

	for _, a := range m.XAxes {
		d.axis(a, m.FontSize)
	}
	for _, a := range m.YAxes {
		d.axis(a, m.FontSize)
	}
	for _, cell := range m.Cells {
		d.cell(cell)
	}

	c.Pop()
	return nil
}

// drawer converts matrix coordinates (y down from the top) into canvas
// coordinates (y up from the bottom).
type drawer struct {
	c   vg.Canvas
	h   float64
	cfg config
}

func (d drawer) pt(x, y float64) vg.Point {
	return vg.Point{X: vg.Length(x), Y: vg.Length(d.h - y)}
}

func rect(x, y, w, h float64) vg.Path {
	var p vg.Path
	p.Move(vg.Point{X: vg.Length(x), Y: vg.Length(y)})
	p.Line(vg.Point{X: vg.Length(x + w), Y: vg.Length(y)})
	p.Line(vg.Point{X: vg.Length(x + w), Y: vg.Length(y + h)})
	p.Line(vg.Point{X: vg.Length(x), Y: vg.Length(y + h)})
	p.Close()
	return p
}

func (d drawer) line(x1, y1, x2, y2 float64) {
	var p vg.Path
	p.Move(d.pt(x1, y1))
	p.Line(d.pt(x2, y2))
	d.c.Stroke(p)
}

// text draws s with its anchor at (x, y) shifted down by dyEm font heights.
// anchor is "start", "middle" or "end" as in SVG.
func (d drawer) text(s string, x, y, dyEm, size float64, anchor string, fill color.Color) {
	f := d.face(size)
	switch anchor {
	case "middle":
		x -= float64(f.Width(s)) / 2
	case "end":
		x -= float64(f.Width(s))
	}

	d.c.SetColor(fill)
	d.c.FillString(f, d.pt(x, y+dyEm*size), s)
}

func (d drawer) face(size float64) font.Face {
	return face(d.cfg.typeface, size)
}

func (d drawer) axis(a splom.Axis, fontSize float64) {
	d.c.Push()
	defer d.c.Pop()

	if a.Orient == splom.Left {
		d.c.Translate(vg.Point{Y: -vg.Length(a.Offset)})
	} else {
		d.c.Translate(vg.Point{X: vg.Length(a.Offset)})
	}

	d.c.SetLineWidth(1)
	for _, t := range a.Ticks {
		d.c.SetColor(splom.Black)
		if a.Orient == splom.Left {
			d.line(0, t.Pos+0.5, a.TickSize, t.Pos+0.5)
			d.text(t.Label, -splom.TickPadding, t.Pos+0.5, 0.32, fontSize, "end", splom.White)
			continue
		}
		d.line(t.Pos+0.5, 0, t.Pos+0.5, a.TickSize)
		d.text(t.Label, t.Pos+0.5, a.TickSize+splom.TickPadding, 0.71, fontSize, "middle", splom.White)
	}
}

func (d drawer) cell(c splom.Cell) {
	d.c.Push()
	defer d.c.Pop()
	d.c.Translate(vg.Point{X: vg.Length(c.X), Y: -vg.Length(c.Y)})

	fr := c.Frame
	d.c.SetLineWidth(1)
	d.c.SetColor(splom.FrameGrey)
	d.c.Stroke(rect(fr.X, d.h-fr.Y-fr.Height, fr.Width, fr.Height))

	fill := color.NRGBA{
		R: c.PointColor.R,
		G: c.PointColor.G,
		B: c.PointColor.B,
		A: uint8(math.Round(splom.PointOpacity * 255)),
	}
	d.c.SetColor(fill)
	for _, p := range c.Points {
		d.c.Fill(d.circle(p.X, p.Y, splom.PointRadius))
	}

	for _, t := range c.Texts {
		d.text(t.Content, t.X, t.Y, t.DyEm, t.FontSize, "start", t.Fill)
	}

	if l := c.Line; l != nil {
		d.c.SetLineWidth(vg.Length(l.Width))
		d.c.SetColor(l.Stroke)
		d.line(l.X1, l.Y1, l.X2, l.Y2)
	}
}

func (d drawer) circle(x, y, r float64) vg.Path {
	center := d.pt(x, y)
	var p vg.Path
	p.Move(vg.Point{X: center.X + vg.Length(r), Y: center.Y})
	p.Arc(center, vg.Length(r), 0, 2*math.Pi)
	p.Close()
	return p
}
