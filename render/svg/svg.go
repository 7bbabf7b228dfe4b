// Package svg writes a splom.Matrix as a standalone SVG document with the
// same element structure, classes and inline styles as the browser chart:
// "x axis" and "y axis" groups of ticks, one "cell" group per variable pair
// with a "frame" rectangle, and <title> tooltips on points, labels and
// regression lines.
package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/splom"
)

const namespace = "http://www.w3.org/2000/svg"

// ErrNilMatrix is returned when there is nothing to render.
var ErrNilMatrix = errors.New("svg: nil matrix")

type config struct {
	id         string
	background *color.RGBA
	header     bool
}

// Option configures rendering.
type Option func(*config)

// WithID sets the id attribute of the root element.
func WithID(id string) Option {
	return func(c *config) { c.id = id }
}

// WithBackground fills the document with c behind the chart.
func WithBackground(c color.RGBA) Option {
	return func(cfg *config) { cfg.background = &c }
}

// WithXMLHeader prefixes the document with an XML declaration.
func WithXMLHeader() Option {
	return func(c *config) { c.header = true }
}

// Render writes m to w.
func Render(w io.Writer, m *splom.Matrix, opts ...Option) error {
	if m == nil {
		return ErrNilMatrix
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.header {
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return fmt.Errorf("svg: %w", err)
		}
	}

	e := &encoder{enc: xml.NewEncoder(w)}
	e.document(m, cfg)
	if e.err == nil {
		e.err = e.enc.Flush()
	}
	if e.err != nil {
		return fmt.Errorf("svg: %w", e.err)
	}
	return nil
}

// String renders m into a string.
func String(m *splom.Matrix, opts ...Option) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, m, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// encoder keeps the first write error and skips all later tokens.
type encoder struct {
	enc *xml.Encoder
	err error
}

func (e *encoder) token(t xml.Token) {
	if e.err == nil {
		e.err = e.enc.EncodeToken(t)
	}
}

func (e *encoder) open(name string, attrs ...xml.Attr) {
	e.token(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (e *encoder) close(name string) {
	e.token(xml.EndElement{Name: xml.Name{Local: name}})
}

func (e *encoder) leaf(name string, attrs ...xml.Attr) {
	e.open(name, attrs...)
	e.close(name)
}

func (e *encoder) text(s string) {
	e.token(xml.CharData(s))
}

func (e *encoder) title(s string) {
	e.open("title")
	e.text(s)
	e.close("title")
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func num(name string, v float64) xml.Attr {
	return attr(name, strconv.FormatFloat(v, 'f', -1, 64))
}

func translate(x, y float64) xml.Attr {
	return attr("transform", "translate("+strconv.FormatFloat(x, 'f', -1, 64)+","+strconv.FormatFloat(y, 'f', -1, 64)+")")
}

func (e *encoder) document(m *splom.Matrix, cfg config) {
	root := []xml.Attr{
		attr("xmlns", namespace),
		num("width", m.Width),
		num("height", m.Height),
		attr("style", "padding: 10px;"),
	}
	if cfg.id != "" {
		root = append(root, attr("id", cfg.id))
	}
	e.open("svg", root...)

	if cfg.background != nil {
		e.leaf("rect", attr("width", "100%"), attr("height", "100%"), attr("fill", splom.Hex(*cfg.background)))
	}

	e.open("g", translate(m.OriginX, m.OriginY), attr("style", "font: "+strconv.FormatFloat(m.FontSize, 'f', -1, 64)+"px sans-serif;"))

	for _, a := range m.XAxes {
		e.axis(a, m.FontSize)
	}
	for _, a := range m.YAxes {
		e.axis(a, m.FontSize)
	}
	for _, c := range m.Cells {
		e.cell(c)
	}

	e.close("g")
	e.close("svg")
}

func (e *encoder) axis(a splom.Axis, fontSize float64) {
	class, anchor, move := "x axis", "middle", translate(a.Offset, 0)
	if a.Orient == splom.Left {
		class, anchor, move = "y axis", "end", translate(0, a.Offset)
	}

	e.open("g",
		attr("class", class),
		move,
		attr("fill", "none"),
		num("font-size", fontSize),
		attr("font-family", "sans-serif"),
		attr("text-anchor", anchor),
	)

	for _, t := range a.Ticks {
		// half-pixel offset keeps one-pixel tick lines crisp
		if a.Orient == splom.Left {
			e.open("g", attr("class", "tick"), attr("opacity", "1"), translate(0, t.Pos+0.5))
			e.leaf("line", attr("stroke", "#000"), num("x2", a.TickSize), attr("style", "stroke: black; shape-rendering: crispEdges;"))
			e.open("text", attr("fill", "#000"), num("x", -splom.TickPadding), attr("dy", "0.32em"), attr("style", "fill: #fff;"))
		} else {
			e.open("g", attr("class", "tick"), attr("opacity", "1"), translate(t.Pos+0.5, 0))
			e.leaf("line", attr("stroke", "#000"), num("y2", a.TickSize), attr("style", "stroke: black; shape-rendering: crispEdges;"))
			e.open("text", attr("fill", "#000"), num("y", a.TickSize+splom.TickPadding), attr("dy", "0.71em"), attr("style", "fill: #fff;"))
		}
		e.text(t.Label)
		e.close("text")
		e.close("g")
	}

	e.close("g")
}

func (e *encoder) cell(c splom.Cell) {
	e.open("g", attr("class", "cell"), translate(c.X, c.Y))

	e.leaf("rect",
		attr("class", "frame"),
		num("x", c.Frame.X),
		num("y", c.Frame.Y),
		num("width", c.Frame.Width),
		num("height", c.Frame.Height),
		attr("style", "stroke: "+splom.Hex(splom.FrameGrey)+"; fill: none; shape-rendering: crispEdges;"),
	)

	if c.Diagonal() {
		if len(c.Texts) > 0 {
			e.label(c.Texts[0])
		}
		e.texts(c.Texts[1:])
		e.points(c)
		e.close("g")
		return
	}

	e.points(c)
	e.texts(c.Texts)

	if l := c.Line; l != nil {
		e.open("line",
			num("x1", l.X1),
			num("y1", l.Y1),
			num("x2", l.X2),
			num("y2", l.Y2),
			attr("style", "stroke-width: "+strconv.FormatFloat(l.Width, 'f', -1, 64)+"; stroke: "+splom.Hex(l.Stroke)+";"),
		)
		e.title(l.Title)
		e.close("line")
	}

	e.close("g")
}

func (e *encoder) points(c splom.Cell) {
	style := attr("style", "fill: "+splom.Hex(c.PointColor)+"; fill-opacity: "+strconv.FormatFloat(splom.PointOpacity, 'f', -1, 64)+";")
	for _, p := range c.Points {
		e.open("circle", num("cx", p.X), num("cy", p.Y), num("r", splom.PointRadius), style)
		e.title(p.Title)
		e.close("circle")
	}
}

func (e *encoder) label(t splom.Text) {
	style := "font-weight: bold; text-transform: capitalize; fill: " + splom.Hex(t.Fill) + "; font-size: " + strconv.FormatFloat(t.FontSize, 'f', -1, 64) + "px;"
	e.open("text", num("x", t.X), num("y", t.Y), attr("dy", em(t.DyEm)), attr("style", style))
	e.text(t.Content)
	if t.Title != "" {
		e.title(t.Title)
	}
	e.close("text")
}

func (e *encoder) texts(ts []splom.Text) {
	for _, t := range ts {
		e.open("text", num("x", t.X), num("y", t.Y), attr("dy", em(t.DyEm)), attr("style", "fill: "+splom.Hex(t.Fill)+";"))
		e.text(t.Content)
		e.close("text")
	}
}

func em(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "em"
}
