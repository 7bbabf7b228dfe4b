package splom

import (
	"image/color"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/stats/describe"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/stats/regression"
)

// Layout constants of the matrix, in pixels.
const (
	Padding       = 20.0
	WidthMargin   = 20.0
	TickCount     = 4
	TickPadding   = 3.0
	PointRadius   = 4.0
	PointOpacity  = 0.7
	FontSize      = 10.0
	LabelFontSize = 12.0
	LineWidth     = 2.0
)

// Orient tells on which side of its group an axis draws its labels.
type Orient int

// Axis orientations.
const (
	Bottom Orient = iota
	Left
)

// Matrix is the render tree of a scatterplot matrix. All coordinates are
// pixels; cell content is relative to the cell origin, and axes and cells
// are relative to (OriginX, OriginY).
type Matrix struct {
	Width    float64
	Height   float64
	Padding  float64
	CellSize float64
	N        int
	OriginX  float64
	OriginY  float64
	FontSize float64
	XAxes    []Axis
	YAxes    []Axis
	Cells    []Cell
}

// Axis is one grid axis. Offset translates the axis along x for Bottom
// axes and along y for Left axes. Tick lines span TickSize pixels across
// the whole matrix.
type Axis struct {
	Orient   Orient
	Index    int
	Name     string
	Offset   float64
	TickSize float64
	Ticks    []Tick
}

// Tick is a tick position within its axis and its label.
type Tick struct {
	Value float64
	Pos   float64
	Label string
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Point is a plotted observation. DataX and DataY keep the source values.
type Point struct {
	X, Y         float64
	DataX, DataY float64
	Title        string
}

// Text is a label anchored at (X, Y) and shifted down by DyEm font heights.
type Text struct {
	X, Y       float64
	DyEm       float64
	Content    string
	Title      string
	FontSize   float64
	Bold       bool
	Capitalize bool
	Fill       color.RGBA
}

// Line is the visible regression segment of a cell.
type Line struct {
	X1, Y1 float64
	X2, Y2 float64
	Title  string
	Width  float64
	Stroke color.RGBA
	Fit    regression.Line
}

// Cell is the plot of variable I on the x axis against variable J on the y
// axis. Diagonal cells (I == J) carry the variable label and either Summary
// texts or a plain scatter.
type Cell struct {
	I, J         int
	XName, YName string
	X, Y         float64
	Frame        Rect
	Points       []Point
	PointColor   color.RGBA
	Texts        []Text
	Line         *Line
	Pair         *PairStats
	Summary      *describe.Summary
}

// Diagonal reports whether the cell plots a variable against itself.
func (c Cell) Diagonal() bool { return c.I == c.J }

// FilterSkipped returns why outlier filtering was not applied to the cell,
// or nil.
func (c Cell) FilterSkipped() error {
	if c.Pair == nil {
		return nil
	}
	return c.Pair.FilterSkipped
}
