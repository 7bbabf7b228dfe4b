// Package regression fits an ordinary least-squares line to a variable pair
// and clips it to a cell's visible domain.
package regression

import (
	"errors"
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/internal/numfmt"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/stats/extent"
)

// Errors returned by Fit.
var (
	ErrLengthMismatch = errors.New("regression: x and y must have same length")
	ErrEmpty          = errors.New("regression: no values")
)

// Line is the fitted line y = Slope*x + Intercept. R2 is the coefficient of
// determination. When x has zero variance Slope is not finite and the line
// is Degenerate.
type Line struct {
	Slope     float64
	Intercept float64
	R2        float64
	N         int
}

// Fit computes the closed-form least-squares line of y on x. The argument
// order (y first) matches the way the matrix builder passes a cell's
// vertical and horizontal columns.
func Fit(y, x []float64) (Line, error) {
	if len(x) != len(y) {
		return Line{}, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(x), len(y))
	}

	if len(x) == 0 {
		return Line{}, ErrEmpty
	}

	n := float64(len(x))
	sumX := vecmath.Sum(x)
	sumY := vecmath.Sum(y)
	sumXY := vecmath.DotProduct(x, y)
	sumXX := vecmath.DotProduct(x, x)
	sumYY := vecmath.DotProduct(y, y)

	cov := n*sumXY - sumX*sumY
	varX := n*sumXX - sumX*sumX
	varY := n*sumYY - sumY*sumY

	slope := cov / varX
	intercept := (sumY - slope*sumX) / n
	r := cov / math.Sqrt(varX*varY)

	return Line{
		Slope:     slope,
		Intercept: intercept,
		R2:        r * r,
		N:         len(x),
	}, nil
}

// Fnx evaluates y for a given x.
func (l Line) Fnx(x float64) float64 { return l.Slope*x + l.Intercept }

// Fny evaluates x for a given y.
func (l Line) Fny(y float64) float64 { return (y - l.Intercept) / l.Slope }

// Degenerate reports whether the slope is not a finite number.
func (l Line) Degenerate() bool {
	return math.IsNaN(l.Slope) || math.IsInf(l.Slope, 0)
}

// String returns the line as "f(x) = <slope>x+<intercept>" with three
// significant digits.
func (l Line) String() string {
	if l.Intercept >= 0 {
		return "f(x) = " + numfmt.Sig3(l.Slope) + "x+" + numfmt.Sig3(l.Intercept)
	}

	return "f(x) = " + numfmt.Sig3(l.Slope) + "x" + numfmt.Sig3(l.Intercept)
}

// Segment is a line segment in data coordinates.
type Segment struct {
	X1, Y1 float64
	X2, Y2 float64
}

// Clamp returns the part of the line visible inside the x and y domains.
// Each end starts at an x-domain bound; when the line leaves the y domain
// there, the end moves along the line to the crossed y bound instead. The
// second result is false when any endpoint coordinate is not finite, in
// which case no segment should be drawn.
func (l Line) Clamp(xDom, yDom extent.Range) (Segment, bool) {
	x1, y1 := l.clampEnd(xDom.Min, yDom)
	x2, y2 := l.clampEnd(xDom.Max, yDom)

	s := Segment{X1: x1, Y1: y1, X2: x2, Y2: y2}
	for _, v := range [...]float64{x1, y1, x2, y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return s, false
		}
	}

	return s, true
}

func (l Line) clampEnd(x float64, yDom extent.Range) (float64, float64) {
	y := l.Fnx(x)
	if y < yDom.Min {
		x = l.Fny(yDom.Min)
		y = yDom.Min
	}

	if y > yDom.Max {
		x = l.Fny(yDom.Max)
		y = yDom.Max
	}

	return x, y
}
