package splom

import (
	"errors"
	"fmt"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/dataset"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/stats/describe"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/stats/extent"
)

// MinRows is the smallest dataset a matrix is built for.
const MinRows = dataset.MinRows

// Errors returned by Build and Analyze.
var (
	ErrTooFewRows = errors.New("splom: dataset too small")
	ErrTooNarrow  = errors.New("splom: width too small for variable count")
)

func check(ds dataset.Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	if ds.Len() < MinRows {
		return fmt.Errorf("%w: %d rows, need %d", ErrTooFewRows, ds.Len(), MinRows)
	}
	return nil
}

// Build lays out the scatterplot matrix of ds. Every ordered pair of
// variables gets a cell; cfg selects the overlays. Pairs whose outlier
// filter cannot be applied keep all points and report it through
// Cell.FilterSkipped.
func Build(ds dataset.Dataset, cfg Config) (*Matrix, error) {
	if err := check(ds); err != nil {
		return nil, err
	}

	n := ds.N()
	width := cfg.Width - WidthMargin
	size := (width - 2*Padding) / float64(n)
	if size <= Padding {
		return nil, fmt.Errorf("%w: cell size %.1f for width %g", ErrTooNarrow, size, cfg.Width)
	}

	domains, err := extent.Columns(ds.Rows, n)
	if err != nil {
		return nil, err
	}

	m := &Matrix{
		Width:    size*float64(n) + Padding,
		Height:   size*float64(n) + Padding,
		Padding:  Padding,
		CellSize: size,
		N:        n,
		OriginX:  Padding,
		OriginY:  Padding / 2,
		FontSize: FontSize,
	}

	b := builder{ds: ds, cfg: cfg, size: size, domains: domains, palette: NewPalette(Category20)}

	for i := 0; i < n; i++ {
		m.XAxes = append(m.XAxes, b.axis(Bottom, i, float64(n-i-1)*size))
	}
	for i := 0; i < n; i++ {
		m.YAxes = append(m.YAxes, b.axis(Left, i, float64(i)*size))
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c, err := b.cell(i, j)
			if err != nil {
				return nil, err
			}
			m.Cells = append(m.Cells, c)
		}
	}

	return m, nil
}

type builder struct {
	ds      dataset.Dataset
	cfg     Config
	size    float64
	domains []extent.Range
	palette *Palette
}

func (b builder) xScale(i int) Scale {
	return NewScale(b.domains[i], Padding/2, b.size-Padding/2)
}

func (b builder) yScale(j int) Scale {
	return NewScale(b.domains[j], b.size-Padding/2, Padding/2)
}

func (b builder) axis(o Orient, i int, offset float64) Axis {
	s := b.xScale(i)
	if o == Left {
		s = b.yScale(i)
	}

	d := b.domains[i]
	format := TickFormat(TickStep(d.Min, d.Max, TickCount))
	if d.IsDegenerate() {
		format = Format
	}

	a := Axis{
		Orient:   o,
		Index:    i,
		Name:     b.ds.Names[i],
		Offset:   offset,
		TickSize: b.size * float64(b.ds.N()),
	}
	for _, v := range s.Ticks(TickCount) {
		a.Ticks = append(a.Ticks, Tick{Value: v, Pos: s.Map(v), Label: format(v)})
	}

	return a
}

func (b builder) cell(i, j int) (Cell, error) {
	n := b.ds.N()
	c := Cell{
		I:     i,
		J:     j,
		XName: b.ds.Names[i],
		YName: b.ds.Names[j],
		X:     float64(n-i-1) * b.size,
		Y:     float64(j) * b.size,
		Frame: Rect{X: Padding / 2, Y: Padding / 2, Width: b.size - Padding, Height: b.size - Padding},
	}

	xs, ys := b.xScale(i), b.yScale(j)

	if i == j {
		return b.diagonal(c, xs, ys)
	}

	ps, err := analyzePair(b.ds, i, j, b.cfg)
	if err != nil {
		return Cell{}, err
	}
	c.Pair = &ps

	c.PointColor = b.palette.Color((i + 1) * (j + 1))
	c.Points = points(c, ps.x, ps.y, xs, ys)

	c.Texts = b.correlationTexts(ps)

	if b.cfg.ShowRegression && ps.FitErr == nil {
		if seg, ok := ps.Fit.Clamp(xs.Domain, ys.Domain); ok {
			c.Line = &Line{
				X1:     xs.Map(seg.X1),
				Y1:     ys.Map(seg.Y1),
				X2:     xs.Map(seg.X2),
				Y2:     ys.Map(seg.Y2),
				Title:  ps.Fit.String(),
				Width:  LineWidth,
				Stroke: White,
				Fit:    ps.Fit,
			}
		}
	}

	return c, nil
}

func (b builder) correlationTexts(ps PairStats) []Text {
	pearson := Text{X: Padding, Y: Padding, DyEm: 1, Content: "γ : " + Format(ps.Pearson), FontSize: FontSize, Fill: White}
	spearman := Text{X: Padding, Y: Padding, DyEm: 1, Content: "ρ : " + Format(ps.Spearman), FontSize: FontSize, Fill: White}

	switch {
	case b.cfg.ShowPearson && b.cfg.ShowSpearman:
		spearman.Y = Padding * 1.8
		return []Text{pearson, spearman}
	case b.cfg.ShowPearson:
		return []Text{pearson}
	case b.cfg.ShowSpearman:
		return []Text{spearman}
	}

	return nil
}

func (b builder) diagonal(c Cell, xs, ys Scale) (Cell, error) {
	values, err := b.ds.Column(c.I)
	if err != nil {
		return Cell{}, err
	}

	c.Texts = append(c.Texts, Text{
		X:          Padding,
		Y:          Padding,
		DyEm:       1,
		Content:    c.XName,
		Title:      b.ds.Path(c.I),
		FontSize:   LabelFontSize,
		Bold:       true,
		Capitalize: true,
		Fill:       White,
	})

	if !b.cfg.ShowBasicStatistics {
		c.PointColor = White
		c.Points = points(c, values, values, xs, ys)
		return c, nil
	}

	s := describe.Calculate(values)
	c.Summary = &s
	for k, e := range s.Entries() {
		c.Texts = append(c.Texts, Text{
			X:        Padding,
			Y:        Padding * 0.6 * float64(k+1),
			DyEm:     3.5,
			Content:  e.Name + " : " + Format(e.Value),
			FontSize: FontSize,
			Fill:     White,
		})
	}

	return c, nil
}

func points(c Cell, x, y []float64, xs, ys Scale) []Point {
	out := make([]Point, len(x))
	for k := range x {
		out[k] = Point{
			X:     xs.Map(x[k]),
			Y:     ys.Map(y[k]),
			DataX: x[k],
			DataY: y[k],
			Title: c.XName + " : " + Format(x[k]) + "\n" + c.YName + " : " + Format(y[k]),
		}
	}
	return out
}
