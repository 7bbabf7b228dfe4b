package splom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/dataset"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/internal/testutil"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/stats/outlier"
)

func diagonalDataset() dataset.Dataset {
	return dataset.Dataset{
		Rows:  [][]float64{{1, 1}, {2, 2}, {3, 3}, {4, 4}},
		Names: []string{"a", "b"},
		Paths: []string{`\\server\a`, `\\server\b`},
	}
}

func cellAt(t *testing.T, m *Matrix, i, j int) Cell {
	t.Helper()
	for _, c := range m.Cells {
		if c.I == i && c.J == j {
			return c
		}
	}
	t.Fatalf("no cell (%d,%d)", i, j)
	return Cell{}
}

func TestBuildGeometry(t *testing.T) {
	m, err := Build(diagonalDataset(), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 2, m.N)
	assert.Equal(t, 320.0, m.CellSize)
	assert.Equal(t, 660.0, m.Width)
	assert.Equal(t, 660.0, m.Height)
	assert.Equal(t, 20.0, m.OriginX)
	assert.Equal(t, 10.0, m.OriginY)
	require.Len(t, m.Cells, 4)

	c := cellAt(t, m, 0, 1)
	assert.Equal(t, 320.0, c.X)
	assert.Equal(t, 320.0, c.Y)
	assert.Equal(t, Rect{X: 10, Y: 10, Width: 300, Height: 300}, c.Frame)

	c = cellAt(t, m, 1, 0)
	assert.Equal(t, 0.0, c.X)
	assert.Equal(t, 0.0, c.Y)
}

func TestBuildCellOrder(t *testing.T) {
	ds := dataset.Dataset{
		Rows:  testutil.Rows([]float64{1, 2, 3, 4}, []float64{4, 1, 3, 2}, []float64{2, 2, 5, 1}),
		Names: []string{"a", "b", "c"},
	}

	m, err := Build(ds, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, m.Cells, 9)

	k := 0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, i, m.Cells[k].I)
			assert.Equal(t, j, m.Cells[k].J)
			k++
		}
	}
}

func TestBuildAxes(t *testing.T) {
	m, err := Build(diagonalDataset(), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, m.XAxes, 2)
	require.Len(t, m.YAxes, 2)

	x0 := m.XAxes[0]
	assert.Equal(t, Bottom, x0.Orient)
	assert.Equal(t, 320.0, x0.Offset)
	assert.Equal(t, 640.0, x0.TickSize)
	require.Len(t, x0.Ticks, 4)
	assert.Equal(t, Tick{Value: 1, Pos: 10, Label: "1"}, x0.Ticks[0])
	assert.Equal(t, Tick{Value: 4, Pos: 310, Label: "4"}, x0.Ticks[3])

	y1 := m.YAxes[1]
	assert.Equal(t, Left, y1.Orient)
	assert.Equal(t, 320.0, y1.Offset)
	assert.Equal(t, 310.0, y1.Ticks[0].Pos)
	assert.Equal(t, 10.0, y1.Ticks[3].Pos)
}

func TestBuildRegressionOnIdentity(t *testing.T) {
	m, err := Build(diagonalDataset(), ApplyOptions(WithRegression(true)))
	require.NoError(t, err)

	c := cellAt(t, m, 0, 1)
	require.NotNil(t, c.Line)
	assert.Equal(t, 1.0, c.Line.Fit.Slope)
	assert.Equal(t, 0.0, c.Line.Fit.Intercept)
	assert.Equal(t, 1.0, c.Line.Fit.R2)
	assert.Equal(t, 10.0, c.Line.X1)
	assert.Equal(t, 310.0, c.Line.Y1)
	assert.Equal(t, 310.0, c.Line.X2)
	assert.Equal(t, 10.0, c.Line.Y2)
	assert.Equal(t, "f(x) = 1x+0", c.Line.Title)

	assert.Nil(t, cellAt(t, m, 0, 0).Line)
}

func TestBuildPoints(t *testing.T) {
	m, err := Build(diagonalDataset(), DefaultConfig())
	require.NoError(t, err)

	c := cellAt(t, m, 0, 1)
	require.Len(t, c.Points, 4)
	assert.Equal(t, Category20[0], c.PointColor)
	assert.Equal(t, 10.0, c.Points[0].X)
	assert.Equal(t, 310.0, c.Points[0].Y)
	assert.Equal(t, "a : 1\nb : 1", c.Points[0].Title)

	// (i+1)(j+1) is symmetric, so mirrored cells share a colour.
	assert.Equal(t, c.PointColor, cellAt(t, m, 1, 0).PointColor)

	d := cellAt(t, m, 1, 1)
	assert.True(t, d.Diagonal())
	assert.Equal(t, White, d.PointColor)
	require.Len(t, d.Points, 4)
	require.Len(t, d.Texts, 1)
	assert.Equal(t, "b", d.Texts[0].Content)
	assert.Equal(t, `\\server\b`, d.Texts[0].Title)
	assert.True(t, d.Texts[0].Bold)
	assert.Equal(t, LabelFontSize, d.Texts[0].FontSize)
}

func TestBuildCorrelationTexts(t *testing.T) {
	ds := diagonalDataset()

	tests := []struct {
		name     string
		pearson  bool
		spearman bool
		want     []Text
	}{
		{"none", false, false, nil},
		{"pearson", true, false, []Text{{X: 20, Y: 20, DyEm: 1, Content: "γ : 1", FontSize: FontSize, Fill: White}}},
		{"spearman", false, true, []Text{{X: 20, Y: 20, DyEm: 1, Content: "ρ : 1", FontSize: FontSize, Fill: White}}},
		{"both", true, true, []Text{
			{X: 20, Y: 20, DyEm: 1, Content: "γ : 1", FontSize: FontSize, Fill: White},
			{X: 20, Y: 36, DyEm: 1, Content: "ρ : 1", FontSize: FontSize, Fill: White},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Build(ds, ApplyOptions(WithPearson(tt.pearson), WithSpearman(tt.spearman)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cellAt(t, m, 0, 1).Texts)
		})
	}
}

func TestBuildBasicStatistics(t *testing.T) {
	m, err := Build(diagonalDataset(), ApplyOptions(WithBasicStatistics(true)))
	require.NoError(t, err)

	d := cellAt(t, m, 0, 0)
	assert.Empty(t, d.Points)
	require.NotNil(t, d.Summary)
	assert.Equal(t, 2.5, d.Summary.Mean)

	require.Len(t, d.Texts, 8)
	assert.Equal(t, "Mean : 2.5", d.Texts[1].Content)
	assert.Equal(t, 3.5, d.Texts[1].DyEm)
	assert.InDelta(t, 12.0, d.Texts[1].Y, 1e-12)
	assert.Equal(t, "Kurtosis : -1.36", d.Texts[7].Content)
	assert.InDelta(t, 84.0, d.Texts[7].Y, 1e-12)
}

func TestBuildIdenticalRows(t *testing.T) {
	ds := dataset.Dataset{
		Rows:  [][]float64{{5, 5}, {5, 5}, {5, 5}, {5, 5}},
		Names: []string{"a", "b"},
	}
	cfg := ApplyOptions(WithOutlierFilter(1.5), WithRegression(true), WithPearson(true), WithSpearman(true))

	m, err := Build(ds, cfg)
	require.NoError(t, err)

	c := cellAt(t, m, 0, 1)
	assert.ErrorIs(t, c.FilterSkipped(), outlier.ErrSingular)
	assert.Len(t, c.Points, 4)
	assert.Nil(t, c.Line)
	assert.True(t, math.IsNaN(c.Pair.Pearson))
	assert.Equal(t, "γ : NaN", c.Texts[0].Content)

	for _, p := range c.Points {
		assert.Equal(t, 160.0, p.X)
		assert.Equal(t, 160.0, p.Y)
	}

	require.Len(t, m.XAxes[0].Ticks, 1)
	assert.Equal(t, "5", m.XAxes[0].Ticks[0].Label)
}

func TestBuildRemovesOutliers(t *testing.T) {
	x, y := testutil.LinearPair(4, 1, 0, 2, 80)
	x = append(x, 40)
	y = append(y, 400)

	ds := dataset.Dataset{Rows: testutil.Rows(x, y), Names: []string{"x", "y"}}

	m, err := Build(ds, ApplyOptions(WithOutlierFilter(1.5)))
	require.NoError(t, err)

	c := cellAt(t, m, 0, 1)
	assert.NoError(t, c.FilterSkipped())
	assert.Positive(t, c.Pair.Removed)
	assert.Len(t, c.Points, len(x)-c.Pair.Removed)
	for _, p := range c.Points {
		assert.NotEqual(t, 400.0, p.DataY)
	}

	// the diagonal always shows every observation
	assert.Len(t, cellAt(t, m, 0, 0).Points, len(x))
}

func TestBuildNonFiniteMultiplierSkipsFilter(t *testing.T) {
	x, y := testutil.LinearPair(4, 1, 0, 2, 20)
	ds := dataset.Dataset{Rows: testutil.Rows(x, y), Names: []string{"x", "y"}}

	cfg := DefaultConfig()
	cfg.RemoveOutliers = true
	cfg.FilterMultiplier = math.NaN()

	m, err := Build(ds, cfg)
	require.NoError(t, err)

	c := cellAt(t, m, 0, 1)
	assert.ErrorIs(t, c.FilterSkipped(), outlier.ErrMultiplier)
	assert.Zero(t, c.Pair.Removed)
	assert.Len(t, c.Points, len(x))
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(dataset.Dataset{Rows: [][]float64{{1}, {2}, {3}}, Names: []string{"a"}}, DefaultConfig())
	assert.ErrorIs(t, err, ErrTooFewRows)

	_, err = Build(dataset.Dataset{}, DefaultConfig())
	assert.ErrorIs(t, err, dataset.ErrNoVariables)

	_, err = Build(diagonalDataset(), ApplyOptions(WithSize(100, 100)))
	assert.ErrorIs(t, err, ErrTooNarrow)
}

func TestAnalyze(t *testing.T) {
	x, y := testutil.LinearPair(9, -2, 5, 0.5, 50)
	ds := dataset.Dataset{Rows: testutil.Rows(x, y), Names: []string{"x", "y"}}

	pairs, err := Analyze(ds, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	p := pairs[0]
	assert.Equal(t, 0, p.I)
	assert.Equal(t, 1, p.J)
	assert.Equal(t, 50, p.N)
	assert.InDelta(t, -2, p.Fit.Slope, 0.05)
	assert.Less(t, p.Pearson, -0.99)
	assert.Less(t, p.Spearman, -0.99)

	_, err = Analyze(dataset.Dataset{Rows: [][]float64{{1, 2}}, Names: []string{"a", "b"}}, DefaultConfig())
	assert.ErrorIs(t, err, ErrTooFewRows)
}
