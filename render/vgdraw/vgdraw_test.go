package vgdraw

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg/recorder"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/dataset"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/splom"
)

func matrix(t *testing.T, opts ...splom.Option) *splom.Matrix {
	t.Helper()
	ds := dataset.Dataset{
		Rows:  [][]float64{{1, 1}, {2, 2}, {3, 3}, {4, 4}},
		Names: []string{"a", "b"},
	}
	m, err := splom.Build(ds, splom.ApplyOptions(opts...))
	require.NoError(t, err)
	return m
}

func fillStrings(c *recorder.Canvas) []*recorder.FillString {
	var out []*recorder.FillString
	for _, a := range c.Actions {
		if fs, ok := a.(*recorder.FillString); ok {
			out = append(out, fs)
		}
	}
	return out
}

func count[T recorder.Action](c *recorder.Canvas) int {
	n := 0
	for _, a := range c.Actions {
		if _, ok := a.(T); ok {
			n++
		}
	}
	return n
}

func TestDrawRecordsElements(t *testing.T) {
	m := matrix(t, splom.WithRegression(true), splom.WithPearson(true))

	var c recorder.Canvas
	require.NoError(t, Draw(&c, m))

	// background plus 16 points: two off-diagonal and two diagonal cells
	assert.Equal(t, 1+16, count[*recorder.Fill](&c))

	// 16 tick lines, 4 frames, 2 regression lines
	assert.Equal(t, 16+4+2, count[*recorder.Stroke](&c))

	var texts []string
	for _, fs := range fillStrings(&c) {
		texts = append(texts, fs.String)
	}
	assert.Contains(t, texts, "a")
	assert.Contains(t, texts, "b")
	assert.Contains(t, texts, "γ : 1")
	assert.Contains(t, texts, "4")
}

func TestDrawFlipsY(t *testing.T) {
	m := matrix(t)

	var c recorder.Canvas
	require.NoError(t, Draw(&c, m, WithBackground(nil)))

	// label anchored at (20, 20) with a 12pt em below it, measured from
	// the top of a 660pt tall canvas
	for _, fs := range fillStrings(&c) {
		if fs.String == "a" {
			assert.InDelta(t, 20.0, float64(fs.Point.X), 1e-9)
			assert.InDelta(t, 660.0-32.0, float64(fs.Point.Y), 1e-9)
			return
		}
	}
	t.Fatal("label not drawn")
}

func TestWriteFormats(t *testing.T) {
	m := matrix(t)

	tests := []struct {
		format Format
		prefix string
	}{
		{SVG, "<?xml"},
		{PNG, "\x89PNG"},
		{PDF, "%PDF"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, m, tt.format))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte(tt.prefix)))
		})
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, matrix(t), Format("gif"))
	assert.ErrorIs(t, err, ErrFormat)

	assert.ErrorIs(t, Write(&buf, nil, SVG), ErrNilMatrix)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(".PNG")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	assert.Equal(t, "image/png", f.ContentType())

	_, err = ParseFormat("bmp")
	assert.ErrorIs(t, err, ErrFormat)
}
