package extent

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf(t *testing.T) {
	r, err := Of([]float64{3, -1, 7, 2})
	require.NoError(t, err)
	assert.Equal(t, Range{Min: -1, Max: 7}, r)
	assert.Equal(t, 8.0, r.Span())
	assert.True(t, r.Contains(7))
	assert.False(t, r.Contains(7.5))
	assert.False(t, r.IsDegenerate())

	_, err = Of(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestConstantColumnIsDegenerate(t *testing.T) {
	r, err := Of([]float64{5, 5, 5, 5})
	require.NoError(t, err)
	assert.True(t, r.IsDegenerate())
	assert.Equal(t, 0.0, r.Span())
}

func TestColumnsMatchesTrueMinMax(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 4

	for trial := 0; trial < 20; trial++ {
		rows := make([][]float64, 1+rng.Intn(50))
		for k := range rows {
			rows[k] = make([]float64, n)
			for i := range rows[k] {
				rows[k][i] = rng.NormFloat64() * 100
			}
		}

		got, err := Columns(rows, n)
		require.NoError(t, err)

		for i := 0; i < n; i++ {
			col := make([]float64, len(rows))
			for k := range rows {
				col[k] = rows[k][i]
			}

			want, err := Of(col)
			require.NoError(t, err)
			assert.Equal(t, want, got[i])
			assert.LessOrEqual(t, got[i].Min, got[i].Max)
		}
	}
}

func TestColumnsErrors(t *testing.T) {
	_, err := Columns(nil, 2)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Columns([][]float64{{1}}, 2)
	assert.ErrorIs(t, err, ErrRaggedRow)
}
