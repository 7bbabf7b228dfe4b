package correlation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-12

func noisyLine(seed int64, n int) (x, y []float64) {
	rng := rand.New(rand.NewSource(seed))
	x = make([]float64, n)
	y = make([]float64, n)
	for i := range x {
		x[i] = rng.Float64() * 10
		y[i] = 0.5*x[i] + rng.NormFloat64()
	}
	return x, y
}

func TestPearsonSelfIsOne(t *testing.T) {
	x, _ := noisyLine(1, 40)
	r, err := Pearson(x, x)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, tolerance)
}

func TestPearsonSymmetric(t *testing.T) {
	x, y := noisyLine(2, 40)
	a, err := Pearson(x, y)
	require.NoError(t, err)
	b, err := Pearson(y, x)
	require.NoError(t, err)
	assert.InDelta(t, a, b, tolerance)
	assert.True(t, a > 0 && a <= 1)
}

func TestPearsonKnownValue(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 5, 4, 5}
	r, err := Pearson(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 0.7745966692414834, r, 1e-12)
}

func TestPearsonNegative(t *testing.T) {
	r, err := Pearson([]float64{1, 2, 3, 4}, []float64{8, 6, 4, 2})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, r, tolerance)
}

func TestConstantInputIsNaN(t *testing.T) {
	r, err := Pearson([]float64{1, 2, 3, 4}, []float64{5, 5, 5, 5})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(r))
}

func TestRankAverageTies(t *testing.T) {
	got := Rank([]float64{10, 20, 20, 5, 20})
	assert.Equal(t, []float64{2, 4, 4, 1, 4}, got)

	assert.Equal(t, []float64{1.5, 1.5}, Rank([]float64{3, 3}))
	assert.Empty(t, Rank(nil))
}

func TestSpearmanMonotonicInvariance(t *testing.T) {
	x, y := noisyLine(3, 60)
	base, err := Spearman(x, y)
	require.NoError(t, err)

	transforms := map[string]func(float64) float64{
		"exp":    math.Exp,
		"cube":   func(v float64) float64 { return v * v * v },
		"affine": func(v float64) float64 { return 3*v + 100 },
		"log1p":  func(v float64) float64 { return math.Log1p(math.Abs(v)) * sign(v) },
	}

	for name, f := range transforms {
		t.Run(name, func(t *testing.T) {
			tx := make([]float64, len(x))
			for i, v := range x {
				tx[i] = f(v)
			}
			ty := make([]float64, len(y))
			for i, v := range y {
				ty[i] = f(v)
			}

			got, err := Spearman(tx, y)
			require.NoError(t, err)
			assert.InDelta(t, base, got, tolerance)

			got, err = Spearman(x, ty)
			require.NoError(t, err)
			assert.InDelta(t, base, got, tolerance)
		})
	}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func TestSpearmanPerfectMonotonic(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{1, 4, 9, 16, 25, 36}
	r, err := Spearman(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, tolerance)
}

func TestErrors(t *testing.T) {
	_, err := Pearson([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Spearman([]float64{1}, []float64{1})
	assert.ErrorIs(t, err, ErrTooFewValues)
}
