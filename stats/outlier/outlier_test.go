package outlier

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cloud(seed int64, n int) ([]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = rng.NormFloat64()
		y[i] = 0.5*x[i] + 0.3*rng.NormFloat64()
	}

	return x, y
}

func TestFilterRemovesFarPoint(t *testing.T) {
	x, y := cloud(3, 60)
	x = append(x, 40)
	y = append(y, -40)

	res, err := Filter(x, y, DefaultMultiplier)
	require.NoError(t, err)
	assert.NotContains(t, res.Kept, len(x)-1)
	assert.Positive(t, res.Removed(len(x)))
}

func TestFilterKeepsSubsetInOrder(t *testing.T) {
	x, y := cloud(7, 100)

	res, err := Filter(x, y, 1.2)
	require.NoError(t, err)
	require.Len(t, res.X, len(res.Kept))
	require.Len(t, res.Y, len(res.Kept))

	for k, idx := range res.Kept {
		if k > 0 {
			assert.Greater(t, idx, res.Kept[k-1])
		}

		assert.Equal(t, x[idx], res.X[k])
		assert.Equal(t, y[idx], res.Y[k])
	}
}

func TestStrongerMultiplierRemovesMore(t *testing.T) {
	x, y := cloud(19, 200)

	weak, err := Filter(x, y, 1)
	require.NoError(t, err)
	strong, err := Filter(x, y, 2)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(strong.Kept), len(weak.Kept))
}

func TestFilterIgnoresUnitScale(t *testing.T) {
	x, y := cloud(3, 60)
	x = append(x, 40)
	y = append(y, -40)

	want, err := Filter(x, y, DefaultMultiplier)
	require.NoError(t, err)

	for _, scale := range []float64{1e-8, 1e8} {
		scaled := make([]float64, len(x))
		for i, v := range x {
			scaled[i] = v * scale
		}

		got, err := Filter(scaled, y, DefaultMultiplier)
		require.NoError(t, err, "scale %g", scale)
		assert.Equal(t, want.Kept, got.Kept, "scale %g", scale)
	}
}

func TestMultiplierThreeRemovesEverything(t *testing.T) {
	// The critical value mean*(3-m) reaches zero at m = 3.
	x, y := cloud(5, 40)

	d, err := Distances(x, y)
	require.NoError(t, err)
	assert.Equal(t, 0.0, CriticalValue(d, 3))

	res, err := Filter(x, y, 3)
	require.NoError(t, err)
	assert.Empty(t, res.Kept)
	assert.Equal(t, len(x), res.Removed(len(x)))
}

func TestCriticalValue(t *testing.T) {
	d := []float64{1, 2, 3}
	assert.InDelta(t, 3.0, CriticalValue(d, 1.5), 1e-12)
	assert.InDelta(t, 4.0, CriticalValue(d, 1), 1e-12)
}

func TestIdenticalPairsAreSingular(t *testing.T) {
	v := []float64{5, 5, 5, 5}

	_, err := Filter(v, v, DefaultMultiplier)
	assert.ErrorIs(t, err, ErrSingular)
}

func TestCollinearPairsAreSingular(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{2, 4, 6, 8}

	_, err := Distances(x, y)
	assert.ErrorIs(t, err, ErrSingular)
}

func TestDistancesErrors(t *testing.T) {
	_, err := Distances([]float64{1, 2, 3}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Distances([]float64{1, 2}, []float64{3, 1})
	assert.ErrorIs(t, err, ErrTooFewPairs)

	_, err = Filter([]float64{1, 2, 3}, []float64{3, 1, 2}, math.NaN())
	assert.ErrorIs(t, err, ErrMultiplier)
}

func TestDistancesAreNonNegative(t *testing.T) {
	x, y := cloud(23, 50)

	d, err := Distances(x, y)
	require.NoError(t, err)
	require.Len(t, d, len(x))

	for _, v := range d {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func BenchmarkFilter(b *testing.B) {
	x, y := cloud(1, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Filter(x, y, DefaultMultiplier); err != nil {
			b.Fatal(err)
		}
	}
}
