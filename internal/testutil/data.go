package testutil

import (
	"math/rand"
)

// DeterministicNoise generates uniform noise in [-amplitude, amplitude] with
// a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// LinearPair returns x evenly spaced over [0, length) and
// y = slope*x + intercept plus Gaussian noise of the given standard deviation.
func LinearPair(seed int64, slope, intercept, noise float64, length int) ([]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	x := make([]float64, length)
	y := make([]float64, length)
	for i := range x {
		x[i] = float64(i)
		y[i] = slope*x[i] + intercept + noise*rng.NormFloat64()
	}
	return x, y
}

// Rows zips equally long columns into observation rows.
func Rows(columns ...[]float64) [][]float64 {
	if len(columns) == 0 {
		return nil
	}
	rows := make([][]float64, len(columns[0]))
	for r := range rows {
		row := make([]float64, len(columns))
		for c, col := range columns {
			row[c] = col[r]
		}
		rows[r] = row
	}
	return rows
}

// Constant returns length copies of value.
func Constant(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
