// Package outlier removes multivariate outliers from a variable pair using
// the Mahalanobis distance.
//
// Every (x, y) pair gets its distance from the joint sample mean, scaled by
// the pair's sample covariance. Pairs farther than
//
//	mean(distances) * (3 - m)
//
// are dropped. The multiplier m is presented to users as a filter strength in
// [1, 2]: a larger m lowers the critical value and removes more points.
package outlier

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultMultiplier is the filter strength used when none is configured.
const DefaultMultiplier = 1.5

// Errors returned by Distances and Filter.
var (
	ErrLengthMismatch = errors.New("outlier: x and y must have same length")
	ErrTooFewPairs    = errors.New("outlier: at least three pairs required")
	ErrSingular       = errors.New("outlier: covariance matrix is singular")
	ErrMultiplier     = errors.New("outlier: multiplier must be finite")
)

// Result holds the pairs that survived filtering. Kept lists their indices
// in the input, ascending.
type Result struct {
	X    []float64
	Y    []float64
	Kept []int
}

// Removed returns the number of dropped pairs given the input length.
func (r Result) Removed(n int) int { return n - len(r.Kept) }

// Distances returns the Mahalanobis distance of every pair from the joint
// mean. Constant or perfectly collinear data has no inverse covariance and
// yields ErrSingular; differently scaled variables do not.
func Distances(x, y []float64) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(x), len(y))
	}

	n := len(x)
	if n < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPairs, n)
	}

	// Distances are taken on standardised columns: Mahalanobis distance is
	// scale invariant, and conditioning is then judged on the correlation
	// matrix rather than on the units of either variable.
	mx, sx := stat.MeanStdDev(x, nil)
	my, sy := stat.MeanStdDev(y, nil)
	if sx == 0 || sy == 0 || math.IsNaN(sx) || math.IsNaN(sy) {
		return nil, fmt.Errorf("%w: zero variance", ErrSingular)
	}

	data := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		data.Set(i, 0, (x[i]-mx)/sx)
		data.Set(i, 1, (y[i]-my)/sy)
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, data, nil)

	var chol mat.Cholesky
	if ok := chol.Factorize(&cov); !ok {
		return nil, ErrSingular
	}

	// A positive definite factorization can still be numerically singular.
	if c := chol.Cond(); math.IsInf(c, 1) || c > 1e15 {
		return nil, fmt.Errorf("%w: condition number %g", ErrSingular, c)
	}

	origin := mat.NewVecDense(2, nil)
	point := mat.NewVecDense(2, nil)

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		point.SetVec(0, data.At(i, 0))
		point.SetVec(1, data.At(i, 1))

		d := stat.Mahalanobis(point, origin, &chol)
		if math.IsNaN(d) {
			return nil, fmt.Errorf("%w: solve failed at pair %d", ErrSingular, i)
		}

		out[i] = d
	}

	return out, nil
}

// CriticalValue returns the distance threshold mean(distances) * (3 - m).
func CriticalValue(distances []float64, m float64) float64 {
	return stat.Mean(distances, nil) * (3 - m)
}

// Filter drops the pairs whose Mahalanobis distance exceeds the critical
// value for multiplier m. Surviving pairs keep their relative order.
func Filter(x, y []float64, m float64) (Result, error) {
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return Result{}, fmt.Errorf("%w: %v", ErrMultiplier, m)
	}

	distances, err := Distances(x, y)
	if err != nil {
		return Result{}, err
	}

	critical := CriticalValue(distances, m)

	res := Result{
		X:    make([]float64, 0, len(x)),
		Y:    make([]float64, 0, len(y)),
		Kept: make([]int, 0, len(x)),
	}
	for i, d := range distances {
		if d <= critical {
			res.X = append(res.X, x[i])
			res.Y = append(res.Y, y[i])
			res.Kept = append(res.Kept, i)
		}
	}

	return res, nil
}
