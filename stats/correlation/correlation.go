// Package correlation provides Pearson and Spearman coefficients for a pair
// of variables.
//
// Both coefficients are returned at full float64 precision; a constant input
// has no defined correlation and yields NaN rather than an error.
package correlation

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Errors returned by the correlation functions.
var (
	ErrLengthMismatch = errors.New("correlation: x and y must have same length")
	ErrTooFewValues   = errors.New("correlation: at least two values required")
)

func validate(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(x), len(y))
	}

	if len(x) < 2 {
		return ErrTooFewValues
	}

	return nil
}

// Pearson returns the product-moment correlation coefficient of x and y.
func Pearson(x, y []float64) (float64, error) {
	if err := validate(x, y); err != nil {
		return 0, err
	}

	return stat.Correlation(x, y, nil), nil
}

// Spearman returns the rank correlation coefficient of x and y: the Pearson
// coefficient of their average ranks.
func Spearman(x, y []float64) (float64, error) {
	if err := validate(x, y); err != nil {
		return 0, err
	}

	return stat.Correlation(Rank(x), Rank(y), nil), nil
}

// Rank returns the 1-based rank of every value. Tied values share the mean of
// the ranks they span.
func Rank(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	ranks := make([]float64, n)
	for start := 0; start < n; {
		end := start + 1
		for end < n && values[idx[end]] == values[idx[start]] {
			end++
		}

		// positions start..end-1 hold ranks start+1..end
		avg := float64(start+1+end) / 2
		for k := start; k < end; k++ {
			ranks[idx[k]] = avg
		}

		start = end
	}

	return ranks
}
