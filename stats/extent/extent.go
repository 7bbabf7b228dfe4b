// Package extent computes per-variable [min, max] domains.
package extent

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Errors returned by extent functions.
var (
	ErrEmpty     = errors.New("extent: no values")
	ErrRaggedRow = errors.New("extent: row shorter than column count")
)

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Contains reports whether v lies inside the closed interval.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// IsDegenerate reports whether the range collapses to a single value.
func (r Range) IsDegenerate() bool { return r.Min == r.Max }

// Of returns the extent of values.
func Of(values []float64) (Range, error) {
	if len(values) == 0 {
		return Range{}, ErrEmpty
	}

	return Range{Min: floats.Min(values), Max: floats.Max(values)}, nil
}

// Columns returns the extent of each of the first n columns of rows.
func Columns(rows [][]float64, n int) ([]Range, error) {
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	out := make([]Range, n)
	for k, row := range rows {
		if len(row) < n {
			return nil, fmt.Errorf("%w: row %d", ErrRaggedRow, k)
		}

		for i := 0; i < n; i++ {
			v := row[i]
			if k == 0 {
				out[i] = Range{Min: v, Max: v}
				continue
			}

			if v < out[i].Min {
				out[i].Min = v
			}

			if v > out[i].Max {
				out[i].Max = v
			}
		}
	}

	return out, nil
}
