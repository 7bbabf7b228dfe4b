package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// MinRows is the smallest number of observations a scatterplot matrix is
// rendered for.
const MinRows = 4

// Errors returned by dataset validation and decoding.
var (
	ErrNoVariables = errors.New("dataset: no variables")
	ErrRaggedRow   = errors.New("dataset: row length does not match variable count")
	ErrPathCount   = errors.New("dataset: path count does not match variable count")
	ErrNonFinite   = errors.New("dataset: non-finite value")
	ErrIndex       = errors.New("dataset: variable index out of range")
)

// Dataset is a table of observations. Rows[k][i] is the value of variable i
// in observation k. Paths identify where each column came from and may be
// empty.
type Dataset struct {
	Rows  [][]float64 `json:"plotData"`
	Names []string    `json:"plotNames"`
	Paths []string    `json:"plotPaths,omitempty"`
}

// N returns the number of variables.
func (d Dataset) N() int { return len(d.Names) }

// Len returns the number of observations.
func (d Dataset) Len() int { return len(d.Rows) }

// Validate checks the shape invariants: at least one variable, every row
// exactly N wide, finite values only, and either no paths or one per variable.
func (d Dataset) Validate() error {
	n := d.N()
	if n == 0 {
		return ErrNoVariables
	}

	if len(d.Paths) != 0 && len(d.Paths) != n {
		return fmt.Errorf("%w: %d paths for %d variables", ErrPathCount, len(d.Paths), n)
	}

	for k, row := range d.Rows {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrRaggedRow, k, len(row), n)
		}

		for i, v := range row {
			if !isFinite(v) {
				return fmt.Errorf("%w: row %d column %d", ErrNonFinite, k, i)
			}
		}
	}

	return nil
}

// Column returns a copy of the values of variable i.
func (d Dataset) Column(i int) ([]float64, error) {
	if i < 0 || i >= d.N() {
		return nil, fmt.Errorf("%w: %d", ErrIndex, i)
	}

	out := make([]float64, len(d.Rows))
	for k, row := range d.Rows {
		out[k] = row[i]
	}

	return out, nil
}

// Pair returns the columns of variables i and j.
func (d Dataset) Pair(i, j int) (x, y []float64, err error) {
	x, err = d.Column(i)
	if err != nil {
		return nil, nil, err
	}

	y, err = d.Column(j)
	if err != nil {
		return nil, nil, err
	}

	return x, y, nil
}

// Path returns the source identifier of variable i, falling back to its name.
func (d Dataset) Path(i int) string {
	if i >= 0 && i < len(d.Paths) && d.Paths[i] != "" {
		return d.Paths[i]
	}

	if i >= 0 && i < len(d.Names) {
		return d.Names[i]
	}

	return ""
}

// Decode reads a JSON dataset in the {plotData, plotNames, plotPaths} shape
// and validates it.
func Decode(r io.Reader) (Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Dataset{}, fmt.Errorf("dataset: decode: %w", err)
	}

	if err := d.Validate(); err != nil {
		return Dataset{}, err
	}

	return d, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
