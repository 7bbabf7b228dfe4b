package dataset

import (
	"errors"
	"time"
)

// ErrNoSeries is returned by FromSeries when no series are given.
var ErrNoSeries = errors.New("dataset: no series")

// Sample is one timestamped value of a series. Valid is false when the source
// reported no usable number (digital states, "no data" markers, gaps).
type Sample struct {
	Time  time.Time
	Value float64
	Valid bool
}

// Series is a named sequence of samples taken from a single source path.
type Series struct {
	Name    string
	Path    string
	Samples []Sample
}

// FromSeries aligns series index by index into observation rows. The first
// series defines the row count; a row is kept only when every series has a
// valid, finite sample at that index.
func FromSeries(series []Series) (Dataset, error) {
	if len(series) == 0 {
		return Dataset{}, ErrNoSeries
	}

	d := Dataset{
		Names: make([]string, len(series)),
		Paths: make([]string, len(series)),
	}
	for i, s := range series {
		d.Names[i] = s.Name
		d.Paths[i] = s.Path
	}

	for k := range series[0].Samples {
		row := make([]float64, len(series))
		ok := true

		for i, s := range series {
			if k >= len(s.Samples) {
				ok = false
				break
			}

			v := s.Samples[k]
			if !v.Valid || !isFinite(v.Value) {
				ok = false
				break
			}

			row[i] = v.Value
		}

		if ok {
			d.Rows = append(d.Rows, row)
		}
	}

	return d, nil
}
