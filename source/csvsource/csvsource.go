// Package csvsource loads a dataset from comma separated values.
//
// The first record names the variables. Every later record is one
// observation; a record with an empty, unparsable or non-finite cell is
// skipped, the same rule dataset.FromSeries applies to missing samples.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/dataset"
)

// Errors returned by Read.
var (
	ErrNoHeader  = errors.New("csvsource: missing header record")
	ErrNoColumns = errors.New("csvsource: no value columns")
)

type config struct {
	comma      rune
	timeColumn string
	pathPrefix string
}

// Option configures Read.
type Option func(*config)

// WithComma sets the field delimiter.
func WithComma(r rune) Option {
	return func(c *config) { c.comma = r }
}

// WithTimeColumn excludes the named column (case-insensitive) from the
// variables.
func WithTimeColumn(name string) Option {
	return func(c *config) { c.timeColumn = name }
}

// WithPathPrefix sets every variable's path to prefix + name.
func WithPathPrefix(prefix string) Option {
	return func(c *config) { c.pathPrefix = prefix }
}

// Stats reports how many records were read and skipped.
type Stats struct {
	Records int
	Skipped int
}

// Read parses r into a dataset.
func Read(r io.Reader, opts ...Option) (dataset.Dataset, Stats, error) {
	cfg := config{comma: ','}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	cr := csv.NewReader(r)
	cr.Comma = cfg.comma
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return dataset.Dataset{}, Stats{}, ErrNoHeader
	}
	if err != nil {
		return dataset.Dataset{}, Stats{}, fmt.Errorf("csvsource: header: %w", err)
	}

	var (
		ds   dataset.Dataset
		cols []int
	)
	for i, name := range header {
		name = strings.TrimSpace(name)
		if cfg.timeColumn != "" && strings.EqualFold(name, cfg.timeColumn) {
			continue
		}
		cols = append(cols, i)
		ds.Names = append(ds.Names, name)
		if cfg.pathPrefix != "" {
			ds.Paths = append(ds.Paths, cfg.pathPrefix+name)
		}
	}
	if len(cols) == 0 {
		return dataset.Dataset{}, Stats{}, ErrNoColumns
	}

	var st Stats
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dataset.Dataset{}, st, fmt.Errorf("csvsource: %w", err)
		}
		st.Records++

		row, ok := parseRow(rec, cols)
		if !ok {
			st.Skipped++
			continue
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, st, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, opts ...Option) (dataset.Dataset, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataset.Dataset{}, Stats{}, fmt.Errorf("csvsource: %w", err)
	}
	defer f.Close()

	return Read(f, opts...)
}

func parseRow(rec []string, cols []int) ([]float64, bool) {
	row := make([]float64, len(cols))
	for k, c := range cols {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[c]), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		row[k] = v
	}
	return row, true
}
