// Package influx loads evenly spaced series from InfluxDB 2.x into a dataset.
//
// Each requested field is averaged over Points equal windows of the time
// range with aggregateWindow, so every variable contributes one sample per
// window. Windows without data stay empty and the rows they fall into are
// dropped when the series are aligned.
package influx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/dataset"
)

// DefaultPoints is the number of samples fetched per field when a request
// does not say.
const DefaultPoints = 50

// Errors returned by Load.
var (
	ErrNoFields   = errors.New("influx: no fields requested")
	ErrIdentifier = errors.New("influx: invalid identifier")
	ErrRange      = errors.New("influx: stop must be after start")
	ErrNames      = errors.New("influx: name count does not match field count")
)

var identifier = regexp.MustCompile(`^[A-Za-z0-9_.:/ -]+$`)

// Querier runs a Flux query. api.QueryAPI satisfies it.
type Querier interface {
	Query(ctx context.Context, query string) (*api.QueryTableResult, error)
}

// Source reads fields of one measurement from a bucket.
type Source struct {
	Querier     Querier
	Bucket      string
	Measurement string
	Logger      *slog.Logger
}

// New returns a Source using the query API of client for org.
func New(client influxdb2.Client, org, bucket, measurement string) *Source {
	return &Source{
		Querier:     client.QueryAPI(org),
		Bucket:      bucket,
		Measurement: measurement,
	}
}

// Request selects the fields and the time range to load. Names, when set,
// replace the field names as variable names.
type Request struct {
	Fields []string
	Names  []string
	Start  time.Time
	Stop   time.Time
	Points int
}

// Interval returns the window width that yields Points samples over the
// range, counting both ends.
func (r Request) Interval() time.Duration {
	d := r.Stop.Sub(r.Start)
	points := r.Points
	if points <= 0 {
		points = DefaultPoints
	}
	if points == 1 {
		return d
	}
	return d / time.Duration(points-1)
}

func (r Request) validate() error {
	if len(r.Fields) == 0 {
		return ErrNoFields
	}
	if len(r.Names) != 0 && len(r.Names) != len(r.Fields) {
		return fmt.Errorf("%w: %d names for %d fields", ErrNames, len(r.Names), len(r.Fields))
	}
	for _, f := range r.Fields {
		if err := checkIdentifier(f); err != nil {
			return err
		}
	}
	if !r.Stop.After(r.Start) || r.Interval() <= 0 {
		return fmt.Errorf("%w: %s .. %s", ErrRange, r.Start.Format(time.RFC3339), r.Stop.Format(time.RFC3339))
	}
	return nil
}

func checkIdentifier(s string) error {
	if !identifier.MatchString(s) {
		return fmt.Errorf("%w: %q", ErrIdentifier, s)
	}
	return nil
}

// Query returns the Flux query for req.
func (s *Source) Query(req Request) (string, error) {
	if err := req.validate(); err != nil {
		return "", err
	}
	if err := checkIdentifier(s.Bucket); err != nil {
		return "", fmt.Errorf("bucket: %w", err)
	}
	if err := checkIdentifier(s.Measurement); err != nil {
		return "", fmt.Errorf("measurement: %w", err)
	}

	preds := make([]string, len(req.Fields))
	for i, f := range req.Fields {
		preds[i] = fmt.Sprintf(`r._field == "%s"`, f)
	}

	return fmt.Sprintf(`from(bucket: "%s")
  |> range(start: %s, stop: %s)
  |> filter(fn: (r) => r._measurement == "%s")
  |> filter(fn: (r) => %s)
  |> aggregateWindow(every: %s, fn: mean, createEmpty: true)
  |> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
  |> sort(columns: ["_time"], desc: false)`,
		s.Bucket,
		req.Start.UTC().Format(time.RFC3339Nano),
		req.Stop.UTC().Format(time.RFC3339Nano),
		s.Measurement,
		strings.Join(preds, " or "),
		fluxDuration(req.Interval()),
	), nil
}

// Load runs the query for req and aligns the fields into a dataset.
func (s *Source) Load(ctx context.Context, req Request) (dataset.Dataset, error) {
	q, err := s.Query(req)
	if err != nil {
		return dataset.Dataset{}, err
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Fetching series from InfluxDB",
		"bucket", s.Bucket,
		"measurement", s.Measurement,
		"fields", req.Fields,
		"interval", req.Interval().String())

	result, err := s.Querier.Query(ctx, q)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("influx: query failed: %w", err)
	}
	defer result.Close()

	series := make([]dataset.Series, len(req.Fields))
	for i, f := range req.Fields {
		series[i] = dataset.Series{Name: f, Path: s.Measurement + "/" + f}
		if len(req.Names) != 0 {
			series[i].Name = req.Names[i]
		}
	}

	for result.Next() {
		record := result.Record()
		for i, f := range req.Fields {
			v, ok := number(record.ValueByKey(f))
			series[i].Samples = append(series[i].Samples, dataset.Sample{Time: record.Time(), Value: v, Valid: ok})
		}
	}
	if result.Err() != nil {
		return dataset.Dataset{}, fmt.Errorf("influx: reading results: %w", result.Err())
	}

	ds, err := dataset.FromSeries(series)
	if err != nil {
		return dataset.Dataset{}, err
	}

	logger.Info("Fetched series from InfluxDB",
		"windows", len(series[0].Samples),
		"rows", ds.Len())

	return ds, nil
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

// fluxDuration writes d as a Flux duration literal in the coarsest exact
// unit.
func fluxDuration(d time.Duration) string {
	switch {
	case d%time.Second == 0:
		return fmt.Sprintf("%ds", d/time.Second)
	case d%time.Millisecond == 0:
		return fmt.Sprintf("%dms", d/time.Millisecond)
	case d%time.Microsecond == 0:
		return fmt.Sprintf("%dus", d/time.Microsecond)
	}
	return fmt.Sprintf("%dns", int64(d))
}
