package server

import (
	"math"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/dataset"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/splom"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/stats/describe"
)

// MatrixRequest is the body of POST /v1/matrix and POST /v1/matrix/stats.
type MatrixRequest struct {
	Data    dataset.Dataset `json:"data"`
	Options splom.Overrides `json:"options"`
	Format  string          `json:"format,omitempty"`
}

// InfluxQuery are the query parameters of GET /v1/matrix/influx.
type InfluxQuery struct {
	Fields     string   `form:"fields" binding:"required"`
	Names      string   `form:"names"`
	Start      string   `form:"start" binding:"required"`
	Stop       string   `form:"stop"`
	Points     int      `form:"points"`
	Format     string   `form:"format"`
	Width      *float64 `form:"width"`
	Height     *float64 `form:"height"`
	Outliers   *bool    `form:"outliers"`
	Multiplier *float64 `form:"multiplier"`
	Stats      *bool    `form:"stats"`
	Regression *bool    `form:"regression"`
	Pearson    *bool    `form:"pearson"`
	Spearman   *bool    `form:"spearman"`
}

// Overrides returns the matrix options carried by the query.
func (q InfluxQuery) Overrides() splom.Overrides {
	return splom.Overrides{
		Width:               q.Width,
		Height:              q.Height,
		RemoveOutliers:      q.Outliers,
		FilterMultiplier:    q.Multiplier,
		ShowBasicStatistics: q.Stats,
		ShowRegression:      q.Regression,
		ShowPearson:         q.Pearson,
		ShowSpearman:        q.Spearman,
	}
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is returned by POST /v1/matrix/stats. Undefined values
// (a constant variable's correlation, a vertical regression line) are null.
type StatsResponse struct {
	Variables []VariableStats `json:"variables"`
	Pairs     []PairResponse  `json:"pairs"`
}

// VariableStats describes one variable.
type VariableStats struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	N        int      `json:"n"`
	Mean     *float64 `json:"mean"`
	Median   *float64 `json:"median"`
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	StdDev   *float64 `json:"std_dev"`
	Variance *float64 `json:"variance"`
	Skewness *float64 `json:"skewness"`
	Kurtosis *float64 `json:"kurtosis"`
}

// PairResponse holds the statistics of one ordered variable pair.
type PairResponse struct {
	X             string   `json:"x"`
	Y             string   `json:"y"`
	N             int      `json:"n"`
	Removed       int      `json:"removed"`
	FilterSkipped string   `json:"filter_skipped,omitempty"`
	Pearson       *float64 `json:"pearson"`
	Spearman      *float64 `json:"spearman"`
	Slope         *float64 `json:"slope"`
	Intercept     *float64 `json:"intercept"`
	R2            *float64 `json:"r2"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func variableStats(name, path string, s describe.Summary) VariableStats {
	return VariableStats{
		Name:     name,
		Path:     path,
		N:        s.Length,
		Mean:     finite(s.Mean),
		Median:   finite(s.Median),
		Min:      finite(s.Min),
		Max:      finite(s.Max),
		StdDev:   finite(s.StdDev),
		Variance: finite(s.Variance),
		Skewness: finite(s.Skewness),
		Kurtosis: finite(s.Kurtosis),
	}
}

func pairResponse(p splom.PairStats) PairResponse {
	r := PairResponse{
		X:        p.XName,
		Y:        p.YName,
		N:        p.N,
		Removed:  p.Removed,
		Pearson:  finite(p.Pearson),
		Spearman: finite(p.Spearman),
	}
	if p.FilterSkipped != nil {
		r.FilterSkipped = p.FilterSkipped.Error()
	}
	if p.FitErr == nil && !p.Fit.Degenerate() {
		r.Slope = finite(p.Fit.Slope)
		r.Intercept = finite(p.Fit.Intercept)
		r.R2 = finite(p.Fit.R2)
	}
	return r
}
