package splom

import (
	"errors"
	"math"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/dataset"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/stats/correlation"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/stats/outlier"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/stats/regression"
)

// PairStats are the statistics of one ordered variable pair, computed on
// the points that survive outlier filtering. Correlations are NaN when they
// are undefined. FilterSkipped is set when filtering was requested but could
// not be applied; the pair then keeps every point.
type PairStats struct {
	I, J          int
	XName, YName  string
	N             int
	Removed       int
	FilterSkipped error
	Pearson       float64
	Spearman      float64
	Fit           regression.Line
	FitErr        error

	x, y []float64
}

// Analyze returns the statistics of every ordered pair of distinct
// variables, in cell order.
func Analyze(ds dataset.Dataset, cfg Config) ([]PairStats, error) {
	if err := check(ds); err != nil {
		return nil, err
	}

	n := ds.N()
	out := make([]PairStats, 0, n*(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			ps, err := analyzePair(ds, i, j, cfg)
			if err != nil {
				return nil, err
			}
			out = append(out, ps)
		}
	}

	return out, nil
}

func analyzePair(ds dataset.Dataset, i, j int, cfg Config) (PairStats, error) {
	x, y, err := ds.Pair(i, j)
	if err != nil {
		return PairStats{}, err
	}

	ps := PairStats{
		I:     i,
		J:     j,
		XName: ds.Names[i],
		YName: ds.Names[j],
	}

	if cfg.RemoveOutliers {
		res, ferr := outlier.Filter(x, y, cfg.FilterMultiplier)
		switch {
		case ferr == nil:
			ps.Removed = res.Removed(len(x))
			x, y = res.X, res.Y
		case errors.Is(ferr, outlier.ErrSingular), errors.Is(ferr, outlier.ErrTooFewPairs),
			errors.Is(ferr, outlier.ErrMultiplier):
			ps.FilterSkipped = ferr
		default:
			return PairStats{}, ferr
		}
	}

	ps.N = len(x)
	ps.x, ps.y = x, y
	ps.Pearson = coefficient(correlation.Pearson(x, y))
	ps.Spearman = coefficient(correlation.Spearman(x, y))
	ps.Fit, ps.FitErr = regression.Fit(y, x)

	return ps, nil
}

func coefficient(v float64, err error) float64 {
	if err != nil {
		return math.NaN()
	}
	return v
}
