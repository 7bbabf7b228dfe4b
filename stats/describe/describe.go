// Package describe computes the descriptive statistics shown on the
// diagonal of a scatterplot matrix.
package describe

import (
	"math"
	"sort"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Summary holds descriptive statistics of one variable. Variance and StdDev
// are population moments; Kurtosis is excess kurtosis (0 for a normal
// distribution).
type Summary struct {
	Length   int
	Mean     float64
	Median   float64
	Min      float64
	Max      float64
	Range    float64
	Variance float64
	StdDev   float64
	Skewness float64
	Kurtosis float64
	Energy   float64 // sum of squares
}

// Entry is a named statistic.
type Entry struct {
	Name  string
	Value float64
}

// Calculate computes all statistics in a single pass using Welford's online
// algorithm for the central moments. The median comes from a sorted copy.
func Calculate(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	var mean, m2, m3, m4 float64

	minVal := values[0]
	maxVal := values[0]

	for i, x := range values {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 before M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		minVal = math.Min(minVal, x)
		maxVal = math.Max(maxVal, x)
	}

	nf := float64(n)
	variance := m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return Summary{
		Length:   n,
		Mean:     mean,
		Median:   Median(values),
		Min:      minVal,
		Max:      maxVal,
		Range:    maxVal - minVal,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Skewness: skewness,
		Kurtosis: kurtosis,
		Energy:   vecmath.DotProduct(values, values),
	}
}

// Median returns the middle value of a sorted copy of values, or the mean
// of the two middle values for an even count. It returns 0 for no values.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Entries lists the statistics in display order.
func (s Summary) Entries() []Entry {
	return []Entry{
		{Name: "Mean", Value: s.Mean},
		{Name: "Median", Value: s.Median},
		{Name: "Range", Value: s.Range},
		{Name: "Standard Deviation", Value: s.StdDev},
		{Name: "Variance", Value: s.Variance},
		{Name: "Skewness", Value: s.Skewness},
		{Name: "Kurtosis", Value: s.Kurtosis},
	}
}
