package splom

import (
	"math"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/stats/extent"
)

// Scale maps a data domain linearly onto a pixel range. The range may be
// reversed (R0 > R1) as it is for vertical axes.
type Scale struct {
	Domain extent.Range
	R0, R1 float64
}

// NewScale returns a Scale from domain onto [r0, r1].
func NewScale(domain extent.Range, r0, r1 float64) Scale {
	return Scale{Domain: domain, R0: r0, R1: r1}
}

// Map returns the pixel position of v. A degenerate domain maps every value
// to the middle of the range.
func (s Scale) Map(v float64) float64 {
	span := s.Domain.Span()

	t := 0.5
	if span != 0 {
		t = (v - s.Domain.Min) / span
	}

	return s.R0 + t*(s.R1-s.R0)
}

// Ticks returns up to about count round tick values inside the domain.
func (s Scale) Ticks(count int) []float64 {
	return Ticks(s.Domain.Min, s.Domain.Max, count)
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Ticks returns evenly spaced round values between start and stop using the
// d3-array algorithm: steps are 1, 2 or 5 times a power of ten. Values are
// computed from integer multiples of the step so that decimal steps print
// cleanly.
func Ticks(start, stop float64, count int) []float64 {
	if start == stop && count > 0 {
		return []float64{start}
	}

	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	step := TickIncrement(start, stop, count)
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil
	}

	var ticks []float64
	if step > 0 {
		lo := math.Ceil(start / step)
		hi := math.Floor(stop / step)
		n := int(math.Ceil(hi - lo + 1))
		for i := 0; i < n; i++ {
			ticks = append(ticks, (lo+float64(i))*step)
		}
	} else {
		lo := math.Floor(start * step)
		hi := math.Ceil(stop * step)
		n := int(math.Ceil(lo - hi + 1))
		for i := 0; i < n; i++ {
			ticks = append(ticks, (lo-float64(i))/step)
		}
	}

	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}

	return ticks
}

// TickIncrement returns the tick step for the interval. A positive result is
// the step itself; a negative result -k means a step of 1/k.
func TickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / math.Max(0, float64(count))
	power := math.Floor(math.Log10(step))
	err := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case err >= e10:
		factor = 10
	case err >= e5:
		factor = 5
	case err >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}

	return -math.Pow(10, -power) / factor
}

// TickStep returns the absolute distance between adjacent ticks.
func TickStep(start, stop float64, count int) float64 {
	step0 := math.Abs(stop-start) / math.Max(0, float64(count))
	step1 := math.Pow(10, math.Floor(math.Log10(step0)))

	err := step0 / step1
	switch {
	case err >= e10:
		step1 *= 10
	case err >= e5:
		step1 *= 5
	case err >= e2:
		step1 *= 2
	}

	return step1
}
