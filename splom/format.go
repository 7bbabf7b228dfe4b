package splom

import (
	"math"
	"strconv"
	"strings"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/internal/numfmt"
)

// Format renders a value with three significant digits, trailing zeros
// removed. It is used for coefficients, statistics and tooltips.
func Format(v float64) string { return numfmt.Sig3(v) }

// TickFormat returns the label formatter for ticks spaced step apart: fixed
// point with just enough decimals for the step and grouped thousands.
func TickFormat(step float64) func(float64) string {
	precision := 0
	if step > 0 && !math.IsInf(step, 0) {
		if e := decimalExponent(step); e < 0 {
			precision = -e
		}
	}

	return func(v float64) string { return groupFixed(v, precision) }
}

// decimalExponent returns the power of ten of the leading digit of v.
func decimalExponent(v float64) int {
	_, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	e, _ := strconv.Atoi(exp)
	return e
}

func groupFixed(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return numfmt.Sig3(v)
	}

	neg := v < 0
	s := strconv.FormatFloat(math.Abs(v), 'f', precision, 64)

	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if neg && strings.Trim(s, "0.") != "" {
		b.WriteByte('-')
	}

	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}

	return b.String()
}
