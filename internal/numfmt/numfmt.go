// Package numfmt formats numbers for chart labels.
package numfmt

import (
	"math"
	"strconv"
	"strings"
)

// Precision formats v with p significant digits in the style of a
// JavaScript toPrecision call with insignificant trailing zeros removed:
// exponent notation is used when the decimal exponent is below -6 or at
// least p, and the exponent carries no zero padding ("1.23e+3").
func Precision(v float64, p int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	if p < 1 {
		p = 1
	}

	// The exponent must come from the rounded value: 999.7 at p=3 is 1.00e+3.
	sci := strconv.FormatFloat(v, 'e', p-1, 64)
	mant, expPart, _ := strings.Cut(sci, "e")

	exp, err := strconv.Atoi(expPart)
	if err != nil {
		return sci
	}

	if exp < -6 || exp >= p {
		sign := "+"
		if exp < 0 {
			sign = "-"
			exp = -exp
		}

		return trimZeros(mant) + "e" + sign + strconv.Itoa(exp)
	}

	return trimZeros(strconv.FormatFloat(v, 'f', p-1-exp, 64))
}

// Sig3 formats v with three significant digits.
func Sig3(v float64) string { return Precision(v, 3) }

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}

	s = strings.TrimRight(s, "0")

	return strings.TrimSuffix(s, ".")
}
