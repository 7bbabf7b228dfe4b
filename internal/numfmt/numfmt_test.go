package numfmt

import (
	"math"
	"testing"
)

func TestSig3(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-1, "-1"},
		{0.123456, "0.123"},
		{1.5, "1.5"},
		{2.0000001, "2"},
		{12.345, "12.3"},
		{123.45, "123"},
		{999.7, "1e+3"},
		{1234.5, "1.23e+3"},
		{-98765, "-9.88e+4"},
		{0.000123456, "0.000123"},
		{0.0000012, "0.0000012"},
		{0.00000012, "1.2e-7"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		if got := Sig3(tt.in); got != tt.want {
			t.Errorf("Sig3(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrecisionClampsDigits(t *testing.T) {
	if got := Precision(3.14159, 0); got != "3" {
		t.Errorf("Precision(3.14159, 0) = %q, want %q", got, "3")
	}

	if got := Precision(3.14159, 5); got != "3.1416" {
		t.Errorf("Precision(3.14159, 5) = %q, want %q", got, "3.1416")
	}
}
