package testutil

import (
	"math"
	"testing"
)

// NearlyEqual reports whether a and b differ by at most eps. Two NaNs are
// equal, and infinities are equal only to themselves.
func NearlyEqual(a, b, eps float64) bool {
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		return math.IsNaN(a) && math.IsNaN(b)
	case math.IsInf(a, 0) || math.IsInf(b, 0):
		return a == b
	}
	return math.Abs(a-b) <= eps
}

// RequireSliceNearlyEqual fails t if got and want differ in length or any
// element pair is not NearlyEqual.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if !NearlyEqual(got[i], want[i], eps) {
			t.Fatalf("index %d: got %v, want %v (eps %v)", i, got[i], want[i], eps)
		}
	}
}

// RequireFinite fails t if any value is NaN or Inf.
func RequireFinite(t *testing.T, values ...float64) {
	t.Helper()
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
