package testutil

import (
	"math"
	"testing"
)

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if math.Abs(a[i]) > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestLinearPairWithoutNoise(t *testing.T) {
	x, y := LinearPair(1, 2, 3, 0, 5)
	RequireSliceNearlyEqual(t, x, []float64{0, 1, 2, 3, 4}, 0)
	RequireSliceNearlyEqual(t, y, []float64{3, 5, 7, 9, 11}, 0)
}

func TestRows(t *testing.T) {
	rows := Rows([]float64{1, 2}, []float64{3, 4}, []float64{5, 6})
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	RequireSliceNearlyEqual(t, rows[0], []float64{1, 3, 5}, 0)
	RequireSliceNearlyEqual(t, rows[1], []float64{2, 4, 6}, 0)

	if Rows() != nil {
		t.Fatal("Rows() should be nil")
	}
}

func TestConstant(t *testing.T) {
	c := Constant(5, 4)
	RequireSliceNearlyEqual(t, c, []float64{5, 5, 5, 5}, 0)
	RequireFinite(t, c...)
}
