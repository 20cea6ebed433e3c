package viewport

import (
	"math"
	"testing"
)

func TestNiceStepValues(t *testing.T) {
	tests := []struct {
		span float64
		want float64
	}{
		{20, 2},
		{12, 1},
		{10, 1},
		{30, 5},
		{80, 10},
		{1, 0.1},
		{0.03, 0.005},
		{2.5e6, 2e5},
	}
	for _, tc := range tests {
		got := NiceStep(tc.span)
		if math.Abs(got-tc.want) > 1e-12*tc.want {
			t.Errorf("NiceStep(%g) = %g, want %g", tc.span, got, tc.want)
		}
	}
}

func TestNiceStepShape(t *testing.T) {
	for e := -8.0; e <= 8; e += 0.37 {
		span := math.Pow(10, e)
		step := NiceStep(span)
		k := math.Floor(math.Log10(step) + 1e-9)
		mant := step / math.Pow(10, k)
		ok := false
		for _, m := range []float64{1, 2, 5} {
			if math.Abs(mant-m) < 1e-6 {
				ok = true
			}
		}
		if !ok {
			t.Errorf("NiceStep(%g) = %g, mantissa %g not in {1,2,5}", span, step, mant)
		}
		div := span / step
		if div < 5-1e-9 || div > 20+1e-9 {
			t.Errorf("NiceStep(%g) = %g gives %g divisions", span, step, div)
		}
	}
}

func TestNiceStepDeterministic(t *testing.T) {
	a := NiceStep(17.3)
	b := NiceStep(17.3)
	if a != b {
		t.Fatalf("NiceStep not deterministic: %g vs %g", a, b)
	}
}

func TestGridLines(t *testing.T) {
	got := GridLines(-10, 10, 5)
	want := []float64{-10, -5, 0, 5, 10}
	if len(got) != len(want) {
		t.Fatalf("GridLines = %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("line %d = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestGridLinesOffset(t *testing.T) {
	got := GridLines(0.3, 1.05, 0.2)
	want := []float64{0.4, 0.6, 0.8, 1.0}
	if len(got) != len(want) {
		t.Fatalf("GridLines = %v, want %v", got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("line %d = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestGridLinesBadStep(t *testing.T) {
	if got := GridLines(0, 1, 0); got != nil {
		t.Errorf("zero step: got %v", got)
	}
	if got := GridLines(0, 1, math.NaN()); got != nil {
		t.Errorf("NaN step: got %v", got)
	}
}
