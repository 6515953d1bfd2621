package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.1, 3.0}

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}
	if math.Abs(d-0.1) > 1e-12 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestMaxAbsDiffEmpty(t *testing.T) {
	d, err := MaxAbsDiff(nil, nil)
	if err != nil || d != 0 {
		t.Fatalf("MaxAbsDiff(nil, nil) = %v, %v", d, err)
	}
}

func TestMaxStep(t *testing.T) {
	if got := MaxStep([]float64{0, 0.5, 0.25, 1}); math.Abs(got-0.75) > 1e-15 {
		t.Fatalf("MaxStep = %v, want 0.75", got)
	}
	if got := MaxStep([]float64{3}); got != 0 {
		t.Fatalf("MaxStep single = %v, want 0", got)
	}
}

func TestRMS(t *testing.T) {
	if got := RMS([]float64{1, -1, 1, -1}); math.Abs(got-1) > 1e-15 {
		t.Fatalf("RMS = %v, want 1", got)
	}
	if got := RMS(nil); got != 0 {
		t.Fatalf("RMS(nil) = %v", got)
	}
	s := Sine(1000, 48000, 1, 48000)
	if got := RMS(s); math.Abs(got-math.Sqrt2/2) > 1e-6 {
		t.Fatalf("sine RMS = %v, want %v", got, math.Sqrt2/2)
	}
}
