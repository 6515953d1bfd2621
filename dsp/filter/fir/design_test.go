package fir

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestIRLength(t *testing.T) {
	tests := []struct {
		fs      float64
		length  int
		latency int
	}{
		{44100, 369, 184},
		{48000, 401, 200},
		{88200, 737, 368},
		{96000, 803, 401},
		{192000, 1605, 802},
	}
	for _, tt := range tests {
		if got := IRLength(tt.fs); got != tt.length {
			t.Errorf("IRLength(%v): got %d, want %d", tt.fs, got, tt.length)
		}
		if got := Latency(tt.fs); got != tt.latency {
			t.Errorf("Latency(%v): got %d, want %d", tt.fs, got, tt.latency)
		}
	}
	if got := IRLength(0); got != ReferenceLength {
		t.Errorf("IRLength(0): got %d", got)
	}
}

func TestNewDesignerValidation(t *testing.T) {
	for _, n := range []int{0, 1, 2, 400} {
		if _, err := NewDesigner(n); err == nil {
			t.Errorf("NewDesigner(%d): expected error", n)
		}
	}
}

func TestLowpassSymmetricUnityDC(t *testing.T) {
	d, err := NewDesigner(401)
	if err != nil {
		t.Fatal(err)
	}
	h := make([]float64, d.Len())
	if err := d.LowpassInto(h, 1000, 48000); err != nil {
		t.Fatal(err)
	}
	sum := 0.0
	for i := range h {
		sum += h[i]
		if diff := math.Abs(h[i] - h[len(h)-1-i]); diff > 1e-15 {
			t.Fatalf("asymmetric at %d: %v", i, diff)
		}
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("DC gain = %v, want 1", sum)
	}
}

func TestLowpassResponse(t *testing.T) {
	d, _ := NewDesigner(401)
	h := make([]float64, d.Len())
	if err := d.LowpassInto(h, 1000, 48000); err != nil {
		t.Fatal(err)
	}
	if db := MagnitudeDB(h, 200, 48000); math.Abs(db) > 0.01 {
		t.Errorf("passband: %v dB", db)
	}
	if mag := cmplx.Abs(Response(h, 1000, 48000)); math.Abs(mag-0.5) > 0.05 {
		t.Errorf("cutoff magnitude: %v, want ~0.5", mag)
	}
	if db := MagnitudeDB(h, 2500, 48000); db > -50 {
		t.Errorf("stopband: %v dB", db)
	}
}

func TestLowpassLinearPhase(t *testing.T) {
	d, _ := NewDesigner(401)
	h := make([]float64, d.Len())
	_ = d.LowpassInto(h, 3000, 48000)
	// Removing the group delay must leave a real response.
	for _, f := range []float64{100, 1000, 2000} {
		w := 2 * math.Pi * f / 48000
		r := Response(h, f, 48000) * cmplx.Exp(complex(0, w*200))
		if math.Abs(imag(r)) > 1e-9 {
			t.Errorf("f=%v: residual phase %v", f, imag(r))
		}
	}
}

func TestLowpassValidation(t *testing.T) {
	d, _ := NewDesigner(11)
	if err := d.LowpassInto(make([]float64, 10), 1000, 48000); err == nil {
		t.Error("expected length error")
	}
	if err := d.LowpassInto(make([]float64, 11), 30000, 48000); err == nil {
		t.Error("expected cutoff error")
	}
	if err := d.LowpassInto(make([]float64, 11), 0, 48000); err == nil {
		t.Error("expected cutoff error")
	}
}

func TestLowpassIntoDoesNotAllocate(t *testing.T) {
	d, _ := NewDesigner(401)
	h := make([]float64, d.Len())
	allocs := testing.AllocsPerRun(10, func() {
		_ = d.LowpassInto(h, 1500, 48000)
	})
	if allocs != 0 {
		t.Fatalf("LowpassInto allocated %v times", allocs)
	}
}
