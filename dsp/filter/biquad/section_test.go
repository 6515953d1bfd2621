package biquad

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/internal/testutil"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewSection(t *testing.T) {
	c := Coefficients{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5}
	s := NewSection(c)
	if s.Coefficients != c {
		t.Fatalf("coefficients mismatch: got %v, want %v", s.Coefficients, c)
	}
	if st := s.State(); st != [2]float64{0, 0} {
		t.Fatalf("initial state not zero: %v", st)
	}
}

func TestProcessSample_DFIIT(t *testing.T) {
	// Hand-traced with x = [1, 0, 0, 0]:
	//
	// n=0: y=0.25, d0=0.55, d1=0.24
	// n=1: y=0.55, d0=0.35, d1=-0.022
	// n=2: y=0.35, d0=0.048, d1=-0.014
	// n=3: y=0.048
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	s := NewSection(c)

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, w)
		}
	}
}

func TestProcessBlockMatchesSample(t *testing.T) {
	c := LowpassFirstOrder(200, 48000)
	a := NewSection(c)
	b := NewSection(c)

	for _, n := range []int{1, 2, 7, 64, 513} {
		src := testutil.Noise(int64(n), 1, n)
		want := make([]float64, n)
		for i, x := range src {
			want[i] = a.ProcessSample(x)
		}
		got := append([]float64(nil), src...)
		b.ProcessBlock(got)
		testutil.RequireSliceNearlyEqual(t, got, want, eps)
	}
}

func TestProcessBlockToEmpty(t *testing.T) {
	s := NewSection(Coefficients{B0: 1})
	s.ProcessBlockTo(nil, nil)
}

func TestReset(t *testing.T) {
	s := NewSection(LowpassFirstOrder(1000, 48000))
	s.ProcessSample(1)
	s.Reset()
	if st := s.State(); st != [2]float64{0, 0} {
		t.Fatalf("state after reset: %v", st)
	}
}

func TestLowpassFirstOrderResponse(t *testing.T) {
	c := LowpassFirstOrder(200, 48000)
	if db := c.MagnitudeDB(0.001, 48000); math.Abs(db) > 1e-6 {
		t.Errorf("DC gain: %v dB", db)
	}
	if db := c.MagnitudeDB(200, 48000); math.Abs(db+3.0103) > 0.01 {
		t.Errorf("cutoff: %v dB, want -3.01", db)
	}
	if db := c.MagnitudeDB(2000, 48000); db > -19 {
		t.Errorf("decade above cutoff: %v dB", db)
	}
	// Bilinear zero at Nyquist.
	if mag := cmplx.Abs(c.Response(24000, 48000)); mag > 1e-9 {
		t.Errorf("Nyquist magnitude: %v", mag)
	}
}

func TestLowpassFirstOrderDegenerate(t *testing.T) {
	c := LowpassFirstOrder(0, 48000)
	if c != (Coefficients{B0: 1}) {
		t.Fatalf("degenerate cutoff must pass through, got %+v", c)
	}
	c = LowpassFirstOrder(40000, 48000)
	for _, v := range []float64{c.B0, c.B1, c.A1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite coefficient for cutoff above Nyquist: %+v", c)
		}
	}
}
