package resample

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/filter/fir"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/internal/testutil"
)

func lowpass(t *testing.T, n int, cutoff, fs float64) []float64 {
	t.Helper()
	d, err := fir.NewDesigner(n)
	if err != nil {
		t.Fatal(err)
	}
	h := make([]float64, n)
	if err := d.LowpassInto(h, cutoff, fs); err != nil {
		t.Fatal(err)
	}
	return h
}

func TestKernelIdentityAtSameRate(t *testing.T) {
	h := testutil.Noise(1, 1, 100)
	got, err := Kernel(h, 48000, 48000, 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, h, 1e-12)
}

func TestKernelLeadShifts(t *testing.T) {
	h := testutil.Noise(2, 1, 50)
	got, err := Kernel(h, 48000, 48000, 60, 10)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got[10:], h, 1e-12)
	for i := 0; i < 10; i++ {
		if math.Abs(got[i]) > 1e-12 {
			t.Fatalf("lead sample %d = %v", i, got[i])
		}
	}
}

func TestKernelPreservesMagnitude(t *testing.T) {
	h := lowpass(t, 63, 8000, 48000)

	for _, dstRate := range []float64{44100, 88200, 96000} {
		lead := 40
		n := int(math.Ceil(float64(len(h))*dstRate/48000)) + 2*lead
		got, err := Kernel(h, 48000, dstRate, n, lead)
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireFinite(t, got)
		for _, f := range []float64{100, 1000, 5000} {
			want := cmplx.Abs(fir.Response(h, f, 48000))
			have := cmplx.Abs(fir.Response(got, f, dstRate))
			if db := 20 * math.Log10(have/want); math.Abs(db) > 0.05 {
				t.Errorf("%v Hz at %v: deviation %.4f dB", f, dstRate, db)
			}
		}
	}
}

func TestKernelValidation(t *testing.T) {
	h := []float64{1}
	if _, err := Kernel(h, 0, 48000, 8, 0); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("expected ErrInvalidRate, got %v", err)
	}
	if _, err := Kernel(h, 48000, math.NaN(), 8, 0); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("expected ErrInvalidRate, got %v", err)
	}
	if _, err := Kernel(h, 48000, 44100, 0, 0); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
	if _, err := Kernel(h, 48000, 44100, 8, -1); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
	if _, err := Kernel(nil, 48000, 44100, 8, 0); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
}

func TestKernelOptions(t *testing.T) {
	h := testutil.Impulse(16, 3)
	a, err := Kernel(h, 48000, 44100, 40, 20, WithHalfWidth(8), WithKaiserBeta(5))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Kernel(h, 48000, 44100, 40, 20)
	if err != nil {
		t.Fatal(err)
	}
	// A narrower kernel leaves the far pre-ringing empty.
	if a[5] != 0 {
		t.Errorf("half-width 8 reached sample 5: %v", a[5])
	}
	if b[5] == 0 {
		t.Error("default half-width should reach sample 5")
	}
}
