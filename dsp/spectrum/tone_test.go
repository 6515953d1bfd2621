package spectrum

import (
	"math"
	"testing"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/conv"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/filter/fir"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/internal/testutil"
)

func TestToneAmplitude(t *testing.T) {
	// 1 kHz completes exactly 20 cycles in 960 samples at 48 kHz.
	sig := testutil.Sine(1000, 48000, 0.25, 960)
	a, err := ToneAmplitude(sig, 1000, 48000)
	if err != nil {
		t.Fatalf("ToneAmplitude: %v", err)
	}
	if math.Abs(a-0.25) > 1e-9 {
		t.Errorf("amplitude = %v, want 0.25", a)
	}

	off, _ := ToneAmplitude(sig, 3000, 48000)
	if off > 1e-9 {
		t.Errorf("amplitude at 3 kHz = %v, want 0", off)
	}

	if a, _ := ToneAmplitude(nil, 1000, 48000); a != 0 {
		t.Errorf("empty input amplitude = %v", a)
	}
}

func TestToneAmplitudeMixture(t *testing.T) {
	lo := testutil.Sine(500, 48000, 0.7, 4800)
	hi := testutil.Sine(6000, 48000, 0.2, 4800)
	mix := make([]float64, len(lo))
	for i := range mix {
		mix[i] = lo[i] + hi[i]
	}
	for _, tt := range []struct{ f, want float64 }{{500, 0.7}, {6000, 0.2}, {2000, 0}} {
		a, err := ToneAmplitude(mix, tt.f, 48000)
		if err != nil {
			t.Fatalf("ToneAmplitude: %v", err)
		}
		if math.Abs(a-tt.want) > 1e-9 {
			t.Errorf("%v Hz: amplitude %v, want %v", tt.f, a, tt.want)
		}
	}
}

func TestToneAmplitudeThroughLowpass(t *testing.T) {
	d, err := fir.NewDesigner(401)
	if err != nil {
		t.Fatalf("NewDesigner: %v", err)
	}
	h := make([]float64, 401)
	if err := d.LowpassInto(h, 1000, 48000); err != nil {
		t.Fatalf("LowpassInto: %v", err)
	}

	for _, tt := range []struct{ f, want, tol float64 }{
		{200, 1, 2e-3},
		{5000, 0, 1e-2},
	} {
		y, err := conv.Direct(testutil.Sine(tt.f, 48000, 1, 5200), h)
		if err != nil {
			t.Fatalf("Direct: %v", err)
		}
		// Skip the filter's settling; 4800 samples hold whole periods of both tones.
		a, err := ToneAmplitude(y[400:5200], tt.f, 48000)
		if err != nil {
			t.Fatalf("ToneAmplitude: %v", err)
		}
		if math.Abs(a-tt.want) > tt.tol {
			t.Errorf("%v Hz through 1 kHz lowpass: amplitude %v, want %v", tt.f, a, tt.want)
		}
	}
}

func TestToneAmplitudeValidation(t *testing.T) {
	for _, tc := range []struct{ f, fs float64 }{
		{1000, 0},
		{0, 48000},
		{-1, 48000},
		{24001, 48000},
		{math.NaN(), 48000},
	} {
		if _, err := ToneAmplitude([]float64{1}, tc.f, tc.fs); err == nil {
			t.Errorf("ToneAmplitude(%v, %v) should fail", tc.f, tc.fs)
		}
	}
}
