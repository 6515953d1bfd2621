package crossover

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/core"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/filter/fir"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/internal/testutil"
)

func mustNew(t *testing.T, fs float64, channels, block int) *Bank {
	t.Helper()
	b, err := New(fs, channels, block)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

// run splits x block by block and returns the per-band outputs.
func run(t *testing.T, b *Bank, ch int, x []float64, block int) [][]float64 {
	t.Helper()
	out := core.Planar(b.NumBands(), len(x))
	bands := core.Planar(MaxBands, block)
	for start := 0; start < len(x); start += block {
		end := min(start+block, len(x))
		b.Split(ch, x[start:end], bands)
		for k := 0; k < b.NumBands(); k++ {
			copy(out[k][start:end], bands[k][:end-start])
		}
	}
	return out
}

func sumBands(bands [][]float64) []float64 {
	sum := make([]float64, len(bands[0]))
	for _, band := range bands {
		for i, v := range band {
			sum[i] += v
		}
	}
	return sum
}

func TestNewValidation(t *testing.T) {
	if _, err := New(0, 2, 512); err == nil {
		t.Error("expected error for zero sample rate")
	}
	if _, err := New(48000, 3, 512); err == nil {
		t.Error("expected error for three channels")
	}
	if _, err := New(48000, 2, 0); err == nil {
		t.Error("expected error for zero block size")
	}
}

func TestLatency(t *testing.T) {
	for fs, want := range map[float64]int{44100: 184, 48000: 200, 96000: 401} {
		b := mustNew(t, fs, 1, 256)
		if b.Latency() != want {
			t.Errorf("fs=%v: Latency=%d want %d", fs, b.Latency(), want)
		}
		if b.Taps() != 2*want+1 {
			t.Errorf("fs=%v: Taps=%d", fs, b.Taps())
		}
	}
}

func TestPerfectReconstructionDefaults(t *testing.T) {
	const block = 512
	b := mustNew(t, 48000, 2, block)
	x := testutil.Impulse(4096, 0)
	for i := range x {
		x[i] *= 0.5
	}

	for bands := 2; bands <= MaxBands; bands++ {
		if err := b.Configure(DefaultFrequencies(bands)); err != nil {
			t.Fatal(err)
		}
		for ch := 0; ch < 2; ch++ {
			sum := sumBands(run(t, b, ch, x, block))
			want := make([]float64, len(x))
			want[b.Latency()] = 0.5
			testutil.RequireSliceNearlyEqual(t, sum, want, 1e-6)
		}
	}
}

func TestPerfectReconstructionRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, fs := range []float64{44100, 48000, 96000} {
		b := mustNew(t, fs, 1, 300)
		x := testutil.Noise(3, 1, 3000)
		for trial := 0; trial < 4; trial++ {
			bands := 2 + trial
			freqs := make([]float64, bands-1)
			for i := range freqs {
				freqs[i] = FromNormalized(bands, i, rng.Float64())
			}
			if err := b.Configure(freqs); err != nil {
				t.Fatal(err)
			}
			sum := sumBands(run(t, b, 0, x, 300))
			want := make([]float64, len(x))
			copy(want[b.Latency():], x)
			testutil.RequireSliceNearlyEqual(t, sum, want, 1e-6)
		}
	}
}

func TestSingleBandIsDelayedInput(t *testing.T) {
	b := mustNew(t, 48000, 1, 128)
	if err := b.Configure(nil); err != nil {
		t.Fatal(err)
	}
	x := testutil.Noise(5, 1, 1000)
	out := run(t, b, 0, x, 128)
	if len(out) != 1 {
		t.Fatalf("bands = %d", len(out))
	}
	want := make([]float64, len(x))
	copy(want[200:], x)
	testutil.RequireSliceNearlyEqual(t, out[0], want, 0)
}

func TestBandSeparation(t *testing.T) {
	const fs = 48000
	b := mustNew(t, fs, 1, 1024)
	if err := b.Configure([]float64{1000, 8000}); err != nil {
		t.Fatal(err)
	}
	x := testutil.Impulse(2048, 0)
	out := run(t, b, 0, x, 1024)

	// Each band passes its own region and rejects the others.
	tests := []struct {
		band int
		pass float64
		stop []float64
	}{
		{0, 200, []float64{3000, 12000}},
		{1, 3000, []float64{100, 16000}},
		{2, 16000, []float64{300, 4000}},
	}
	for _, tt := range tests {
		ir := out[tt.band][:b.Taps()]
		if db := fir.MagnitudeDB(ir, tt.pass, fs); math.Abs(db) > 0.1 {
			t.Errorf("band %d passband at %v Hz: %.3f dB", tt.band, tt.pass, db)
		}
		for _, f := range tt.stop {
			if db := fir.MagnitudeDB(ir, f, fs); db > -40 {
				t.Errorf("band %d stopband at %v Hz: %.3f dB", tt.band, f, db)
			}
		}
	}
}

func TestConfigureClampsAndReports(t *testing.T) {
	b := mustNew(t, 48000, 1, 64)
	if err := b.Configure([]float64{5, 50000, math.NaN()}); err != nil {
		t.Fatal(err)
	}
	got := b.Frequencies()
	want := []float64{120, 2500, 4000}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
	if b.NumBands() != 4 {
		t.Fatalf("NumBands = %d", b.NumBands())
	}
	if err := b.Configure(make([]float64, 5)); !errors.Is(err, ErrBandCount) {
		t.Fatalf("expected ErrBandCount, got %v", err)
	}
}

func TestLowSampleRateStaysFinite(t *testing.T) {
	b := mustNew(t, 16000, 1, 64)
	if err := b.Configure(DefaultFrequencies(5)); err != nil {
		t.Fatal(err)
	}
	x := testutil.Noise(9, 1, 640)
	sum := sumBands(run(t, b, 0, x, 64))
	testutil.RequireFinite(t, sum)
	want := make([]float64, len(x))
	copy(want[b.Latency():], x)
	testutil.RequireSliceNearlyEqual(t, sum, want, 1e-6)
}

func TestConfigureAndSplitDoNotAllocate(t *testing.T) {
	b := mustNew(t, 48000, 2, 256)
	freqs := DefaultFrequencies(5)
	bands := core.Planar(MaxBands, 256)
	x := testutil.Noise(1, 1, 256)
	allocs := testing.AllocsPerRun(5, func() {
		_ = b.Configure(freqs)
		b.Split(0, x, bands)
		b.Split(1, x, bands)
	})
	if allocs != 0 {
		t.Fatalf("allocations per run: %v", allocs)
	}
}
