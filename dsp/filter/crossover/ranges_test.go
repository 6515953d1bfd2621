package crossover

import (
	"math"
	"testing"
)

func TestRangeTables(t *testing.T) {
	tests := []struct {
		bands int
		want  []Range
	}{
		{2, []Range{{120, 12000}}},
		{3, []Range{{120, 1000}, {2000, 12000}}},
		{4, []Range{{120, 450}, {900, 2500}, {4000, 12000}}},
		{5, []Range{{120, 200}, {500, 1100}, {2200, 4000}, {7000, 12000}}},
	}
	for _, tt := range tests {
		for i, w := range tt.want {
			r, ok := RangeFor(tt.bands, i)
			if !ok || r != w {
				t.Errorf("bands=%d idx=%d: got %v,%v want %v", tt.bands, i, r, ok, w)
			}
		}
		if _, ok := RangeFor(tt.bands, len(tt.want)); ok {
			t.Errorf("bands=%d: unexpected range at %d", tt.bands, len(tt.want))
		}
	}
	for _, bands := range []int{0, 1, 6} {
		if _, ok := RangeFor(bands, 0); ok {
			t.Errorf("bands=%d: unexpected range", bands)
		}
	}
}

func TestDefaultFrequencies(t *testing.T) {
	want := map[int][]float64{
		2: {1000},
		3: {250, 3000},
		4: {200, 1000, 5000},
		5: {150, 600, 2600, 8000},
	}
	for bands, w := range want {
		got := DefaultFrequencies(bands)
		if len(got) != len(w) {
			t.Fatalf("bands=%d: got %v want %v", bands, got, w)
		}
		for i := range w {
			if got[i] != w[i] || DefaultFrequency(bands, i) != w[i] {
				t.Errorf("bands=%d idx=%d: got %v want %v", bands, i, got[i], w[i])
			}
			r, _ := RangeFor(bands, i)
			if w[i] < r.Min || w[i] > r.Max {
				t.Errorf("default %v outside %v", w[i], r)
			}
		}
	}
	if DefaultFrequencies(1) != nil || DefaultFrequencies(7) != nil {
		t.Error("expected nil for bands without crossovers")
	}
	if DefaultFrequency(2, 3) != 0 {
		t.Error("expected 0 for missing crossover")
	}
}

func TestNormalizedRoundTrip(t *testing.T) {
	for bands := 2; bands <= MaxBands; bands++ {
		for idx := 0; idx < bands-1; idx++ {
			for _, v := range []float64{0, 0.1, 0.5, 0.77, 1} {
				hz := FromNormalized(bands, idx, v)
				if back := ToNormalized(bands, idx, hz); math.Abs(back-v) > 1e-12 {
					t.Errorf("bands=%d idx=%d v=%v: round trip %v", bands, idx, v, back)
				}
			}
		}
	}
	if got := FromNormalized(3, 1, 0.5); got != 7000 {
		t.Errorf("FromNormalized(3,1,0.5) = %v, want 7000", got)
	}
	if got := FromNormalized(2, 0, 2); got != 12000 {
		t.Errorf("FromNormalized clamps above: %v", got)
	}
	if got := FromNormalized(2, 0, math.NaN()); got != 120 {
		t.Errorf("FromNormalized(NaN) = %v", got)
	}
	if got := ToNormalized(4, 1, 100); got != 0 {
		t.Errorf("ToNormalized clamps below: %v", got)
	}
	if FromNormalized(1, 0, 0.5) != 0 || ToNormalized(6, 0, 100) != 0 {
		t.Error("invalid pairs must map to 0")
	}
}

func TestClampKeepsOrder(t *testing.T) {
	freqs := []float64{20000, 10, 100000, -5}
	Clamp(5, freqs)
	want := []float64{200, 500, 4000, 7000}
	for i := range want {
		if freqs[i] != want[i] {
			t.Fatalf("Clamp = %v want %v", freqs, want)
		}
	}
	for i := 1; i < len(freqs); i++ {
		if freqs[i] <= freqs[i-1] {
			t.Fatalf("not strictly increasing: %v", freqs)
		}
	}

	extra := []float64{50, 99}
	Clamp(2, extra)
	if extra[0] != 120 || extra[1] != 99 {
		t.Fatalf("entries beyond the band count must be untouched: %v", extra)
	}
}
