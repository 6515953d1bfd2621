package crossover

import "math"

const (
	// MaxBands is the largest supported band count.
	MaxBands = 5
	// MaxCrossovers is the largest number of crossover points.
	MaxCrossovers = MaxBands - 1
)

// Range is the allowed interval of one crossover frequency in Hz.
type Range struct {
	Min, Max float64
}

// Clamp limits hz to r. NaN maps to the lower bound.
func (r Range) Clamp(hz float64) float64 {
	if math.IsNaN(hz) || hz < r.Min {
		return r.Min
	}
	if hz > r.Max {
		return r.Max
	}
	return hz
}

var ranges = [MaxBands + 1][MaxCrossovers]Range{
	2: {{120, 12000}},
	3: {{120, 1000}, {2000, 12000}},
	4: {{120, 450}, {900, 2500}, {4000, 12000}},
	5: {{120, 200}, {500, 1100}, {2200, 4000}, {7000, 12000}},
}

var defaults = [MaxBands + 1][MaxCrossovers]float64{
	2: {1000},
	3: {250, 3000},
	4: {200, 1000, 5000},
	5: {150, 600, 2600, 8000},
}

// ValidBands reports whether bands is a supported band count.
func ValidBands(bands int) bool {
	return bands >= 1 && bands <= MaxBands
}

// RangeFor returns the range of crossover idx at the given band count. ok is
// false when the pair does not exist.
func RangeFor(bands, idx int) (r Range, ok bool) {
	if !ValidBands(bands) || idx < 0 || idx >= bands-1 {
		return Range{}, false
	}
	return ranges[bands][idx], true
}

// DefaultFrequencies returns the default crossover frequencies for a band
// count, or nil when bands has no crossovers or is invalid.
func DefaultFrequencies(bands int) []float64 {
	if !ValidBands(bands) || bands == 1 {
		return nil
	}
	out := make([]float64, bands-1)
	copy(out, defaults[bands][:bands-1])
	return out
}

// DefaultFrequency returns the default of one crossover, 0 when it does not
// exist.
func DefaultFrequency(bands, idx int) float64 {
	if _, ok := RangeFor(bands, idx); !ok {
		return 0
	}
	return defaults[bands][idx]
}

// FromNormalized maps a slider value in [0,1] to Hz, linear inside the
// crossover's own range. Values outside [0,1] are clamped.
func FromNormalized(bands, idx int, v float64) float64 {
	r, ok := RangeFor(bands, idx)
	if !ok {
		return 0
	}
	if math.IsNaN(v) {
		v = 0
	}
	v = math.Max(0, math.Min(1, v))
	return r.Min + v*(r.Max-r.Min)
}

// ToNormalized maps Hz to a slider value in [0,1]. hz is clamped first.
func ToNormalized(bands, idx int, hz float64) float64 {
	r, ok := RangeFor(bands, idx)
	if !ok {
		return 0
	}
	return (r.Clamp(hz) - r.Min) / (r.Max - r.Min)
}

// Clamp limits each of freqs to its range for the given band count, in place.
// Since the ranges are disjoint and ordered, the result is strictly
// increasing. Entries beyond bands-1 are left untouched.
func Clamp(bands int, freqs []float64) {
	for i := range freqs {
		r, ok := RangeFor(bands, i)
		if !ok {
			return
		}
		freqs[i] = r.Clamp(freqs[i])
	}
}
