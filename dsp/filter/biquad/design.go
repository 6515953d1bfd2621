package biquad

import "math"

// LowpassFirstOrder returns a bilinear-transform first-order lowpass with a
// -3 dB point at cutoff Hz. The cutoff is pre-warped and clamped below
// Nyquist.
func LowpassFirstOrder(cutoff, sampleRate float64) Coefficients {
	if sampleRate <= 0 || cutoff <= 0 {
		return Coefficients{B0: 1}
	}
	cutoff = math.Min(cutoff, 0.49*sampleRate)
	k := math.Tan(math.Pi * cutoff / sampleRate)
	norm := 1 / (1 + k)
	return Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}
