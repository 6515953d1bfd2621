package spectrum

import (
	"fmt"
	"math"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/core"
)

// ToneAmplitude returns the peak amplitude of the sinusoid at freq Hz in x,
// evaluated with the Goertzel recurrence. Leakage from other components
// vanishes when x spans a whole number of their periods.
func ToneAmplitude(x []float64, freq, sampleRate float64) (float64, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return 0, fmt.Errorf("spectrum: sample rate must be > 0: %v", sampleRate)
	}
	if !core.IsFinite(freq) || freq <= 0 || freq > sampleRate/2 {
		return 0, fmt.Errorf("spectrum: tone frequency must be in (0, %v]: %v", sampleRate/2, freq)
	}
	if len(x) == 0 {
		return 0, nil
	}

	c := 2 * math.Cos(2*math.Pi*freq/sampleRate)
	var s1, s2 float64
	for _, v := range x {
		s1, s2 = v+c*s1-s2, s1
	}
	p := s1*s1 + s2*s2 - c*s1*s2
	return 2 * math.Sqrt(math.Max(p, 0)) / float64(len(x)), nil
}
