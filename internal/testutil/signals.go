// Package testutil holds deterministic signal generators and numeric
// assertions shared by package tests.
package testutil

import (
	"math"
	"math/rand"
)

// Sine generates a deterministic sine wave starting at phase 0.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Noise generates uniform white noise in [-amplitude, amplitude) with a fixed
// seed.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Ones returns length samples of 1.
func Ones(length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = 1
	}
	return out
}

// Impulse generates a unit impulse at pos.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// CapsulePair returns front and back capsule signals as independent noise
// bursts, the way an uncorrelated diffuse field excites a dual-membrane
// capsule.
func CapsulePair(seed int64, amplitude float64, length int) [][]float64 {
	return [][]float64{
		Noise(seed, amplitude, length),
		Noise(seed+1, amplitude, length),
	}
}

// Blocks splits length into consecutive block sizes cycling through sizes.
func Blocks(length int, sizes ...int) []int {
	if len(sizes) == 0 {
		return []int{length}
	}
	var out []int
	for i, left := 0, length; left > 0; i++ {
		n := min(sizes[i%len(sizes)], left)
		out = append(out, n)
		left -= n
	}
	return out
}
