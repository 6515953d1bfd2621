package fir

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/window"
)

const (
	// ReferenceRate is the rate at which ReferenceLength taps are used.
	ReferenceRate = 48000.0
	// ReferenceLength is the crossover kernel length at ReferenceRate.
	ReferenceLength = 401
	// Beta is the Kaiser shape used for every lowpass prototype.
	Beta = 6.0
)

// IRLength returns the odd kernel length for sampleRate, scaled from
// ReferenceLength at ReferenceRate.
func IRLength(sampleRate float64) int {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return ReferenceLength
	}
	n := int(math.Ceil(ReferenceLength * sampleRate / ReferenceRate))
	if n%2 == 0 {
		n++
	}
	return max(n, 3)
}

// Latency returns the group delay in samples of a kernel of IRLength.
func Latency(sampleRate float64) int {
	return (IRLength(sampleRate) - 1) / 2
}

// Designer writes Kaiser-windowed sinc lowpass kernels of one fixed length.
// The window is computed once so design calls do not allocate.
type Designer struct {
	win []float64
}

// NewDesigner returns a designer for odd kernel length n.
func NewDesigner(n int) (*Designer, error) {
	if n < 3 || n%2 == 0 {
		return nil, fmt.Errorf("fir: kernel length must be odd and >= 3: %d", n)
	}
	win, err := window.Kaiser(n, Beta)
	if err != nil {
		return nil, err
	}
	return &Designer{win: win}, nil
}

// Len returns the kernel length.
func (d *Designer) Len() int {
	return len(d.win)
}

// LowpassInto writes a lowpass kernel with cutoff (Hz, -6 dB point) into dst
// and normalizes it to unity DC gain. len(dst) must equal Len().
func (d *Designer) LowpassInto(dst []float64, cutoff, sampleRate float64) error {
	n := len(d.win)
	if len(dst) != n {
		return fmt.Errorf("fir: kernel length mismatch: got %d want %d", len(dst), n)
	}
	if sampleRate <= 0 || cutoff <= 0 || cutoff >= sampleRate/2 {
		return fmt.Errorf("fir: cutoff %.3f Hz out of range for %.1f Hz", cutoff, sampleRate)
	}

	fc := cutoff / sampleRate
	m := (n - 1) / 2
	sum := 0.0
	for i := 0; i < n; i++ {
		x := 2 * fc * float64(i-m)
		v := 2 * fc * sinc(x) * d.win[i]
		dst[i] = v
		sum += v
	}
	inv := 1 / sum
	for i := range dst {
		dst[i] *= inv
	}
	return nil
}

// Response returns the complex frequency response of kernel h at freqHz.
func Response(h []float64, freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var r complex128
	for k, c := range h {
		r += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return r
}

// MagnitudeDB returns the magnitude response of h in dB at freqHz.
func MagnitudeDB(h []float64, freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(Response(h, freqHz, sampleRate)))
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
