package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/core"
)

// DefaultFFTSize is the smallest transform Analyze uses.
const DefaultFFTSize = 4096

// ErrEmptyResponse is returned for empty impulse responses.
var ErrEmptyResponse = errors.New("spectrum: empty impulse response")

// Response is the frequency response of an impulse response on the bins
// 0..FFTSize/2.
type Response struct {
	SampleRate float64
	FFTSize    int
	// Freqs holds the bin frequencies in Hz.
	Freqs []float64
	// Mag holds the linear magnitude per bin.
	Mag []float64
	// Phase holds the unwrapped phase per bin in radians.
	Phase []float64
	// Delay holds the group delay per bin in samples.
	Delay []float64
}

// Analyze transforms h, zero padded to the next power of two that is at
// least fftSize, len(h) and DefaultFFTSize.
func Analyze(h []float64, sampleRate float64, fftSize int) (*Response, error) {
	if len(h) == 0 {
		return nil, ErrEmptyResponse
	}
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("spectrum: sample rate must be > 0: %v", sampleRate)
	}
	n := DefaultFFTSize
	for n < fftSize || n < len(h) {
		n <<= 1
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}
	buf := make([]complex128, n)
	for i, v := range h {
		buf[i] = complex(v, 0)
	}
	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k, c := range buf[:bins] {
		re[k], im[k] = real(c), imag(c)
	}

	r := &Response{
		SampleRate: sampleRate,
		FFTSize:    n,
		Freqs:      make([]float64, bins),
		Mag:        make([]float64, bins),
		Phase:      make([]float64, bins),
	}
	vecmath.Magnitude(r.Mag, re, im)

	var prev, offset float64
	for k := range r.Phase {
		ph := math.Atan2(im[k], re[k])
		if k > 0 {
			switch d := ph - prev; {
			case d > math.Pi:
				offset -= 2 * math.Pi
			case d < -math.Pi:
				offset += 2 * math.Pi
			}
		}
		prev = ph
		r.Phase[k] = ph + offset
		r.Freqs[k] = float64(k) * sampleRate / float64(n)
	}
	r.Delay = groupDelay(r.Phase, n)
	return r, nil
}

// groupDelay differentiates unwrapped phase over the bins of an n-point
// transform: centered inside, one-sided at both ends.
func groupDelay(phase []float64, n int) []float64 {
	out := make([]float64, len(phase))
	if len(phase) < 2 {
		return out
	}
	dw := 2 * math.Pi / float64(n)
	last := len(phase) - 1
	for k := range phase {
		var d float64
		switch k {
		case 0:
			d = phase[1] - phase[0]
		case last:
			d = phase[last] - phase[last-1]
		default:
			d = (phase[k+1] - phase[k-1]) / 2
		}
		out[k] = -d / dw
	}
	return out
}

// at interpolates the per-bin values ys linearly at f Hz. Frequencies
// outside the analyzed band take the edge value.
func (r *Response) at(ys []float64, f float64) float64 {
	x := f * float64(r.FFTSize) / r.SampleRate
	last := len(ys) - 1
	switch {
	case !(x > 0):
		return ys[0]
	case x >= float64(last):
		return ys[last]
	}
	k := int(x)
	t := x - float64(k)
	return ys[k] + t*(ys[k+1]-ys[k])
}

// MagnitudeAt returns the linear magnitude at f Hz.
func (r *Response) MagnitudeAt(f float64) float64 {
	return r.at(r.Mag, f)
}

// MagnitudeDBAt returns the magnitude at f Hz in dB.
func (r *Response) MagnitudeDBAt(f float64) float64 {
	return core.LinearToDB(r.MagnitudeAt(f))
}

// GroupDelayAt returns the group delay at f Hz in samples.
func (r *Response) GroupDelayAt(f float64) float64 {
	return r.at(r.Delay, f)
}

// Smoothed returns the linear magnitude averaged over a 1/fraction-octave
// band centred on each of the given frequencies. Bands narrower than a bin
// fall back to the interpolated magnitude.
func (r *Response) Smoothed(fraction int, at []float64) ([]float64, error) {
	if fraction <= 0 {
		return nil, fmt.Errorf("spectrum: smoothing fraction must be > 0: %d", fraction)
	}
	half := math.Pow(2, 1/(2*float64(fraction)))
	binHz := r.SampleRate / float64(r.FFTSize)
	last := len(r.Mag) - 1

	out := make([]float64, len(at))
	for i, f := range at {
		if !core.IsFinite(f) || f <= 0 {
			return nil, fmt.Errorf("spectrum: smoothing frequency must be > 0: %v", f)
		}
		lo := max(1, int(math.Ceil(f/half/binHz)))
		hi := min(last, int(math.Floor(f*half/binHz)))
		if lo > hi {
			out[i] = r.MagnitudeAt(f)
			continue
		}
		sum := 0.0
		for _, m := range r.Mag[lo : hi+1] {
			sum += m
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out, nil
}
