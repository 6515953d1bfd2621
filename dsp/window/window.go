// Package window generates the tapers used by the FIR designers and the
// kernel resampler.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeKaiser
)

// Option configures window generation.
type Option func(*config)

type config struct {
	beta     float64
	periodic bool
}

// WithBeta sets the Kaiser shape parameter.
func WithBeta(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.beta = v
		}
	}
}

// WithPeriodic configures periodic form instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}
	out := make([]float64, length)
	GenerateInto(out, t, opts...)
	return out
}

// GenerateInto fills dst with window coefficients without allocating.
func GenerateInto(dst []float64, t Type, opts ...Option) {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := len(dst)
	for i := range dst {
		x := samplePosition(i, n, cfg.periodic)
		switch t {
		case TypeHann:
			dst[i] = 0.5 - 0.5*math.Cos(2*math.Pi*x)
		case TypeKaiser:
			dst[i] = KaiserAt(2*x-1, cfg.beta)
		default:
			dst[i] = 1
		}
	}
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}
	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// Hann returns symmetric Hann window coefficients.
func Hann(size int) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}
	return Generate(TypeHann, size), nil
}

// Kaiser returns symmetric Kaiser window coefficients.
func Kaiser(size int, beta float64) ([]float64, error) {
	if err := validateKaiser(size, beta); err != nil {
		return nil, err
	}
	return Generate(TypeKaiser, size, WithBeta(beta)), nil
}

// KaiserAt evaluates the Kaiser window at r in [-1, 1] (0 is the centre).
// Values outside the support return 0.
func KaiserAt(r, beta float64) float64 {
	if r < -1 || r > 1 {
		return 0
	}
	if beta <= 0 {
		return 1
	}
	return BesselI0(beta*math.Sqrt(1-r*r)) / BesselI0(beta)
}

// KaiserBeta returns the Kaiser beta for a target stopband attenuation in dB.
func KaiserBeta(attenuationDB float64) float64 {
	switch {
	case attenuationDB > 50:
		return 0.1102 * (attenuationDB - 8.7)
	case attenuationDB >= 21:
		return 0.5842*math.Pow(attenuationDB-21, 0.4) + 0.07886*(attenuationDB-21)
	default:
		return 0
	}
}

// FadeOut applies a half-Hann taper to the last n samples of buf so the
// final sample reaches zero.
func FadeOut(buf []float64, n int) {
	if n <= 0 {
		return
	}
	n = min(n, len(buf))
	start := len(buf) - n
	for i := 0; i < n; i++ {
		buf[start+i] *= 0.5 + 0.5*math.Cos(math.Pi*float64(i+1)/float64(n))
	}
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0.5
	}
	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}
	return float64(n) / den
}

// BesselI0 returns the zeroth-order modified Bessel function of the first
// kind, summed as a power series to full double precision.
func BesselI0(x float64) float64 {
	sum := 1.0
	term := 1.0
	half := x / 2
	for k := 1; k < 200; k++ {
		f := half / float64(k)
		term *= f * f
		sum += term
		if term < sum*1e-17 {
			break
		}
	}
	return sum
}
