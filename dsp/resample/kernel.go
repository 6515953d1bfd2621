package resample

import (
	"errors"
	"fmt"
	"math"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/window"
)

var (
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
	// ErrInvalidLength indicates an invalid output length or lead.
	ErrInvalidLength = errors.New("resample: invalid length")
)

const (
	// DefaultHalfWidth is the interpolation half-width in output-rate samples.
	DefaultHalfWidth = 32
	// DefaultKaiserBeta shapes the interpolation window.
	DefaultKaiserBeta = 8.0
)

type config struct {
	halfWidth  int
	kaiserBeta float64
}

// Option configures the resampler.
type Option func(*config)

// WithHalfWidth overrides the interpolation half-width.
func WithHalfWidth(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.halfWidth = n
		}
	}
}

// WithKaiserBeta overrides the Kaiser window beta parameter.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta >= 0 {
			cfg.kaiserBeta = beta
		}
	}
}

// Kernel returns h resampled from srcRate to dstRate as dstLen samples,
// delayed by lead output samples. Gain is scaled by srcRate/dstRate so the
// magnitude response is preserved.
func Kernel(h []float64, srcRate, dstRate float64, dstLen, lead int, opts ...Option) ([]float64, error) {
	out := make([]float64, max(dstLen, 0))
	if err := KernelInto(out, h, srcRate, dstRate, lead, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// KernelInto is Kernel writing len(dst) samples into dst.
func KernelInto(dst, h []float64, srcRate, dstRate float64, lead int, opts ...Option) error {
	if !validRate(srcRate) || !validRate(dstRate) {
		return fmt.Errorf("%w: %v -> %v", ErrInvalidRate, srcRate, dstRate)
	}
	if len(dst) == 0 || len(h) == 0 || lead < 0 {
		return fmt.Errorf("%w: dst=%d src=%d lead=%d", ErrInvalidLength, len(dst), len(h), lead)
	}

	cfg := config{halfWidth: DefaultHalfWidth, kaiserBeta: DefaultKaiserBeta}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	step := srcRate / dstRate // source samples per output sample
	r := math.Min(1, dstRate/srcRate)
	// Support of the interpolation kernel in source samples.
	support := float64(cfg.halfWidth) * math.Max(1, step)
	gain := step * r

	for n := range dst {
		t := float64(n-lead) * step
		lo := max(int(math.Ceil(t-support)), 0)
		hi := min(int(math.Floor(t+support)), len(h)-1)
		var acc float64
		for k := lo; k <= hi; k++ {
			x := t - float64(k)
			acc += h[k] * sinc(r*x) * window.KaiserAt(x/support, cfg.kaiserBeta)
		}
		dst[n] = gain * acc
	}
	return nil
}

func validRate(fs float64) bool {
	return fs > 0 && !math.IsNaN(fs) && !math.IsInf(fs, 0)
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
