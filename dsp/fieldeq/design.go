package fieldeq

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/window"
)

const (
	// DesignRate is the sample rate kernels are designed at.
	DesignRate = 48000.0
	// KernelLength is the kernel length at DesignRate.
	KernelLength = 512
	// MaxCorrectionDB limits boost and cut.
	MaxCorrectionDB = 12.0
	// TaperStart is where the correction starts fading to unity.
	TaperStart = 20000.0

	cepstrumSize = 4096
	fadeTaps     = 64
)

// Design returns the minimum-phase EQ kernel for mode and directivity d at
// DesignRate. Mode None yields a unit impulse.
func Design(mode Mode, d float64) ([]float64, error) {
	h := make([]float64, KernelLength)
	if mode == None {
		h[0] = 1
		return h, nil
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("fieldeq: invalid mode %d", mode)
	}

	mag := make([]float64, cepstrumSize/2+1)
	for k := range mag {
		f := float64(k) * DesignRate / cepstrumSize
		mag[k] = targetGain(mode, d, f)
	}
	if err := minimumPhase(h, mag); err != nil {
		return nil, err
	}
	window.FadeOut(h, fadeTaps)
	return h, nil
}

// minimumPhase writes len(dst) taps of the minimum-phase impulse response
// whose magnitude at the non-negative FFT bins is mag, using the folded
// real cepstrum.
func minimumPhase(dst, mag []float64) error {
	n := 2 * (len(mag) - 1)
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return fmt.Errorf("fieldeq: failed to create FFT plan: %w", err)
	}

	buf := make([]complex128, n)
	for k := 0; k < n; k++ {
		var m float64
		if k < len(mag) {
			m = mag[k]
		} else {
			m = mag[n-k]
		}
		buf[k] = complex(math.Log(math.Max(m, 1e-9)), 0)
	}
	if err := plan.Inverse(buf, buf); err != nil {
		return fmt.Errorf("fieldeq: cepstrum failed: %w", err)
	}

	// Fold the anti-causal half onto the causal half.
	half := n / 2
	buf[0] = complex(real(buf[0]), 0)
	for k := 1; k < half; k++ {
		buf[k] = complex(2*real(buf[k]), 0)
	}
	buf[half] = complex(real(buf[half]), 0)
	for k := half + 1; k < n; k++ {
		buf[k] = 0
	}

	if err := plan.Forward(buf, buf); err != nil {
		return fmt.Errorf("fieldeq: forward FFT failed: %w", err)
	}
	for k := range buf {
		buf[k] = cmplx.Exp(buf[k])
	}
	if err := plan.Inverse(buf, buf); err != nil {
		return fmt.Errorf("fieldeq: inverse FFT failed: %w", err)
	}

	for i := range dst {
		dst[i] = real(buf[i])
	}
	return nil
}
