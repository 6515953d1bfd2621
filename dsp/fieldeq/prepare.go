package fieldeq

import (
	"fmt"
	"math"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/conv"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/filter/fir"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/pattern"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/resample"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/window"
)

// Latency returns the delay in samples that an active EQ adds at
// sampleRate. Kernels need no lead at DesignRate; at other rates the
// resampled kernels are shifted by a quarter of the crossover kernel length.
func Latency(sampleRate float64) int {
	if sampleRate == DesignRate {
		return 0
	}
	return fir.IRLength(sampleRate) / 4
}

// KernelLen returns the length of a kernel prepared for sampleRate.
func KernelLen(sampleRate float64) int {
	if sampleRate == DesignRate {
		return KernelLength
	}
	return int(math.Ceil(KernelLength*sampleRate/DesignRate)) + Latency(sampleRate)
}

// Prepared is a kernel set adapted to one sample rate and block size. It
// holds pre-transformed spectra so stages can switch kernels without work on
// the audio thread. A Prepared is read-only and may be shared.
type Prepared struct {
	sampleRate float64
	maxBlock   int
	latency    int
	kernelLen  int
	fftSize    int

	kernels [2][pattern.Count][]float64
	spectra [2][pattern.Count][]complex128
}

// Prepare adapts set to sampleRate for blocks of up to maxBlock samples. A
// nil set selects DefaultSet.
func Prepare(set *Set, sampleRate float64, maxBlock int) (*Prepared, error) {
	if set == nil {
		var err error
		if set, err = DefaultSet(); err != nil {
			return nil, err
		}
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("fieldeq: invalid sample rate %v", sampleRate)
	}

	p := &Prepared{
		sampleRate: sampleRate,
		maxBlock:   maxBlock,
		latency:    Latency(sampleRate),
		kernelLen:  KernelLen(sampleRate),
	}
	xform, err := conv.NewStreamingLen(p.kernelLen, maxBlock)
	if err != nil {
		return nil, fmt.Errorf("fieldeq: %w", err)
	}
	p.fftSize = xform.FFTSize()

	fade := int(math.Round(fadeTaps * sampleRate / DesignRate))
	for _, m := range Modes {
		for _, pat := range pattern.All() {
			src := set.Kernel(m, pat)
			var h []float64
			if sampleRate == DesignRate {
				h = append([]float64(nil), src...)
			} else {
				h, err = resample.Kernel(src, DesignRate, sampleRate, p.kernelLen, p.latency)
				if err != nil {
					return nil, fmt.Errorf("fieldeq: %w", err)
				}
				window.FadeOut(h, fade)
			}
			sp, err := xform.KernelSpectrum(h)
			if err != nil {
				return nil, fmt.Errorf("fieldeq: %w", err)
			}
			p.kernels[m-1][pat] = h
			p.spectra[m-1][pat] = sp
		}
	}
	return p, nil
}

// SampleRate returns the rate the set was prepared for.
func (p *Prepared) SampleRate() float64 { return p.sampleRate }

// MaxBlock returns the largest block a Stage built on p accepts.
func (p *Prepared) MaxBlock() int { return p.maxBlock }

// Latency returns the added delay of an active EQ.
func (p *Prepared) Latency() int { return p.latency }

// KernelLen returns the prepared kernel length.
func (p *Prepared) KernelLen() int { return p.kernelLen }

// Kernel returns the prepared kernel for mode and pattern, nil for None.
// The slice is shared and must not be modified.
func (p *Prepared) Kernel(mode Mode, pat pattern.Pattern) []float64 {
	if (mode != FreeField && mode != DiffuseField) || !pat.Valid() {
		return nil
	}
	return p.kernels[mode-1][pat]
}

func (p *Prepared) spectrum(mode Mode, pat pattern.Pattern) []complex128 {
	return p.spectra[mode-1][pat]
}
