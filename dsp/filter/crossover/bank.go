package crossover

import (
	"errors"
	"fmt"
	"math"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/conv"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/core"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/delay"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/filter/fir"
)

// ErrBandCount is returned by Configure for more than MaxCrossovers points.
var ErrBandCount = errors.New("crossover: unsupported band count")

// maxCutoffRatio keeps cutoffs below Nyquist at low sample rates.
const maxCutoffRatio = 0.45

// Bank is a multichannel linear-phase crossover network.
//
// All buffers are allocated by New; Configure and Split do not allocate and
// are safe to call from the audio thread.
type Bank struct {
	sampleRate float64
	maxBlock   int

	design  *fir.Designer
	lowpass [MaxCrossovers][]float64
	kernel  []float64

	// split[ch][k] produces band k (k < MaxBands-1) for channel ch.
	split [][MaxCrossovers]*conv.Streaming
	align *delay.Multi

	bands int
	freqs [MaxCrossovers]float64
}

// New allocates a bank for the given sample rate, channel count and largest
// block. The bank starts with a single band.
func New(sampleRate float64, channels, maxBlock int) (*Bank, error) {
	cfg := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: maxBlock}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("crossover: %w", err)
	}
	if channels <= 0 || channels > core.MaxInputs {
		return nil, fmt.Errorf("crossover: channel count must be in [1,%d]: %d", core.MaxInputs, channels)
	}

	taps := fir.IRLength(sampleRate)
	design, err := fir.NewDesigner(taps)
	if err != nil {
		return nil, err
	}

	b := &Bank{
		sampleRate: sampleRate,
		maxBlock:   maxBlock,
		design:     design,
		kernel:     make([]float64, taps),
		split:      make([][MaxCrossovers]*conv.Streaming, channels),
		bands:      1,
	}
	for k := range b.lowpass {
		b.lowpass[k] = make([]float64, taps)
	}
	for ch := range b.split {
		for k := range b.split[ch] {
			c, err := conv.NewStreamingLen(taps, maxBlock)
			if err != nil {
				return nil, fmt.Errorf("crossover: %w", err)
			}
			b.split[ch][k] = c
		}
	}
	if b.align, err = delay.NewMulti(channels, fir.Latency(sampleRate)); err != nil {
		return nil, err
	}
	return b, nil
}

// Configure sets the crossover frequencies (len(freqs)+1 bands) and clears
// all filter state. Frequencies are clamped into their ranges. An empty
// slice selects a single band that is the delayed input.
func (b *Bank) Configure(freqs []float64) error {
	if len(freqs) > MaxCrossovers {
		return fmt.Errorf("%w: %d crossovers", ErrBandCount, len(freqs))
	}
	bands := len(freqs) + 1

	var clamped [MaxCrossovers]float64
	copy(clamped[:], freqs)
	Clamp(bands, clamped[:len(freqs)])

	nyq := maxCutoffRatio * b.sampleRate
	for k := 0; k < len(freqs); k++ {
		fc := math.Min(clamped[k], nyq)
		if err := b.design.LowpassInto(b.lowpass[k], fc, b.sampleRate); err != nil {
			return fmt.Errorf("crossover: %w", err)
		}
	}

	// Band 0 is LP0; band k is LP(k) - LP(k-1).
	for k := 0; k < bands-1; k++ {
		if k == 0 {
			copy(b.kernel, b.lowpass[0])
		} else {
			cur, prev := b.lowpass[k], b.lowpass[k-1]
			for i := range b.kernel {
				b.kernel[i] = cur[i] - prev[i]
			}
		}
		for ch := range b.split {
			if err := b.split[ch][k].SetKernel(b.kernel); err != nil {
				return fmt.Errorf("crossover: %w", err)
			}
		}
	}

	b.bands = bands
	b.freqs = clamped
	b.Reset()
	return nil
}

// Split writes NumBands band signals of one channel's block into bands.
// len(in) must not exceed the block size given to New; bands[k] must hold at
// least len(in) samples. in may not alias any band buffer.
func (b *Bank) Split(ch int, in []float64, bands [][]float64) {
	n := len(in)
	if n == 0 {
		return
	}
	top := bands[b.bands-1][:n]
	b.align.Channel(ch).ProcessBlock(top, in)

	for k := 0; k < b.bands-1; k++ {
		out := bands[k][:n]
		// Only fails on block size misuse, which callers guarantee against.
		_ = b.split[ch][k].ProcessBlockTo(out, in)
		for i, v := range out {
			top[i] -= v
		}
	}
}

// Reset clears all filter and delay state.
func (b *Bank) Reset() {
	for ch := range b.split {
		for _, c := range b.split[ch] {
			c.Reset()
		}
	}
	b.align.Reset()
}

// NumBands returns the configured band count.
func (b *Bank) NumBands() int {
	return b.bands
}

// Frequencies returns the active, clamped crossover frequencies.
func (b *Bank) Frequencies() []float64 {
	out := make([]float64, b.bands-1)
	copy(out, b.freqs[:b.bands-1])
	return out
}

// Latency returns the group delay of every band in samples.
func (b *Bank) Latency() int {
	return b.align.Channel(0).Delay()
}

// Taps returns the kernel length.
func (b *Bank) Taps() int {
	return b.design.Len()
}

// Channels returns the channel count.
func (b *Bank) Channels() int {
	return len(b.split)
}

// MaxBlock returns the largest block Split accepts.
func (b *Bank) MaxBlock() int {
	return b.maxBlock
}
