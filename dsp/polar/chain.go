package polar

import (
	"fmt"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/core"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/fieldeq"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/filter/crossover"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/pattern"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// chain is one complete processing path: crossover split of the omni and
// figure-eight signals, per-band pattern synthesis, field EQ and band gain.
// Everything is allocated up front so configure and process do not allocate.
type chain struct {
	cfg   Config
	bands int

	bank  *crossover.Bank
	synth [MaxBands]*pattern.Synth
	eq    *fieldeq.Stage
	gain  [MaxBands]core.Ramp

	// split[0] holds the omni bands, split[1] the figure-eight bands.
	split [2][][]float64
}

func newChain(sampleRate float64, maxBlock int, prep *fieldeq.Prepared) (*chain, error) {
	bank, err := crossover.New(sampleRate, 2, maxBlock)
	if err != nil {
		return nil, fmt.Errorf("polar: %w", err)
	}
	eq, err := fieldeq.NewStage(prep, MaxBands)
	if err != nil {
		return nil, fmt.Errorf("polar: %w", err)
	}
	c := &chain{bank: bank, eq: eq}
	ramp := core.ProcessorConfig{SampleRate: sampleRate}.Samples(GainRampSeconds)
	for b := range c.synth {
		c.synth[b] = pattern.NewSynth(sampleRate)
		c.gain[b] = core.NewRamp(1, ramp)
	}
	c.split[0] = core.Planar(MaxBands, maxBlock)
	c.split[1] = core.Planar(MaxBands, maxBlock)
	return c, nil
}

// configure applies cfg, including its topology, and clears all state.
func (c *chain) configure(cfg Config) {
	c.cfg = cfg
	c.bands = cfg.EffectiveBands()
	if !cfg.ZeroLatency {
		// Sanitized configs always carry a valid crossover count.
		_ = c.bank.Configure(cfg.ActiveCrossovers())
	}
	c.eq.SetMode(cfg.FieldEQ)
	c.reset()
}

// update applies the scalar parameters of cfg. Directivity is interpolated by
// the synthesizers and gains ramp, so no state is cleared.
func (c *chain) update(cfg Config) {
	c.cfg = cfg
	for b := 0; b < c.bands; b++ {
		c.gain[b].SetTarget(cfg.BandGain(b))
	}
}

// reset clears filter state and settles every parameter at its target.
func (c *chain) reset() {
	c.bank.Reset()
	c.eq.Reset()
	for b := range c.synth {
		c.synth[b].Reset()
		c.gain[b].Jump(c.cfg.BandGain(b))
	}
}

// latency returns the delay of the chain in samples.
func (c *chain) latency() int {
	l := c.eq.Latency()
	if !c.cfg.ZeroLatency {
		l += c.bank.Latency()
	}
	return l
}

// process renders len(out) samples from the omni and figure-eight inputs.
// len(out) must not exceed the prepared block size.
func (c *chain) process(out, omni, eight []float64) {
	n := len(out)
	if c.cfg.ZeroLatency {
		copy(c.split[0][0][:n], omni)
		copy(c.split[1][0][:n], eight)
	} else {
		c.bank.Split(0, omni, c.split[0])
		c.bank.Split(1, eight, c.split[1])
	}

	core.Zero(out)
	prox := c.cfg.proximity()
	for b := 0; b < c.bands; b++ {
		d := c.cfg.Directivity[b]
		buf := c.split[0][b][:n]
		c.synth[b].Process(buf, buf, c.split[1][b][:n], d, prox)
		c.eq.Process(b, buf, d)
		c.gain[b].Apply(buf)
		vecmath.AddBlockInPlace(out, buf)
	}
}
