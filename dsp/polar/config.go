package polar

import (
	"math"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/core"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/fieldeq"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/filter/crossover"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/pattern"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/internal/debuglog"
)

const (
	// MaxBands is the largest band count.
	MaxBands = crossover.MaxBands
	// MinGainDB and MaxGainDB bound the per-band gain.
	MinGainDB = -24.0
	MaxGainDB = 18.0
	// CrossfadeSeconds is the duration of a topology crossfade.
	CrossfadeSeconds = 0.02
	// GainRampSeconds is the duration of gain, solo and mute ramps.
	GainRampSeconds = 0.02
	// MuteAttenuationDB is the level muted and soloed-out bands ramp to.
	MuteAttenuationDB = -100.0
)

var mutedGain = math.Pow(10, MuteAttenuationDB/20)

// Config is an immutable snapshot of everything one processing chain needs.
// The control thread publishes a fresh Config with Engine.SetConfig; the
// audio thread reads one snapshot per block.
type Config struct {
	// BandCount is the number of bands in [1, MaxBands].
	BandCount int
	// Crossovers holds BandCount-1 strictly increasing frequencies in Hz.
	Crossovers [MaxBands - 1]float64
	// Directivity is the polar pattern factor of each band in [-0.5, 1].
	Directivity [MaxBands]float64
	// GainDB is the gain of each band in [MinGainDB, MaxGainDB].
	GainDB [MaxBands]float64
	Solo   [MaxBands]bool
	Mute   [MaxBands]bool

	// Proximity is the low-frequency correction in [-1, 1], used when
	// ProximityOn is set.
	Proximity   float64
	ProximityOn bool

	FieldEQ      fieldeq.Mode
	AllowReverse bool
	// ZeroLatency bypasses the crossover bank and processes a single band.
	ZeroLatency bool
}

// DefaultConfig returns a five-band omni configuration at the default
// crossover frequencies.
func DefaultConfig() Config {
	c := Config{BandCount: MaxBands}
	copy(c.Crossovers[:], crossover.DefaultFrequencies(MaxBands))
	return c
}

// WithBands returns c with n bands and the default crossover frequencies for
// that band count.
func (c Config) WithBands(n int) Config {
	c.BandCount = n
	c.Crossovers = [MaxBands - 1]float64{}
	copy(c.Crossovers[:], crossover.DefaultFrequencies(n))
	return c
}

// EffectiveBands returns the number of bands actually processed.
func (c Config) EffectiveBands() int {
	if c.ZeroLatency {
		return 1
	}
	return c.BandCount
}

// ActiveCrossovers returns the crossover frequencies in use.
func (c Config) ActiveCrossovers() []float64 {
	n := c.EffectiveBands() - 1
	return c.Crossovers[:max(n, 0)]
}

// TopologyEqual reports whether c and o can share filter state: same band
// layout, crossover frequencies, EQ mode and zero-latency setting. Changes
// between configurations that are not topology-equal need a crossfade.
func (c Config) TopologyEqual(o Config) bool {
	if c.ZeroLatency != o.ZeroLatency || c.FieldEQ != o.FieldEQ {
		return false
	}
	if c.EffectiveBands() != o.EffectiveBands() {
		return false
	}
	a, b := c.ActiveCrossovers(), o.ActiveCrossovers()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Audible reports whether band b is heard: with any band soloed only soloed
// bands are, otherwise every band that is not muted.
func (c Config) Audible(b int) bool {
	n := c.EffectiveBands()
	anySolo := false
	for i := 0; i < n; i++ {
		anySolo = anySolo || c.Solo[i]
	}
	if anySolo {
		return c.Solo[b]
	}
	return !c.Mute[b]
}

// BandGain returns the linear target gain of band b including solo/mute.
// Inaudible bands are attenuated by MuteAttenuationDB, not zeroed.
func (c Config) BandGain(b int) float64 {
	if !c.Audible(b) {
		return mutedGain
	}
	return core.DBToGain(c.GainDB[b])
}

// Sanitize returns c with every field clamped into its valid range. Values
// outside the parameter layout's ranges indicate a programmer error; they are
// reported to the debug log and replaced by safe fallbacks.
func (c Config) Sanitize() Config {
	if !crossover.ValidBands(c.BandCount) {
		debuglog.Errorf("polar", "invalid band count %d, falling back to one omni band", c.BandCount)
		c.BandCount = 1
		c.Directivity[0] = 0
	}
	crossover.Clamp(c.BandCount, c.Crossovers[:c.BandCount-1])

	for b := range c.Directivity {
		if !core.IsFinite(c.Directivity[b]) {
			debuglog.Errorf("polar", "non-finite directivity in band %d", b)
		}
		c.Directivity[b] = pattern.Clamp(c.Directivity[b], c.AllowReverse)
	}
	for b := range c.GainDB {
		if !core.IsFinite(c.GainDB[b]) {
			debuglog.Errorf("polar", "non-finite gain in band %d", b)
			c.GainDB[b] = 0
		}
		c.GainDB[b] = core.Clamp(c.GainDB[b], MinGainDB, MaxGainDB)
	}
	if math.IsNaN(c.Proximity) {
		c.Proximity = 0
	}
	c.Proximity = core.Clamp(c.Proximity, -1, 1)
	if !c.FieldEQ.Valid() {
		debuglog.Errorf("polar", "invalid field EQ mode %d", c.FieldEQ)
		c.FieldEQ = fieldeq.None
	}
	return c
}

// proximity returns the proximity amount the synthesizers should apply.
func (c Config) proximity() float64 {
	if !c.ProximityOn {
		return 0
	}
	return c.Proximity
}
