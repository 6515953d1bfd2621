package pattern

import (
	"math"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/filter/biquad"
)

const (
	// ProximityThreshold is the smallest proximity magnitude that is applied.
	ProximityThreshold = 0.05
	// ProximityCutoff is the corner of the proximity low-frequency term in Hz.
	ProximityCutoff = 200.0
)

// Synth renders one band's polar pattern. It keeps the directivity of the
// previous block so changes are interpolated across the block instead of
// stepping, and it owns the state of the proximity lowpass.
type Synth struct {
	d       float64
	started bool
	prox    biquad.Section
}

// NewSynth returns a synthesizer for sampleRate.
func NewSynth(sampleRate float64) *Synth {
	s := &Synth{}
	s.SetSampleRate(sampleRate)
	return s
}

// SetSampleRate redesigns the proximity filter and clears state.
func (s *Synth) SetSampleRate(sampleRate float64) {
	s.prox = *biquad.NewSection(biquad.LowpassFirstOrder(ProximityCutoff, sampleRate))
	s.Reset()
}

// Directivity returns the factor reached at the end of the last block.
func (s *Synth) Directivity() float64 {
	return s.d
}

// Reset clears filter state; the next block starts at its target directivity.
func (s *Synth) Reset() {
	s.prox.Reset()
	s.started = false
}

// Jump sets the directivity without interpolation.
func (s *Synth) Jump(d float64) {
	s.d = d
	s.started = true
}

// Process writes the pattern with directivity target d into out.
// proximity in [-1,1] adds a low-frequency term scaled by d when its
// magnitude reaches ProximityThreshold; pass 0 to disable it. out may alias
// omni. All slices must hold len(out) samples.
func (s *Synth) Process(out, omni, eight []float64, d, proximity float64) {
	n := len(out)
	if n == 0 {
		return
	}
	_ = omni[n-1]
	_ = eight[n-1]

	if !s.started {
		s.Jump(d)
	}
	start := s.d
	step := (d - start) / float64(n)
	applyProx := math.Abs(proximity) >= ProximityThreshold

	for i := 0; i < n; i++ {
		di := start + step*float64(i+1)
		if i == n-1 {
			di = d
		}
		y := (1-math.Abs(di))*omni[i] + di*eight[i]
		lf := s.prox.ProcessSample(eight[i])
		if applyProx {
			y += proximity * di * lf
		}
		out[i] = y
	}
	s.d = d
}
