package fieldeq

import (
	"fmt"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/conv"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/pattern"
)

// Stage applies the field EQ to a fixed number of bands. Each band uses the
// kernel of the named pattern nearest to its directivity; the kernel follows
// the directivity from block to block.
//
// A Stage is owned by the audio thread. SetMode, Process and Reset do not
// allocate.
type Stage struct {
	prep   *Prepared
	mode   Mode
	conv   []*conv.Streaming
	bucket []pattern.Pattern
}

// NewStage allocates a stage for bands bands on prep.
func NewStage(prep *Prepared, bands int) (*Stage, error) {
	if prep == nil {
		return nil, fmt.Errorf("fieldeq: nil prepared set")
	}
	if bands <= 0 {
		return nil, fmt.Errorf("fieldeq: band count must be > 0: %d", bands)
	}
	s := &Stage{
		prep:   prep,
		conv:   make([]*conv.Streaming, bands),
		bucket: make([]pattern.Pattern, bands),
	}
	for i := range s.conv {
		c, err := conv.NewStreamingLen(prep.kernelLen, prep.maxBlock)
		if err != nil {
			return nil, fmt.Errorf("fieldeq: %w", err)
		}
		s.conv[i] = c
		s.bucket[i] = -1
	}
	return s, nil
}

// SetMode selects the field mode and clears convolution state.
func (s *Stage) SetMode(m Mode) {
	if !m.Valid() {
		m = None
	}
	s.mode = m
	for i := range s.bucket {
		s.bucket[i] = -1
	}
	s.Reset()
}

// Mode returns the active mode.
func (s *Stage) Mode() Mode {
	return s.mode
}

// Latency returns the delay the stage adds in its current mode.
func (s *Stage) Latency() int {
	if s.mode == None {
		return 0
	}
	return s.prep.latency
}

// Bucket returns the pattern whose kernel band uses, -1 before the first
// block.
func (s *Stage) Bucket(band int) pattern.Pattern {
	return s.bucket[band]
}

// Process equalizes buf in place for band with directivity d. len(buf) must
// not exceed the prepared block size.
func (s *Stage) Process(band int, buf []float64, d float64) {
	if s.mode == None || len(buf) == 0 {
		return
	}
	p := pattern.Nearest(d)
	c := s.conv[band]
	if p != s.bucket[band] {
		// Spectra always match the convolver geometry.
		_ = c.SetKernelSpectrum(s.prep.spectrum(s.mode, p))
		s.bucket[band] = p
	}
	_ = c.ProcessBlockTo(buf, buf)
}

// Reset clears convolution state.
func (s *Stage) Reset() {
	for _, c := range s.conv {
		c.Reset()
	}
}
