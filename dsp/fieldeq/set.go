package fieldeq

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/pattern"
)

// ErrKernelFormat is returned when a kernel file has the wrong shape.
var ErrKernelFormat = errors.New("fieldeq: unexpected kernel file format")

const (
	fileBitDepth = 32
	// Full scale of a kernel file sample; leaves 24 dB of headroom.
	fileScale = float64(1<<31) / 16
)

// Set holds the design-rate kernels for every mode and named pattern.
// A Set is read-only once built.
type Set struct {
	kernels [2][pattern.Count][]float64
}

// NewSet designs a complete kernel set.
func NewSet() (*Set, error) {
	s := &Set{}
	for _, m := range Modes {
		for _, p := range pattern.All() {
			h, err := Design(m, p.Value())
			if err != nil {
				return nil, err
			}
			s.kernels[m-1][p] = h
		}
	}
	return s, nil
}

var (
	defaultSet     *Set
	defaultSetErr  error
	defaultSetOnce sync.Once
)

// DefaultSet returns the designed kernel set, built once and shared.
func DefaultSet() (*Set, error) {
	defaultSetOnce.Do(func() {
		defaultSet, defaultSetErr = NewSet()
	})
	return defaultSet, defaultSetErr
}

// Kernel returns the kernel for mode and pattern, nil for None. The slice is
// shared and must not be modified.
func (s *Set) Kernel(mode Mode, p pattern.Pattern) []float64 {
	if (mode != FreeField && mode != DiffuseField) || !p.Valid() {
		return nil
	}
	return s.kernels[mode-1][p]
}

// FileName returns the kernel file name for mode and pattern.
func FileName(mode Mode, p pattern.Pattern) string {
	return mode.prefix() + "_" + p.String() + ".wav"
}

// Save writes every kernel to dir as 32-bit mono WAV at DesignRate.
func (s *Set) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("fieldeq: %w", err)
	}
	for _, m := range Modes {
		for _, p := range pattern.All() {
			path := filepath.Join(dir, FileName(m, p))
			if err := WriteKernel(path, s.Kernel(m, p), DesignRate); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadSet reads a kernel set written by Save. Every file must exist, be mono,
// use DesignRate and hold KernelLength samples.
func LoadSet(dir string) (*Set, error) {
	s := &Set{}
	for _, m := range Modes {
		for _, p := range pattern.All() {
			path := filepath.Join(dir, FileName(m, p))
			h, rate, err := ReadKernel(path)
			if err != nil {
				return nil, err
			}
			if rate != int(DesignRate) || len(h) != KernelLength {
				return nil, fmt.Errorf("%w: %s: %d Hz, %d samples", ErrKernelFormat, path, rate, len(h))
			}
			s.kernels[m-1][p] = h
		}
	}
	return s, nil
}

// WriteKernel writes h as a 32-bit mono WAV file.
func WriteKernel(path string, h []float64, sampleRate float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fieldeq: failed to create kernel file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("fieldeq: %w", cerr)
		}
	}()

	data := make([]int, len(h))
	for i, v := range h {
		q := math.Round(v * fileScale)
		data[i] = int(math.Max(math.MinInt32, math.Min(math.MaxInt32, q)))
	}

	enc := wav.NewEncoder(f, int(sampleRate), fileBitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: int(sampleRate)},
		Data:           data,
		SourceBitDepth: fileBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("fieldeq: failed to write kernel: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("fieldeq: failed to finalize kernel: %w", err)
	}
	return nil
}

// ReadKernel reads a mono kernel file and returns its samples and rate.
func ReadKernel(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("fieldeq: failed to open kernel file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: %s is not a WAV file", ErrKernelFormat, path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("fieldeq: failed to decode %s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels != 1 || dec.BitDepth != fileBitDepth {
		return nil, 0, fmt.Errorf("%w: %s must be 32-bit mono", ErrKernelFormat, path)
	}

	h := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		h[i] = float64(v) / fileScale
	}
	return h, buf.Format.SampleRate, nil
}
