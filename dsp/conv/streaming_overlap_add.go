package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Streaming implements streaming FFT-based convolution using overlap-add.
//
// Any block of up to blockSize samples can be processed; the FFT is sized for
// the largest block so short blocks never alias. Kernels up to kernelLen taps
// can be exchanged between blocks without allocating.
type Streaming struct {
	// Owned kernel spectrum and the spectrum currently in use. active either
	// aliases kernelFFT or a shared read-only spectrum.
	kernelFFT []complex128
	active    []complex128

	kernelLen int // Maximum kernel length
	blockSize int // Maximum input/output block size
	fftSize   int // nextPowerOf2(blockSize + kernelLen - 1)

	plan *algofft.Plan[complex128]

	work []complex128

	// Overlap state carried into the next block.
	tail []float64
}

// NewStreaming creates a streaming convolver. kernel sets the initial taps
// and the maximum kernel length; blockSize is the largest block that will be
// passed to ProcessBlockTo.
func NewStreaming(kernel []float64, blockSize int) (*Streaming, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	s, err := NewStreamingLen(len(kernel), blockSize)
	if err != nil {
		return nil, err
	}
	if err := s.SetKernel(kernel); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStreamingLen creates a streaming convolver for kernels of up to
// kernelLen taps with an all-zero initial kernel.
func NewStreamingLen(kernelLen, blockSize int) (*Streaming, error) {
	if kernelLen <= 0 {
		return nil, ErrEmptyKernel
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}

	fftSize := FFTSize(blockSize, kernelLen)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	s := &Streaming{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: kernelLen,
		blockSize: blockSize,
		fftSize:   fftSize,
		plan:      plan,
		work:      make([]complex128, fftSize),
		tail:      make([]float64, kernelLen-1),
	}
	s.active = s.kernelFFT
	return s, nil
}

// SetKernel transforms kernel into the convolver's own spectrum and makes it
// active. len(kernel) must not exceed KernelLen. Convolution state is kept;
// call Reset for a clean start. Zero-alloc.
func (s *Streaming) SetKernel(kernel []float64) error {
	if len(kernel) == 0 {
		return ErrEmptyKernel
	}
	if len(kernel) > s.kernelLen {
		return fmt.Errorf("%w: kernel has %d taps, max %d", ErrLengthMismatch, len(kernel), s.kernelLen)
	}
	if err := s.transform(s.kernelFFT, kernel); err != nil {
		return err
	}
	s.active = s.kernelFFT
	return nil
}

// SetKernelSpectrum makes a precomputed spectrum active. The slice is used as
// is and must stay unmodified while in use; it must have FFTSize bins and
// come from a kernel of at most KernelLen taps (see KernelSpectrum).
func (s *Streaming) SetKernelSpectrum(spectrum []complex128) error {
	if len(spectrum) != s.fftSize {
		return fmt.Errorf("%w: spectrum has %d bins, want %d", ErrLengthMismatch, len(spectrum), s.fftSize)
	}
	s.active = spectrum
	return nil
}

// KernelSpectrum returns the spectrum of kernel at this convolver's FFT size,
// suitable for sharing between convolvers of the same geometry.
func (s *Streaming) KernelSpectrum(kernel []float64) ([]complex128, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if len(kernel) > s.kernelLen {
		return nil, fmt.Errorf("%w: kernel has %d taps, max %d", ErrLengthMismatch, len(kernel), s.kernelLen)
	}
	out := make([]complex128, s.fftSize)
	if err := s.transform(out, kernel); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Streaming) transform(dst []complex128, kernel []float64) error {
	for i := range dst {
		dst[i] = 0
	}
	for i, v := range kernel {
		dst[i] = complex(v, 0)
	}
	if err := s.plan.Forward(dst, dst); err != nil {
		return fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
	}
	return nil
}

// ProcessBlockTo convolves input and writes len(input) samples to output.
// len(input) must be in [1, BlockSize]; output may alias input. Zero-alloc.
func (s *Streaming) ProcessBlockTo(output, input []float64) error {
	n := len(input)
	if n == 0 {
		return ErrEmptyInput
	}
	if n > s.blockSize {
		return fmt.Errorf("%w: block of %d exceeds %d", ErrLengthMismatch, n, s.blockSize)
	}
	if len(output) < n {
		return fmt.Errorf("%w: output has %d samples, want %d", ErrLengthMismatch, len(output), n)
	}

	// Zero-pad input to FFT size
	for i, x := range input {
		s.work[i] = complex(x, 0)
	}
	for i := n; i < len(s.work); i++ {
		s.work[i] = 0
	}

	if err := s.plan.Forward(s.work, s.work); err != nil {
		return fmt.Errorf("conv: forward FFT failed: %w", err)
	}
	for i, h := range s.active {
		s.work[i] *= h
	}
	if err := s.plan.Inverse(s.work, s.work); err != nil {
		return fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	tailLen := len(s.tail)
	for i := 0; i < n; i++ {
		y := real(s.work[i])
		if i < tailLen {
			y += s.tail[i]
		}
		output[i] = y
	}

	// Shift the remaining tail by n and add the new overlap.
	for i := 0; i < tailLen; i++ {
		var carry float64
		if i+n < tailLen {
			carry = s.tail[i+n]
		}
		s.tail[i] = carry + real(s.work[n+i])
	}

	return nil
}

// Reset clears the overlap state.
func (s *Streaming) Reset() {
	for i := range s.tail {
		s.tail[i] = 0
	}
}

// BlockSize returns the largest accepted block size.
func (s *Streaming) BlockSize() int {
	return s.blockSize
}

// KernelLen returns the maximum kernel length.
func (s *Streaming) KernelLen() int {
	return s.kernelLen
}

// FFTSize returns the FFT size.
func (s *Streaming) FFTSize() int {
	return s.fftSize
}
