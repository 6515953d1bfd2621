// Package conv provides the FFT convolution engines behind the crossover bank
// and the field-equalization stage.
//
// [Streaming] convolves a signal block by block against one kernel with
// persistent overlap-add state. Kernels can be swapped without allocating,
// either by re-transforming time-domain taps with SetKernel or by pointing the
// convolver at a precomputed, read-only spectrum with SetKernelSpectrum.
//
// [Direct] is the O(N*M) reference used by tests and offline tools.
package conv

import "errors"

// Errors returned by convolution functions.
var (
	ErrEmptyInput       = errors.New("conv: empty input")
	ErrEmptyKernel      = errors.New("conv: empty kernel")
	ErrLengthMismatch   = errors.New("conv: buffer length mismatch")
	ErrInvalidBlockSize = errors.New("conv: invalid block size")
)

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	DirectTo(result, a, b)
	return result, nil
}

// DirectTo performs direct convolution, writing to a pre-allocated destination.
// dst must have length len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) {
	for i := range dst {
		dst[i] = 0
	}
	m := len(b)
	for i, x := range a {
		if x == 0 {
			continue
		}
		out := dst[i : i+m]
		for j, h := range b {
			out[j] += x * h
		}
	}
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// FFTSize returns the transform length a Streaming convolver uses for the
// given block size and kernel length.
func FFTSize(blockSize, kernelLen int) int {
	return nextPowerOf2(blockSize + kernelLen - 1)
}
