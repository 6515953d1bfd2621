package core

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Planar allocates channels×n sample buffers backed by one contiguous slice.
func Planar(channels, n int) [][]float64 {
	backing := make([]float64, channels*n)
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = backing[ch*n : (ch+1)*n : (ch+1)*n]
	}
	return out
}
