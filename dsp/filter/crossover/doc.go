// Package crossover splits a signal into up to five phase-aligned bands with
// linear-phase complementary FIR filters.
//
// Every band but the top one is the difference of two windowed-sinc lowpass
// kernels of identical length. The top band is the input delayed by the
// kernels' group delay minus all lower bands, so the sum of all bands equals
// the delayed input exactly.
//
// Crossover frequencies live in band-count specific, non-overlapping ranges.
// [FromNormalized] and [ToNormalized] map between Hz and the [0,1] slider
// values that the parameter layer stores.
//
// Example:
//
//	bank, _ := crossover.New(48000, 2, 1024)
//	_ = bank.Configure([]float64{250, 3000}) // three bands
//	bank.Split(0, in, bands)
package crossover
