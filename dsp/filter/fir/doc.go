// Package fir designs the linear-phase windowed-sinc prototypes used by the
// crossover bank.
//
// All kernels share one odd length derived from the sample rate by
// [IRLength], so every band has the same group delay of [Latency] samples
// and complementary bands can be formed by subtracting lowpass kernels.
package fir
