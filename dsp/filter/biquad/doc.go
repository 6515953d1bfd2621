// Package biquad provides the second-order IIR section used for the
// low-frequency shelf of the proximity correction.
//
// A [Section] implements Direct Form II Transposed processing for the
// transfer function defined by [Coefficients].
package biquad
