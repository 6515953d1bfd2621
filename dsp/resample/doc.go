// Package resample converts impulse responses designed at one sample rate to
// another by band-limited (Kaiser-windowed sinc) interpolation.
//
// The result keeps the source's frequency response up to the lower of the two
// Nyquist frequencies. A lead of D output samples shifts the response later so
// the interpolation kernel's pre-ringing is kept; callers report D as latency.
package resample
