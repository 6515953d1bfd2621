// Package spectrum measures the frequency response of impulse responses and
// the level of test tones. The polarinfo tool and the engine tests use it to
// check band splits, patterns and EQ kernels offline; nothing here runs on
// the audio thread.
package spectrum
