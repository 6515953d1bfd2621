// Package fieldeq equalizes synthesized polar patterns for free-field or
// diffuse-field flatness.
//
// A dual-diaphragm microphone's pressure (omni) and gradient (figure-eight)
// components deviate from an ideal flat response at high frequencies, so
// every blend of them needs its own correction. Kernels are designed at
// [DesignRate] with [KernelLength] taps for each named pattern and each
// field [Mode], as minimum-phase FIRs that add no latency at the design rate.
//
// A [Set] holds the design-rate kernels and can be saved to and loaded from
// WAV files. [Prepare] adapts a set to the host sample rate; the result is
// read-only and shared by every [Stage] that convolves audio with it.
package fieldeq
