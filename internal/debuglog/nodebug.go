//go:build !debug

// Package debuglog reports recoverable programmer errors from the processing
// path. This file contains no-op implementations when building without the
// 'debug' tag.
package debuglog

import "io"

// Enabled reports whether the debug log is compiled in.
const Enabled = false

// SetOutput is a no-op when not in debug mode.
func SetOutput(io.Writer) {}

// Errorf is a no-op when not in debug mode.
func Errorf(string, string, ...any) {}
