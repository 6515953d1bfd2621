//go:build debug

// Package debuglog reports recoverable programmer errors from the processing
// path. Output is only produced when building with the 'debug' build tag.
package debuglog

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Enabled reports whether the debug log is compiled in.
const Enabled = true

var logger = newLogger(os.Stderr)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

// SetOutput redirects the debug log.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Errorf logs a recovered programmer error for component.
func Errorf(component, format string, args ...any) {
	logger.WithFields(logrus.Fields{
		"component": component,
	}).Error(fmt.Sprintf(format, args...))
}
