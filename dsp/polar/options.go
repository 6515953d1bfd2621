package polar

import (
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/core"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/fieldeq"
	"github.com/sirupsen/logrus"
)

type engineOptions struct {
	proc      []core.ProcessorOption
	kernels   *fieldeq.Set
	logger    logrus.FieldLogger
	crossfade float64
	config    Config
}

// Option configures an Engine.
type Option func(*engineOptions)

// WithSampleRate sets the sample rate New prepares for.
func WithSampleRate(sampleRate float64) Option {
	return func(o *engineOptions) {
		o.proc = append(o.proc, core.WithSampleRate(sampleRate))
	}
}

// WithBlockSize sets the maximum block size New prepares for.
func WithBlockSize(blockSize int) Option {
	return func(o *engineOptions) {
		o.proc = append(o.proc, core.WithBlockSize(blockSize))
	}
}

// WithKernels replaces the built-in field EQ kernel set.
func WithKernels(set *fieldeq.Set) Option {
	return func(o *engineOptions) {
		o.kernels = set
	}
}

// WithLogger sets the logger for lifecycle events. Nothing is logged from
// Process.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCrossfadeDuration sets the topology crossfade length in seconds. Zero
// switches chains without a fade.
func WithCrossfadeDuration(seconds float64) Option {
	return func(o *engineOptions) {
		if seconds >= 0 && core.IsFinite(seconds) {
			o.crossfade = seconds
		}
	}
}

// WithConfig sets the initial configuration.
func WithConfig(cfg Config) Option {
	return func(o *engineOptions) {
		o.config = cfg
	}
}

func defaultLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}
