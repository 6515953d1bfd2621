package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/fieldeq"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/pattern"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/polar"
)

type renderOptions struct {
	output      string
	rate        float64
	length      int
	angle       float64
	bands       int
	crossovers  []float64
	alpha       []string
	gain        []float64
	eq          string
	proximity   float64
	zeroLatency bool
	reverse     bool
}

func newRenderCmd(logger logrus.FieldLogger) *cobra.Command {
	o := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the impulse response of a configuration to a WAV file",
		Long: `Render the response of the engine to a plane-wave impulse arriving at
--angle degrees off axis and write it as a 32-bit mono WAV file.

Directivities accept numbers or pattern names.

Examples:
  polarinfo render -o cardioid.wav --bands 1 --alpha cardioid
  polarinfo render -o ir.wav --bands 3 --crossovers 250,3000 --alpha 0,0.5,1 --eq free-field`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.config()
			if err != nil {
				return err
			}
			y, latency, err := renderImpulse(cfg, o.rate, o.length, o.angle, logger)
			if err != nil {
				return err
			}
			if err := fieldeq.WriteKernel(o.output, y, o.rate); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d samples at %.0f Hz, latency %d\n",
				o.output, len(y), o.rate, latency)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "", "output WAV file")
	f.IntVar(&o.length, "length", 4096, "length in samples")
	f.Float64Var(&o.angle, "angle", 0, "incidence angle in degrees, 0 is on axis")
	o.bindConfig(cmd)
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// bindConfig registers the flags shared by every command that builds an
// engine configuration.
func (o *renderOptions) bindConfig(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&o.rate, "rate", 48000, "sample rate in Hz")
	f.IntVar(&o.bands, "bands", polar.MaxBands, "number of bands (1-5)")
	f.Float64SliceVar(&o.crossovers, "crossovers", nil, "crossover frequencies in Hz (default for the band count)")
	f.StringSliceVar(&o.alpha, "alpha", nil, "directivity per band, number or pattern name")
	f.Float64SliceVar(&o.gain, "gain", nil, "gain per band in dB")
	f.StringVar(&o.eq, "eq", fieldeq.None.String(), "field EQ: none, free-field or diffuse-field")
	f.Float64Var(&o.proximity, "proximity", 0, "proximity correction in [-1, 1], 0 is off")
	f.BoolVar(&o.zeroLatency, "zero-latency", false, "bypass the filterbank")
	f.BoolVar(&o.reverse, "allow-reverse", false, "permit reverse patterns")
}

func (o renderOptions) config() (polar.Config, error) {
	c := polar.DefaultConfig().WithBands(o.bands)
	if o.bands < 1 || o.bands > polar.MaxBands {
		return c, fmt.Errorf("bands must be in [1, %d]: %d", polar.MaxBands, o.bands)
	}
	if len(o.crossovers) > 0 {
		if len(o.crossovers) != o.bands-1 {
			return c, fmt.Errorf("%d bands need %d crossovers, got %d", o.bands, o.bands-1, len(o.crossovers))
		}
		copy(c.Crossovers[:], o.crossovers)
	}
	if len(o.alpha) > o.bands || len(o.gain) > o.bands {
		return c, errors.New("more directivities or gains than bands")
	}
	for b, s := range o.alpha {
		d, err := parseDirectivity(s)
		if err != nil {
			return c, err
		}
		c.Directivity[b] = d
	}
	copy(c.GainDB[:], o.gain)

	mode, ok := fieldeq.ParseMode(o.eq)
	if !ok {
		return c, fmt.Errorf("unknown field EQ %q", o.eq)
	}
	c.FieldEQ = mode
	c.Proximity = o.proximity
	c.ProximityOn = o.proximity != 0
	c.ZeroLatency = o.zeroLatency
	c.AllowReverse = o.reverse
	return c, nil
}

func parseDirectivity(s string) (float64, error) {
	if p, ok := pattern.Parse(s); ok {
		return p.Value(), nil
	}
	var d float64
	if _, err := fmt.Sscanf(s, "%g", &d); err != nil {
		return 0, fmt.Errorf("invalid directivity %q", s)
	}
	return pattern.Snap(d), nil
}

// renderImpulse runs an impulse from angle degrees through an engine set up
// with cfg and returns the output and the reported latency.
func renderImpulse(cfg polar.Config, rate float64, length int, angle float64, logger logrus.FieldLogger) ([]float64, int, error) {
	if length <= 0 {
		return nil, 0, fmt.Errorf("length must be positive: %d", length)
	}
	x := make([]float64, length)
	x[0] = 1
	return renderPlaneWave(cfg, rate, x, angle, logger)
}

// renderPlaneWave runs x arriving from angle degrees through an engine set
// up with cfg.
func renderPlaneWave(cfg polar.Config, rate float64, x []float64, angle float64, logger logrus.FieldLogger) ([]float64, int, error) {
	e, err := polar.New(
		polar.WithSampleRate(rate),
		polar.WithBlockSize(len(x)),
		polar.WithConfig(cfg),
		polar.WithLogger(logger),
	)
	if err != nil {
		return nil, 0, err
	}

	// Back-to-back cardioid capsules.
	theta := angle * math.Pi / 180
	front := make([]float64, len(x))
	back := make([]float64, len(x))
	for i, v := range x {
		front[i] = 0.5 * (1 + math.Cos(theta)) * v
		back[i] = 0.5 * (1 - math.Cos(theta)) * v
	}

	y := make([]float64, len(x))
	e.Process([][]float64{front, back}, [][]float64{y})
	return y, e.LatencySamples(), nil
}
