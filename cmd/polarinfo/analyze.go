package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/core"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/polar"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/spectrum"
)

// octaveCenters are the nominal octave band centre frequencies reported by
// the response command.
var octaveCenters = []float64{31.5, 63, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

func newResponseCmd(logger logrus.FieldLogger) *cobra.Command {
	o := renderOptions{}
	var fraction int
	cmd := &cobra.Command{
		Use:   "response",
		Short: "Print the smoothed frequency response and group delay of a configuration",
		Long: `Render the impulse response for a plane wave from --angle degrees and
print its fractional-octave smoothed level and group delay at the octave
band centres below Nyquist.

Example:
  polarinfo response --bands 3 --alpha omni,cardioid,eight --angle 90`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.config()
			if err != nil {
				return err
			}
			h, latency, err := renderImpulse(cfg, o.rate, o.length, o.angle, logger)
			if err != nil {
				return err
			}
			r, err := spectrum.Analyze(h, o.rate, 0)
			if err != nil {
				return err
			}
			freqs := make([]float64, 0, len(octaveCenters))
			for _, f := range octaveCenters {
				if f < o.rate/2 {
					freqs = append(freqs, f)
				}
			}
			level, err := r.Smoothed(fraction, freqs)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Freq\tLevel dB\tGroup delay\n")
			fmt.Fprintf(tw, "----\t--------\t-----------\n")
			for i, f := range freqs {
				fmt.Fprintf(tw, "%g\t%s\t%.1f\n", f, formatDB(core.LinearToDB(level[i])), r.GroupDelayAt(f))
			}
			fmt.Fprintf(tw, "\nlatency %d samples\n", latency)
			return tw.Flush()
		},
	}
	f := cmd.Flags()
	f.IntVar(&o.length, "length", spectrum.DefaultFFTSize, "impulse response length in samples")
	f.Float64Var(&o.angle, "angle", 0, "incidence angle in degrees, 0 is on axis")
	f.IntVar(&fraction, "fraction", 3, "smoothing bandwidth as 1/fraction octave")
	o.bindConfig(cmd)
	return cmd
}

func newPolarCmd(logger logrus.FieldLogger) *cobra.Command {
	o := renderOptions{}
	var (
		freqs []float64
		step  float64
	)
	cmd := &cobra.Command{
		Use:   "polar",
		Short: "Print the level of steady tones versus incidence angle",
		Long: `Feed a steady sine from each angle between 0 and 180 degrees through the
engine and print the level relative to a unit plane wave.

Example:
  polarinfo polar --bands 2 --crossovers 1000 --alpha omni,eight --freqs 200,4000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if step <= 0 || step > 180 {
				return fmt.Errorf("step must be in (0, 180]: %g", step)
			}
			cfg, err := o.config()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Angle")
			for _, f := range freqs {
				fmt.Fprintf(tw, "\t%g Hz", f)
			}
			fmt.Fprintln(tw)

			for angle := 0.0; angle <= 180+1e-9; angle += step {
				fmt.Fprintf(tw, "%g", angle)
				for _, f := range freqs {
					a, err := toneLevel(cfg, o.rate, f, angle, logger)
					if err != nil {
						return err
					}
					fmt.Fprintf(tw, "\t%s", formatDB(core.LinearToDB(a)))
				}
				fmt.Fprintln(tw)
			}
			return tw.Flush()
		},
	}
	f := cmd.Flags()
	f.Float64SliceVar(&freqs, "freqs", []float64{125, 1000, 8000}, "tone frequencies in Hz")
	f.Float64Var(&step, "step", 30, "angle step in degrees")
	o.bindConfig(cmd)
	return cmd
}

// toneLevel returns the steady-state amplitude of a unit sine at freq
// arriving from angle degrees.
func toneLevel(cfg polar.Config, rate, freq, angle float64, logger logrus.FieldLogger) (float64, error) {
	if freq <= 0 || freq >= rate/2 {
		return 0, fmt.Errorf("frequency must be in (0, %g): %g", rate/2, freq)
	}
	// Half a second of settling, then a whole number of periods.
	settle := int(rate / 2)
	period := rate / freq
	measure := int(math.Round(math.Max(1, math.Round(rate/10/period)) * period))
	n := settle + measure

	x := make([]float64, n)
	w := 2 * math.Pi * freq / rate
	for i := range x {
		x[i] = math.Sin(w * float64(i))
	}
	y, _, err := renderPlaneWave(cfg, rate, x, angle, logger)
	if err != nil {
		return 0, err
	}
	return spectrum.ToneAmplitude(y[settle:], freq, rate)
}

func formatDB(db float64) string {
	if math.IsInf(db, -1) || db < -120 {
		return "-inf"
	}
	return fmt.Sprintf("%.1f", db)
}
