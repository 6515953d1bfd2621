package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/fieldeq"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/filter/fir"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/pattern"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/polar"
)

func newLatencyCmd(logger logrus.FieldLogger) *cobra.Command {
	var rates []float64
	cmd := &cobra.Command{
		Use:   "latency",
		Short: "Print the reported latency per sample rate and EQ mode",
		Long: `Print the latency in samples the engine reports for each sample rate,
with the filterbank active and in zero-latency mode.

Example:
  polarinfo latency --rates 44100,48000,88200,96000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printLatency(cmd, logger, rates)
		},
	}
	cmd.Flags().Float64SliceVar(&rates, "rates", []float64{44100, 48000, 88200, 96000, 192000}, "sample rates in Hz")
	return cmd
}

func printLatency(cmd *cobra.Command, logger logrus.FieldLogger, rates []float64) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Rate\tIR taps\tMode\tFilterbank\tZero latency\n")
	fmt.Fprintf(tw, "----\t-------\t----\t----------\t------------\n")

	modes := []fieldeq.Mode{fieldeq.None, fieldeq.FreeField, fieldeq.DiffuseField}
	for _, rate := range rates {
		e, err := polar.New(
			polar.WithSampleRate(rate),
			polar.WithBlockSize(256),
			polar.WithLogger(logger),
		)
		if err != nil {
			return err
		}
		for _, m := range modes {
			c := polar.DefaultConfig()
			c.FieldEQ = m
			e.SetConfig(c)
			bank := e.LatencySamples()
			c.ZeroLatency = true
			e.SetConfig(c)
			fmt.Fprintf(tw, "%.0f\t%d\t%s\t%d\t%d\n", rate, fir.IRLength(rate), m, bank, e.LatencySamples())
		}
	}
	return tw.Flush()
}

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the named polar patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Pattern\tDirectivity\tKernel (ff)\tKernel (df)\n")
			for _, p := range pattern.All() {
				fmt.Fprintf(tw, "%s\t%.3f\t%s\t%s\n", p, p.Value(),
					fieldeq.FileName(fieldeq.FreeField, p), fieldeq.FileName(fieldeq.DiffuseField, p))
			}
			return tw.Flush()
		},
	}
}
