// Command polarinfo inspects the polar pattern engine offline.
//
// Usage:
//
//	polarinfo latency [--rates 44100,48000,96000]
//	polarinfo patterns
//	polarinfo render -o ir.wav [--bands 3 --alpha 0,0.5,1 --eq free-field]
//	polarinfo response [--angle 90 --fraction 3]
//	polarinfo polar [--freqs 125,1000,8000 --step 30]
//	polarinfo kernels -o kernels/
package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var verbose bool
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	root := &cobra.Command{
		Use:   "polarinfo",
		Short: "Inspect the multiband polar pattern engine",
		Long: `polarinfo reports latencies, renders and analyzes impulse responses of
engine configurations and exports the field EQ kernels.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.SetLevel(logrus.WarnLevel)
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine lifecycle events")

	root.AddCommand(
		newLatencyCmd(logger),
		newPatternsCmd(),
		newRenderCmd(logger),
		newResponseCmd(logger),
		newPolarCmd(logger),
		newKernelsCmd(logger),
	)
	return root
}
