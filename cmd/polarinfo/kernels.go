package main

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/fieldeq"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/pattern"
)

func newKernelsCmd(logger logrus.FieldLogger) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "kernels",
		Short: "Export the field EQ kernels as WAV files",
		Long: `Design the free-field and diffuse-field EQ kernels for every named
pattern and write them to a directory. The files can be edited and loaded
back with fieldeq.LoadSet.

Example:
  polarinfo kernels -o ./kernels`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := fieldeq.DefaultSet()
			if err != nil {
				return err
			}
			if err := set.Save(dir); err != nil {
				return err
			}
			for _, m := range fieldeq.Modes {
				for _, p := range pattern.All() {
					path := filepath.Join(dir, fieldeq.FileName(m, p))
					logger.WithField("file", path).Debug("kernel written")
					fmt.Fprintln(cmd.OutOrStdout(), path)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "output", "o", "", "output directory")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
