package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/render/svg"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/render/vgdraw"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/splom"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		in     inputFlags
		mf     matrixFlags
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "render [file.csv]",
		Short: "Render a scatterplot matrix as SVG, PNG or PDF",
		Long: `Render reads a CSV file with a header row, one column per variable, and
writes the scatterplot matrix. Without a file it reads standard input.

The format is taken from --format, then from the extension of --output, then
from the configuration file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := outputFormat(format, output, a.cfg.Output.Format)
			if err != nil {
				return err
			}

			ds, err := in.read(a, args)
			if err != nil {
				return err
			}

			m, err := splom.Build(ds, mf.config(a, cmd))
			if err != nil {
				return err
			}
			for _, c := range m.Cells {
				if err := c.FilterSkipped(); err != nil {
					a.logger.Warn("Outlier filter skipped", "x", c.XName, "y", c.YName, "error", err)
				}
			}

			return writeMatrix(a, output, m, f)
		},
	}

	in.register(cmd)
	mf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", "", "output format: svg, png or pdf")
	return cmd
}

func outputFormat(flag, output, configured string) (vgdraw.Format, error) {
	switch {
	case flag != "":
		return vgdraw.ParseFormat(flag)
	case filepath.Ext(output) != "":
		return vgdraw.ParseFormat(filepath.Ext(output))
	case configured != "":
		return vgdraw.ParseFormat(configured)
	}
	return vgdraw.SVG, nil
}

func writeMatrix(a *app, output string, m *splom.Matrix, f vgdraw.Format) (err error) {
	var w io.Writer = a.stdout
	if output != "" && output != "-" {
		file, cerr := os.Create(output)
		if cerr != nil {
			return fmt.Errorf("failed to create output: %w", cerr)
		}
		defer func() {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}()
		w = file
	}

	bw := bufio.NewWriter(w)
	if f == vgdraw.SVG {
		err = svg.Render(bw, m, svg.WithXMLHeader())
	} else {
		err = vgdraw.Write(bw, m, f)
	}
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	a.logger.Info("Rendered matrix", "format", f, "variables", m.N, "output", output)
	return nil
}
