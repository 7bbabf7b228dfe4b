package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/internal/numfmt"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/splom"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/stats/describe"
)

func newStatsCmd(a *app) *cobra.Command {
	var (
		in inputFlags
		mf matrixFlags
	)

	cmd := &cobra.Command{
		Use:   "stats [file.csv]",
		Short: "Print descriptive statistics and pairwise correlation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := in.read(a, args)
			if err != nil {
				return err
			}

			pairs, err := splom.Analyze(ds, mf.config(a, cmd))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Variable\tN\tMean\tMedian\tMin\tMax\tStd Dev\tSkewness\tKurtosis\n")
			fmt.Fprintf(tw, "--------\t-\t----\t------\t---\t---\t-------\t--------\t--------\n")
			for i, name := range ds.Names {
				col, err := ds.Column(i)
				if err != nil {
					return err
				}
				s := describe.Calculate(col)
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					name, s.Length, num(s.Mean), num(s.Median), num(s.Min), num(s.Max),
					num(s.StdDev), num(s.Skewness), num(s.Kurtosis))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())

			fmt.Fprintf(tw, "X\tY\tN\tPearson\tSpearman\tSlope\tIntercept\tR²\tRemoved\n")
			fmt.Fprintf(tw, "-\t-\t-\t-------\t--------\t-----\t---------\t--\t-------\n")
			for _, p := range pairs {
				slope, intercept, r2 := "-", "-", "-"
				if p.FitErr == nil && !p.Fit.Degenerate() {
					slope, intercept, r2 = num(p.Fit.Slope), num(p.Fit.Intercept), num(p.Fit.R2)
				}
				removed := fmt.Sprint(p.Removed)
				if p.FilterSkipped != nil {
					removed = "skipped"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					p.XName, p.YName, p.N, num(p.Pearson), num(p.Spearman),
					slope, intercept, r2, removed)
			}
			return tw.Flush()
		},
	}

	in.register(cmd)
	mf.register(cmd)
	return cmd
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return numfmt.Precision(v, 4)
}
