package main

import (
	"github.com/spf13/cobra"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/dataset"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/source/csvsource"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/splom"
)

// inputFlags are shared by the commands that read a CSV file.
type inputFlags struct {
	timeColumn string
	comma      string
	pathPrefix string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.timeColumn, "time-column", "", "column to ignore, e.g. a timestamp")
	cmd.Flags().StringVar(&f.comma, "comma", ",", "field delimiter")
	cmd.Flags().StringVar(&f.pathPrefix, "path-prefix", "", "prefix for variable paths")
}

// read loads the CSV file named by args, or standard input when there is no
// argument or it is "-".
func (f *inputFlags) read(a *app, args []string) (dataset.Dataset, error) {
	opts := []csvsource.Option{
		csvsource.WithTimeColumn(f.timeColumn),
		csvsource.WithPathPrefix(f.pathPrefix),
	}
	if r := []rune(f.comma); len(r) == 1 {
		opts = append(opts, csvsource.WithComma(r[0]))
	}

	var (
		ds  dataset.Dataset
		st  csvsource.Stats
		err error
		src = "stdin"
	)
	if len(args) == 0 || args[0] == "-" {
		ds, st, err = csvsource.Read(a.stdin, opts...)
	} else {
		src = args[0]
		ds, st, err = csvsource.ReadFile(src, opts...)
	}
	if err != nil {
		return dataset.Dataset{}, err
	}

	a.logger.Debug("Read dataset", "source", src, "variables", ds.N(), "rows", ds.Len(),
		"records", st.Records)
	if st.Skipped > 0 {
		a.logger.Warn("Skipped rows with missing or invalid values", "source", src, "skipped", st.Skipped)
	}
	return ds, nil
}

// matrixFlags are the overlay and size flags. Only flags given on the
// command line override the configuration file.
type matrixFlags struct {
	width, height float64
	outliers      bool
	multiplier    float64
	stats         bool
	regression    bool
	pearson       bool
	spearman      bool
}

func (f *matrixFlags) register(cmd *cobra.Command) {
	def := splom.DefaultConfig()
	fl := cmd.Flags()
	fl.Float64Var(&f.width, "width", def.Width, "outer width in pixels")
	fl.Float64Var(&f.height, "height", def.Height, "outer height in pixels")
	fl.BoolVar(&f.outliers, "outliers", false, "remove Mahalanobis outliers per cell")
	fl.Float64Var(&f.multiplier, "multiplier", def.FilterMultiplier, "outlier filter strength in [1, 2]")
	fl.BoolVar(&f.stats, "stats", false, "show descriptive statistics on the diagonal")
	fl.BoolVar(&f.regression, "regression", false, "draw regression lines")
	fl.BoolVar(&f.pearson, "pearson", false, "show Pearson correlation")
	fl.BoolVar(&f.spearman, "spearman", false, "show Spearman correlation")
}

func (f *matrixFlags) overrides(cmd *cobra.Command) splom.Overrides {
	var o splom.Overrides
	changed := cmd.Flags().Changed

	if changed("width") {
		o.Width = &f.width
	}
	if changed("height") {
		o.Height = &f.height
	}
	if changed("outliers") {
		o.RemoveOutliers = &f.outliers
	}
	if changed("multiplier") {
		o.FilterMultiplier = &f.multiplier
	}
	if changed("stats") {
		o.ShowBasicStatistics = &f.stats
	}
	if changed("regression") {
		o.ShowRegression = &f.regression
	}
	if changed("pearson") {
		o.ShowPearson = &f.pearson
	}
	if changed("spearman") {
		o.ShowSpearman = &f.spearman
	}
	return o
}

func (f *matrixFlags) config(a *app, cmd *cobra.Command) splom.Config {
	return f.overrides(cmd).Merge(a.cfg.Splom())
}
