// Command splom renders scatterplot matrices from CSV files, prints their
// pairwise statistics and serves them over HTTP.
//
// Usage:
//
//	splom render [file.csv] [flags]
//	splom stats [file.csv] [flags]
//	splom serve [--addr :8080]
//	splom config init [path]
//
// Examples:
//
//	splom render data.csv -o matrix.svg --pearson --regression
//	splom render data.csv -o matrix.png --outliers --multiplier 1.8
//	splom stats --time-column time data.csv
//	splom serve --config splom.yaml
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/internal/config"
)

const (
	exitSuccess = 0
	exitError   = 1
)

type app struct {
	configPath string
	cfg        config.Config
	logger     *slog.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "splom",
		Short:         "Scatterplot matrices with correlation and regression overlays",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			logger, err := cfg.Log.Logger(a.stderr)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")

	root.AddCommand(newRenderCmd(a), newStatsCmd(a), newServeCmd(a), newConfigCmd(a))
	return root
}

func main() {
	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitError)
	}
	os.Exit(exitSuccess)
}
