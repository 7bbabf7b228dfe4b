package main

import (
	"os"
	"os/signal"
	"syscall"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/spf13/cobra"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/internal/server"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/source/influx"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the matrix HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if addr != "" {
				cfg.Server.Addr = addr
			}

			opts := []server.Option{
				server.WithLogger(a.logger),
				server.WithMatrixConfig(cfg.Splom()),
			}
			if ic := cfg.Influx; ic.Enabled() {
				client := influxdb2.NewClient(ic.URL, ic.Token)
				defer client.Close()

				src := influx.New(client, ic.Org, ic.Bucket, ic.Measurement)
				src.Logger = a.logger
				opts = append(opts, server.WithSource(src, ic.Points))
				a.logger.Info("InfluxDB source enabled", "url", ic.URL, "bucket", ic.Bucket,
					"measurement", ic.Measurement)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(cfg.Server, opts...).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then :8080)")
	return cmd
}
