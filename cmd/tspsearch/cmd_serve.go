package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tspsearch/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr()
			}
			cache, err := a.openCache()
			if err != nil {
				return err
			}
			defer a.closeCache(cache)

			metrics := server.NewMetrics()
			deps := server.Deps{
				Config:  a.cfg,
				Builder: a.newBuilder(cache, metrics.ObserveLookup),
				Metrics: metrics,
				Logger:  a.log,
			}
			if cache != nil {
				deps.Cache = cache
			}
			srv, err := server.New(deps)
			if err != nil {
				return err
			}

			return srv.Run(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.host:server.port)")

	return cmd
}
