package main

import (
	"github.com/spf13/cobra"

	"github.com/yasar2385/family-address-book/internal/infrastructure/httpapi"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: `Starts the HTTP API on the configured address (server.addr, or PORT).
Write requests are rate limited by server.write_rate and server.write_burst.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				cfg := d.Config.Server
				if addr != "" {
					cfg.Addr = addr
				}
				srv := httpapi.NewServer(httpapi.Handlers{
					Directory: d.Directory,
					Members:   d.Members,
					Relations: d.Relations,
				}, cfg, d.Log)
				return srv.Run(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	return cmd
}
