package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-portfolio/internal/app"
	"github.com/goliatone/go-portfolio/internal/server"
	"github.com/goliatone/go-portfolio/pkg/site"
)

// serve: run the HTTP server until interrupted.
func serveCmd(rt *runtime) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, rt.cfg, rt.logger, site.WithAssetPrefix(server.AssetPrefix))
			if err != nil {
				return err
			}
			defer a.Close()

			var options []server.Option
			if addr != "" {
				options = append(options, server.WithAddr(addr))
			}
			srv, err := a.Server(options...)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides BIND_ADDR and PORT")
	return cmd
}
