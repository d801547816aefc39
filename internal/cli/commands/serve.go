package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ku524/clickhouse-datasource/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rewrite operations over HTTP",
		Long: `Start an HTTP server exposing the rewrite operations as a JSON API,
for use by log-explorer frontends. The server shuts down cleanly on
SIGINT or SIGTERM.`,
		Example: `  chsql serve --listen :8686`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())
			addr := listen
			if addr == "" {
				addr = cfg.Listen
			}

			srv := server.New(server.Config{
				Addr:         addr,
				DefaultLimit: cfg.DefaultLimit,
				TimeColumn:   cfg.TimeColumn,
				Logger:       GetLogger(cmd.Context()),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default: configured listen)")

	return cmd
}
