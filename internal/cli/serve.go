package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/r9s-ai/langgate/internal/config"
	"github.com/r9s-ai/langgate/internal/server"
)

type serveOptions struct {
	host string
	port int
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := serveOptions{
		host: config.DefaultHost,
		port: config.DefaultPort,
	}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the directory page, /health and /languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, reg, source, err := root.loadRegistry()
			if err != nil {
				return err
			}
			// Flags only win when given; otherwise config/env decide.
			host, port := "", 0
			if cmd.Flags().Changed("host") {
				host = opts.host
			}
			if cmd.Flags().Changed("port") {
				port = opts.port
			}
			if err := cfg.ApplyListen(host, port); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, cfg, reg, source)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&opts.host, "host", opts.host, "bind address")
	fs.IntVar(&opts.port, "port", opts.port, "bind port")
	return cmd
}
