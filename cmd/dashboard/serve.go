package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// serveOptions are the flags shared by serve and dev.
type serveOptions struct {
	port int
	host string
}

func (o *serveOptions) bind(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&o.host, "host", "H", "", "Host to bind to (default from config)")
}

func serveCmd(flags *globalFlags) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the production server",
		Long: `Start the production server.

Pages are rendered compactly, static files are cached, and metrics are
served when enabled in the config.

Examples:
  dashboard serve
  dashboard serve --port=8080
  DASHBOARD_ENV=production PORT=8080 dashboard serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, flags, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, flags *globalFlags, opts serveOptions) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	if opts.port > 0 {
		cfg.Server.Port = opts.port
	}
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	app := buildApp(cfg, logger, false)

	out := cmd.OutOrStdout()
	printBanner(out)
	success(out, "Serving %d pages on %s", len(app.Routes()), cfg.URL())
	if cfg.Observability.Metrics.Enabled {
		info(out, "Metrics at %s%s", cfg.URL(), cfg.Observability.Metrics.Path)
	}
	return app.Run(ctx, cfg.Address())
}
