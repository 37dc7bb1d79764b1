package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-go/dashboard/internal/config"
	"github.com/vango-go/dashboard/internal/dev"
)

func devCmd(flags *globalFlags) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long: `Start the development server with hot reload.

HTML is pretty-printed, caching is disabled and render errors are shown in
the browser. Changes under the watched directories reload connected
browsers; stylesheet-only changes are swapped in place.

Examples:
  dashboard dev
  dashboard dev --port=8080
  dashboard dev --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runDev(ctx, cmd, flags, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func runDev(ctx context.Context, cmd *cobra.Command, flags *globalFlags, opts serveOptions) error {
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

	out := cmd.OutOrStdout()
	devMode := !cfg.IsProduction()
	if !devMode {
		warn(out, "DASHBOARD_ENV=%s: dev mode disabled", cfg.Env)
	}
	app := buildApp(cfg, logger, devMode)

	printBanner(out)
	info(out, "dev")
	success(out, "Serving %d pages on %s", len(app.Routes()), cfg.URL())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.Run(ctx, cfg.Address()) })

	if devMode && cfg.Dev.HotReload {
		paths := cfg.WatchPaths()
		if p := cfg.Path(); p != "" {
			paths = append(paths, p)
		}
		info(out, "Watching %v", paths)

		reloader := &dev.Reloader{
			Server:   app.Reload(),
			OnConfig: checkConfig,
			Logger:   logger,
		}
		g.Go(func() error {
			return reloader.Watch(ctx, dev.WatcherConfig{
				Paths:    paths,
				Ignore:   dev.DefaultIgnore,
				Debounce: cfg.Dev.Debounce.Duration,
				Logger:   logger,
			})
		})
	}
	return g.Wait()
}

// checkConfig validates an edited config file so mistakes show up in the
// browser overlay. Server settings take effect on restart.
func checkConfig(path string) error {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	return cfg.Validate()
}
