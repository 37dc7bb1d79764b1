package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	dashboard "github.com/vango-go/dashboard"
	"github.com/vango-go/dashboard/app/routes"
	"github.com/vango-go/dashboard/internal/config"
	"github.com/vango-go/dashboard/pkg/middleware"
)

// loadConfig resolves the --config flag (a file or a directory), applies
// environment and flag overrides and validates the result.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch target := flags.config; {
	case target == "":
		cfg, err = config.Load(".")
	case isDir(target):
		cfg, err = config.Load(target)
	default:
		cfg, err = config.LoadFile(target)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// newLogger builds the process logger from the log settings.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.Log.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("service", cfg.Name), nil
}

// buildApp creates the application with every page registered.
func buildApp(cfg *config.Config, logger *slog.Logger, devMode bool) *dashboard.App {
	appCfg := dashboard.Config{
		Static: dashboard.StaticConfig{
			Dir:    cfg.PublicPath(),
			Prefix: cfg.Static.Prefix,
		},
		Server: dashboard.ServerConfig{
			ReadTimeout:     cfg.Server.ReadTimeout.Duration,
			WriteTimeout:    cfg.Server.WriteTimeout.Duration,
			IdleTimeout:     cfg.Server.IdleTimeout.Duration,
			ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
		},
		RateLimit: dashboard.RateLimitConfig{
			RequestsPerSecond: cfg.Server.RateLimit.RequestsPerSecond,
			Burst:             cfg.Server.RateLimit.Burst,
		},
		DevMode: devMode,
		Logger:  logger,
	}
	if !devMode {
		appCfg.Static.CacheControl = dashboard.CacheControlProduction
	}

	if cfg.Observability.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		appCfg.Metrics = middleware.NewMetrics(
			middleware.WithRegistry(reg),
			middleware.WithConstLabels(prometheus.Labels{"app": cfg.Name}),
		)
		appCfg.MetricsPath = cfg.Observability.Metrics.Path
		appCfg.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}
	if cfg.Observability.Tracing.Enabled {
		appCfg.Tracer = middleware.NewTracer(
			middleware.WithTracerName(cfg.Observability.Tracing.ServiceName),
		)
	}

	app := dashboard.New(appCfg)
	routes.Register(app)
	return app
}
