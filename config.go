package dashboard

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vango-go/dashboard/pkg/middleware"
)

// Config is the application configuration.
type Config struct {
	// Static configures static file serving.
	Static StaticConfig

	// Server configures the HTTP server started by Run.
	Server ServerConfig

	// RateLimit configures the global request rate limiter.
	RateLimit RateLimitConfig

	// DevMode pretty-prints HTML, disables caching, exposes render errors in
	// responses and injects the hot reload client.
	DevMode bool

	// Lang is the html lang attribute. Default: "en".
	Lang string

	// Logger is the structured logger for the application.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Metrics records request and render metrics when non-nil.
	Metrics *middleware.Metrics

	// MetricsPath is where MetricsHandler is mounted. Default: "/metrics".
	MetricsPath string

	// MetricsHandler serves the metrics scrape endpoint, typically
	// promhttp.HandlerFor(registry, ...). Nil disables the endpoint.
	MetricsHandler http.Handler

	// Tracer wraps requests and renders in spans when non-nil.
	Tracer *middleware.Tracer
}

// StaticConfig configures static file serving.
type StaticConfig struct {
	// Dir is the directory containing static files (e.g., "public").
	// Empty disables static serving.
	Dir string

	// Prefix is the URL path prefix for static files.
	// A file at public/logo.svg with Prefix="/" is served at /logo.svg.
	// Default: "/".
	Prefix string

	// CacheControl determines caching behavior for static files.
	CacheControl CacheControlStrategy

	// Headers are added to every static response.
	Headers map[string]string
}

// ServerConfig configures the http.Server used by Run.
type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// RateLimitConfig configures the global rate limiter.
// A zero RequestsPerSecond disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// CacheControlStrategy determines caching behavior for static files.
type CacheControlStrategy int

const (
	// CacheControlNone sends no-store headers. Used in development.
	CacheControlNone CacheControlStrategy = iota

	// CacheControlProduction caches fingerprinted files for a year and
	// everything else for an hour with revalidation.
	CacheControlProduction
)

// DefaultConfig returns a development configuration.
func DefaultConfig() Config {
	return Config{
		Static: StaticConfig{
			Prefix:       "/",
			CacheControl: CacheControlNone,
		},
		Server:      DefaultServerConfig(),
		DevMode:     true,
		Lang:        "en",
		MetricsPath: "/metrics",
	}
}

// DefaultServerConfig returns the server timeouts used when none are set.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func (c *Config) applyDefaults() {
	if c.Static.Prefix == "" {
		c.Static.Prefix = "/"
	}
	if c.Lang == "" {
		c.Lang = "en"
	}
	if c.MetricsPath == "" {
		c.MetricsPath = "/metrics"
	}
	d := DefaultServerConfig()
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = d.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = d.WriteTimeout
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = d.IdleTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = d.ShutdownTimeout
	}
}
