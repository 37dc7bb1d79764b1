package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-go/dashboard/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "dashboard.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "dashboard.yaml"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default export output directory.
	DefaultOutput = "dist"

	// DefaultMetricsPath is the default Prometheus scrape path.
	DefaultMetricsPath = "/metrics"

	// EnvProduction is the DASHBOARD_ENV value that disables dev mode.
	EnvProduction = "production"

	// EnvDevelopment is the default environment.
	EnvDevelopment = "development"
)

// configFileNames lists the file names Load looks for, in order.
var configFileNames = []string{ConfigFileName, YAMLConfigFileName, "dashboard.yml"}

// Config represents the complete dashboard configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Env is the runtime environment ("development" or "production").
	Env string `json:"env,omitempty" yaml:"env,omitempty"`

	// Server contains HTTP server settings.
	Server ServerConfig `json:"server" yaml:"server"`

	// Static contains static file serving configuration.
	Static StaticConfig `json:"static" yaml:"static"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev" yaml:"dev"`

	// Export contains static export configuration.
	Export ExportConfig `json:"export" yaml:"export"`

	// Observability contains metrics and tracing configuration.
	Observability ObservabilityConfig `json:"observability" yaml:"observability"`

	// Log contains logging configuration.
	Log LogConfig `json:"log" yaml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string          `json:"host,omitempty" yaml:"host,omitempty"`
	Port            int             `json:"port,omitempty" yaml:"port,omitempty"`
	ReadTimeout     Duration        `json:"readTimeout" yaml:"readTimeout"`
	WriteTimeout    Duration        `json:"writeTimeout" yaml:"writeTimeout"`
	IdleTimeout     Duration        `json:"idleTimeout" yaml:"idleTimeout"`
	ShutdownTimeout Duration        `json:"shutdownTimeout" yaml:"shutdownTimeout"`
	RateLimit       RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`
}

// RateLimitConfig configures the global request rate limiter.
// A zero RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `json:"requestsPerSecond,omitempty" yaml:"requestsPerSecond,omitempty"`
	Burst             int     `json:"burst,omitempty" yaml:"burst,omitempty"`
}

// StaticConfig contains static file serving configuration.
type StaticConfig struct {
	// Dir is the directory containing static files.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// Prefix is the URL prefix for static files (default: "/").
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Watch contains paths to watch for changes.
	Watch []string `json:"watch,omitempty" yaml:"watch,omitempty"`

	// Debounce is how long the watcher waits for changes to settle.
	Debounce Duration `json:"debounce" yaml:"debounce"`

	// HotReload enables the browser reload socket.
	HotReload bool `json:"hotReload" yaml:"hotReload"`
}

// ExportConfig contains static export settings.
type ExportConfig struct {
	// Output is the output directory for exported pages.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// S3 configures an optional upload of the export.
	S3 S3Config `json:"s3" yaml:"s3"`
}

// S3Config identifies the bucket an export is uploaded to.
type S3Config struct {
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
}

// Enabled reports whether an upload target is configured.
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// ObservabilityConfig contains metrics and tracing settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
}

// TracingConfig configures OpenTelemetry spans.
type TracingConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	ServiceName string `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Name: "dashboard",
		Env:  EnvDevelopment,
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ReadTimeout:     Seconds(10),
			WriteTimeout:    Seconds(30),
			IdleTimeout:     Seconds(120),
			ShutdownTimeout: Seconds(10),
		},
		Static: StaticConfig{
			Dir:    "public",
			Prefix: "/",
		},
		Dev: DevConfig{
			Watch:     []string{"public"},
			Debounce:  Duration{100 * time.Millisecond},
			HotReload: true,
		},
		Export: ExportConfig{
			Output: DefaultOutput,
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{Enabled: true, Path: DefaultMetricsPath},
			Tracing: TracingConfig{ServiceName: "dashboard"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory. It looks for
// dashboard.json, then dashboard.yaml. A directory without a config file
// yields the defaults.
func Load(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	cfg := New()
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No config file at " + path).
				WithSuggestion("Create dashboard.json or run without --config to use defaults")
		}
		return nil, errors.New(errors.CodeInvalidConfig).Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, errors.New(errors.CodeInvalidConfig).
				WithLocation(path, 0).
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid YAML")
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, errors.New(errors.CodeInvalidConfig).
				WithLocation(path, 0).
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid JSON")
		}
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// SaveTo writes the configuration to path, as YAML or JSON by extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()
	if c.Env == "" {
		c.Env = d.Env
	}
	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Static.Dir == "" {
		c.Static.Dir = d.Static.Dir
	}
	if c.Static.Prefix == "" {
		c.Static.Prefix = "/"
	}
	if c.Dev.Watch == nil {
		c.Dev.Watch = d.Dev.Watch
	}
	if c.Export.Output == "" {
		c.Export.Output = DefaultOutput
	}
	if c.Observability.Metrics.Path == "" {
		c.Observability.Metrics.Path = DefaultMetricsPath
	}
	if c.Observability.Tracing.ServiceName == "" {
		c.Observability.Tracing.ServiceName = c.Name
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// ApplyEnv overrides settings from environment variables: PORT, HOST and
// DASHBOARD_ENV. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New(errors.CodeInvalidPort).
				WithDetail(fmt.Sprintf("PORT=%q is not a number", v)).
				Wrap(err)
		}
		c.Server.Port = port
	}
	if v := getenv("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := getenv("DASHBOARD_ENV"); v != "" {
		c.Env = v
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New(errors.CodeInvalidPort).
			WithDetail(fmt.Sprintf("Port %d is outside 1-65535", c.Server.Port))
	}
	if !strings.HasPrefix(c.Static.Prefix, "/") {
		return errors.New(errors.CodeInvalidStatic).
			WithDetail(fmt.Sprintf("Static prefix %q must start with '/'", c.Static.Prefix))
	}
	if c.Observability.Metrics.Enabled && !strings.HasPrefix(c.Observability.Metrics.Path, "/") {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail(fmt.Sprintf("Metrics path %q must start with '/'", c.Observability.Metrics.Path))
	}
	if c.Server.RateLimit.RequestsPerSecond < 0 || c.Server.RateLimit.Burst < 0 {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail("Rate limit values must not be negative")
	}
	if c.Dev.Debounce.Duration < 0 {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail("Dev debounce must not be negative")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail(fmt.Sprintf("Log format %q must be text or json", c.Log.Format))
	}
	if c.Export.S3.Enabled() && c.Export.S3.Region == "" {
		return errors.New(errors.CodeInvalidS3Config).
			WithDetail("export.s3.region is required when export.s3.bucket is set")
	}
	return nil
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}

// IsProduction reports whether the config targets production.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Address returns the host:port listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the base URL of the server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// resolve makes p absolute relative to the config directory.
func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// OutputPath returns the path to the export output directory.
func (c *Config) OutputPath() string {
	return c.resolve(c.Export.Output)
}

// PublicPath returns the path to the static files directory.
func (c *Config) PublicPath() string {
	return c.resolve(c.Static.Dir)
}

// WatchPaths returns the dev watch paths resolved against the config directory.
func (c *Config) WatchPaths() []string {
	out := make([]string, 0, len(c.Dev.Watch))
	for _, p := range c.Dev.Watch {
		out = append(out, c.resolve(p))
	}
	return out
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range configFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.CodeConfigNotFound).
				WithDetail("No dashboard.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
