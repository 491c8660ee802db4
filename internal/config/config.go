// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config filled with defaults.
// - Load layers defaults, an optional YAML file, an optional dotenv file and env vars.
// - Errors returned to callers wrap this package's sentinel errors.
package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Server timeouts in milliseconds.
	ReadTimeoutMS       int `koanf:"read_timeout_ms"`
	ReadHeaderTimeoutMS int `koanf:"read_header_timeout_ms"`
	WriteTimeoutMS      int `koanf:"write_timeout_ms"`
	IdleTimeoutMS       int `koanf:"idle_timeout_ms"`
	ShutdownTimeoutMS   int `koanf:"shutdown_timeout_ms"`

	// MaxBodyBytes caps request bodies read by handlers.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// CORSAllowedOrigins is a comma separated origin list; "*" allows any.
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`

	// MetricsEnabled exposes GET /metrics and turns on recording.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// DocsEnabled exposes GET /api-docs and GET /openapi.yaml.
	DocsEnabled bool `koanf:"docs_enabled"`

	// Metric naming: namespace_subsystem_prefix_name.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`
	MetricsPrefix    string `koanf:"metrics_prefix"`

	// MetricsRefreshIntervalMS is how often runtime gauges are sampled.
	MetricsRefreshIntervalMS int `koanf:"metrics_refresh_interval_ms"`

	// MetricsBucketsMS lists latency histogram bounds in milliseconds,
	// comma separated. Empty keeps the Prometheus defaults.
	MetricsBucketsMS string `koanf:"metrics_buckets_ms"`

	// MetricsLabels adds constant labels to every metric, e.g. "env=prod,region=eu".
	MetricsLabels string `koanf:"metrics_labels"`
}

var metricNameRE = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":8080",
		ReadTimeoutMS:       10_000,
		ReadHeaderTimeoutMS: 5_000,
		WriteTimeoutMS:      10_000,
		IdleTimeoutMS:       60_000,
		ShutdownTimeoutMS:   30_000,
		MaxBodyBytes:        1 << 20,
		CORSAllowedOrigins:  "*",
		MetricsEnabled:      true,
		DocsEnabled:         true,

		MetricsNamespace:         "hello",
		MetricsSubsystem:         "api",
		MetricsRefreshIntervalMS: 10_000,
	}
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}

	timeouts := map[string]int{
		"read_timeout_ms":        c.ReadTimeoutMS,
		"read_header_timeout_ms": c.ReadHeaderTimeoutMS,
		"write_timeout_ms":       c.WriteTimeoutMS,
		"idle_timeout_ms":        c.IdleTimeoutMS,
		"shutdown_timeout_ms":    c.ShutdownTimeoutMS,
	}
	for key, v := range timeouts {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, key, v)
		}
	}

	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: max_body_bytes must be positive, got %d", ErrInvalidConfig, c.MaxBodyBytes)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: invalid log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: invalid log_format %q", ErrInvalidConfig, c.LogFormat)
	}

	return c.validateMetrics()
}

func (c *Config) validateMetrics() error {
	names := []struct{ key, val string }{
		{"metrics_namespace", c.MetricsNamespace},
		{"metrics_subsystem", c.MetricsSubsystem},
		{"metrics_prefix", c.MetricsPrefix},
	}
	for _, n := range names {
		if v := strings.TrimSpace(n.val); v != "" && !metricNameRE.MatchString(v) {
			return fmt.Errorf("%w: invalid %s %q", ErrInvalidConfig, n.key, n.val)
		}
	}
	if c.MetricsRefreshIntervalMS <= 0 {
		return fmt.Errorf("%w: metrics_refresh_interval_ms must be positive, got %d", ErrInvalidConfig, c.MetricsRefreshIntervalMS)
	}
	if _, err := c.HistogramBuckets(); err != nil {
		return err
	}
	if _, err := c.ConstLabels(); err != nil {
		return err
	}
	return nil
}

// HistogramBuckets parses MetricsBucketsMS. An empty list returns nil.
func (c *Config) HistogramBuckets() ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(c.MetricsBucketsMS, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("%w: invalid metrics_buckets_ms entry %q", ErrInvalidConfig, part)
		}
		out = append(out, v)
	}
	return out, nil
}

// ConstLabels parses MetricsLabels into a label map.
func (c *Config) ConstLabels() (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(c.MetricsLabels, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || v == "" || !metricNameRE.MatchString(k) || strings.HasPrefix(k, "__") {
			return nil, fmt.Errorf("%w: invalid metrics_labels entry %q", ErrInvalidConfig, pair)
		}
		out[k] = v
	}
	return out, nil
}

// MetricsRefreshInterval returns MetricsRefreshIntervalMS as a duration.
func (c *Config) MetricsRefreshInterval() time.Duration { return ms(c.MetricsRefreshIntervalMS) }

// AllowedOrigins splits CORSAllowedOrigins, dropping blanks.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ReadTimeout returns ReadTimeoutMS as a duration.
func (c *Config) ReadTimeout() time.Duration { return ms(c.ReadTimeoutMS) }

// ReadHeaderTimeout returns ReadHeaderTimeoutMS as a duration.
func (c *Config) ReadHeaderTimeout() time.Duration { return ms(c.ReadHeaderTimeoutMS) }

// WriteTimeout returns WriteTimeoutMS as a duration.
func (c *Config) WriteTimeout() time.Duration { return ms(c.WriteTimeoutMS) }

// IdleTimeout returns IdleTimeoutMS as a duration.
func (c *Config) IdleTimeout() time.Duration { return ms(c.IdleTimeoutMS) }

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration { return ms(c.ShutdownTimeoutMS) }

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }
