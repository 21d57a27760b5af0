// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load(ctx) layers an optional YAML file and FPL_* env vars on top.
// - Validation failures wrap ErrInvalidConfig; loader failures wrap ErrLoadConfig.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataFile is the JSON file holding every tracked team.
	DataFile string `koanf:"data_file"`

	// UpstreamBaseURL is the root of the Fantasy Premier League API.
	UpstreamBaseURL string `koanf:"upstream_base_url"`

	// UserAgent is sent with every upstream request.
	UserAgent string `koanf:"user_agent"`

	// FetchTimeoutMS bounds an upstream request. Zero means no client timeout.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// MetricsEnabled turns Prometheus recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace and MetricsSubsystem prefix every metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsBucketsMS overrides the latency histogram buckets. Empty keeps
	// the built-in buckets.
	MetricsBucketsMS []float64 `koanf:"metrics_buckets_ms"`

	// MetricsConstLabels are attached to every metric.
	MetricsConstLabels map[string]string `koanf:"metrics_const_labels"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		DataFile:        "team_data.json",
		UpstreamBaseURL: "https://fantasy.premierleague.com/api",
		UserAgent:       "fpl-tracker/1.0",
		FetchTimeoutMS:  0,

		MetricsEnabled:   true,
		MetricsNamespace: "fpl",
		MetricsSubsystem: "tracker",
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}
