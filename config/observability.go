package config

import "strings"

// ObservabilityConfig groups configuration that controls metrics emission.
type ObservabilityConfig struct {
	Metrics MetricsConfig `envPrefix:"METRICS_"`
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.Metrics.Sanitize()
}

// MetricsConfig controls emission of metrics to a StatsD-compatible sink.
// An empty address disables emission entirely.
type MetricsConfig struct {
	StatsdAddr string `env:"STATSD_ADDR" envDefault:""`
	Prefix     string `env:"PREFIX"      envDefault:"scenesmith"`
}

// Sanitize normalises metrics configuration values.
func (c *MetricsConfig) Sanitize() {
	c.StatsdAddr = strings.TrimSpace(c.StatsdAddr)
	c.Prefix = strings.TrimSpace(c.Prefix)
}

// IsEnabled returns true when a statsd target is configured.
func (c *MetricsConfig) IsEnabled() bool {
	return c.StatsdAddr != ""
}
