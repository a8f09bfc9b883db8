package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - http.go: HTTP server configuration
//   - render.go: Renderer subprocess and artifact store configuration
//   - synthesis.go: Generative code synthesis configuration
//   - database.go: Render ledger and cache backend configuration
//   - services.go: Service mode and janitor configuration
type AppConfig struct {
	// IsDev controls development mode behavior (debug logging).
	// Set DEV=true for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// LogLevel selects the slog level: debug, info, warn, error.
	// Dev mode forces debug.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Render pipeline configuration
	Render   RenderConfig   `envPrefix:"RENDER_"`
	Artifact ArtifactConfig `envPrefix:"ARTIFACT_"`

	// Code synthesis configuration
	Synthesis SynthesisConfig `envPrefix:"SYNTH_"`

	// Persistence configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// Service mode configuration
	Services string `env:"SERVICES" envDefault:"http"`

	// Janitor configuration
	Janitor JanitorConfig `envPrefix:"JANITOR_"`

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Render.Sanitize()
	c.Artifact.Sanitize()
	c.Synthesis.Sanitize()
	c.Janitor.Sanitize()
	c.Observability.Sanitize()
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsHTTPServerEnabled returns true if the HTTP server service is enabled.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeHTTP]
}

// IsJanitorEnabled returns true if the scratch janitor service is enabled.
func (c *AppConfig) IsJanitorEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeJanitor]
}
