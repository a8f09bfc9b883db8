package config

import (
	"strings"
	"time"
)

// SynthesisConfig contains generative code synthesis configuration.
type SynthesisConfig struct {
	// Model is the generative model asked for scene code.
	Model string `env:"MODEL" envDefault:"gemini-2.5-pro"`

	// CredentialsFile is the path to a service account key used to
	// authenticate against the generative API.
	CredentialsFile string `env:"CREDENTIALS_FILE" envDefault:"service-account-key.json"`

	// APIKey authenticates against the generative API directly.
	// Takes precedence over CredentialsFile when set.
	APIKey string `env:"API_KEY"`

	// Endpoint overrides the generative API base URL. Primarily for tests.
	Endpoint string `env:"ENDPOINT"`

	// Timeout bounds a single upstream generation call.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"60s"`

	// CacheEnabled turns on Redis caching of synthesized code.
	CacheEnabled bool `env:"CACHE_ENABLED" envDefault:"false"`

	// CacheTTL is the lifetime of one cached generation.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"15m"`
}

// Sanitize applies guardrails to synthesis configuration values.
func (s *SynthesisConfig) Sanitize() {
	s.Model = strings.TrimSpace(s.Model)
	if s.Model == "" {
		s.Model = "gemini-2.5-pro"
	}
	s.CredentialsFile = strings.TrimSpace(s.CredentialsFile)
	s.APIKey = strings.TrimSpace(s.APIKey)
	s.Endpoint = strings.TrimSpace(s.Endpoint)
	if s.Timeout <= 0 {
		s.Timeout = 60 * time.Second
	}
	if s.CacheTTL <= 0 {
		s.CacheTTL = 15 * time.Minute
	}
}
