package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP API server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeJanitor runs the scratch janitor sweep loop.
	ServiceModeJanitor ServiceMode = "janitor"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{
		ServiceModeHTTP,
		ServiceModeJanitor,
	}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	parts := strings.Split(servicesStr, ",")
	for _, part := range parts {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP, ServiceModeJanitor:
			services[mode] = true
		default:
			return nil, fmt.Errorf("invalid service name: %q (valid options: http, janitor)", serviceName)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// JanitorConfig contains scratch janitor service configuration.
type JanitorConfig struct {
	// Interval is the sweep cadence.
	Interval time.Duration `env:"INTERVAL" envDefault:"5m"`

	// MaxAge is the minimum age of a scratch directory before the janitor
	// removes it. Live jobs clean up after themselves; the janitor only
	// collects leftovers from crashed or killed runs.
	MaxAge time.Duration `env:"MAX_AGE" envDefault:"1h"`
}

// Sanitize applies guardrails to janitor configuration values.
func (j *JanitorConfig) Sanitize() {
	// Enforce minimum intervals to avoid busy sweeping
	if j.Interval < 1*time.Minute {
		j.Interval = 1 * time.Minute
	}
	if j.MaxAge < 5*time.Minute {
		j.MaxAge = 5 * time.Minute
	}
}
