package bootstrap

import (
	"testing"

	"github.com/scenesmith/scenesmith/config"
)

func TestErrorChannelCapacity(t *testing.T) {
	tests := []struct {
		name  string
		modes []config.ServiceMode
		want  int
	}{
		{
			name: "no services enabled",
			want: 0,
		},
		{
			name:  "http only",
			modes: []config.ServiceMode{config.ServiceModeHTTP},
			want:  1,
		},
		{
			name:  "janitor only",
			modes: []config.ServiceMode{config.ServiceModeJanitor},
			want:  1,
		},
		{
			name:  "http and janitor",
			modes: []config.ServiceMode{config.ServiceModeHTTP, config.ServiceModeJanitor},
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enabled := make(map[config.ServiceMode]bool, len(tt.modes))
			for _, mode := range tt.modes {
				enabled[mode] = true
			}

			if got := errorChannelCapacity(enabled); got != tt.want {
				t.Fatalf("errorChannelCapacity(%v) = %d, want %d", tt.modes, got, tt.want)
			}
		})
	}
}

func TestErrorChannelBufferSize(t *testing.T) {
	tests := []struct {
		name  string
		modes []config.ServiceMode
		want  int
	}{
		{
			name: "no services enabled",
			want: 1,
		},
		{
			name:  "http only",
			modes: []config.ServiceMode{config.ServiceModeHTTP},
			want:  2,
		},
		{
			name:  "all services enabled",
			modes: []config.ServiceMode{config.ServiceModeHTTP, config.ServiceModeJanitor},
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enabled := make(map[config.ServiceMode]bool, len(tt.modes))
			for _, mode := range tt.modes {
				enabled[mode] = true
			}

			if got := errorChannelBufferSize(enabled); got != tt.want {
				t.Fatalf("errorChannelBufferSize(%v) = %d, want %d", tt.modes, got, tt.want)
			}
		})
	}
}

func TestGetEnabledServices(t *testing.T) {
	cfg := &config.AppConfig{Services: "http,janitor"}

	got := GetEnabledServices(cfg)
	if len(got) != 2 {
		t.Fatalf("GetEnabledServices() = %v, want two entries", got)
	}

	seen := make(map[string]bool, len(got))
	for _, name := range got {
		seen[name] = true
	}
	if !seen["http"] || !seen["janitor"] {
		t.Fatalf("GetEnabledServices() = %v, want http and janitor", got)
	}
}

func TestGetEnabledServicesInvalid(t *testing.T) {
	cfg := &config.AppConfig{Services: "http,typo"}

	if got := GetEnabledServices(cfg); len(got) != 0 {
		t.Fatalf("GetEnabledServices() = %v, want empty for invalid mode", got)
	}
}
