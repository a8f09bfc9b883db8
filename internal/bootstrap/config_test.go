package bootstrap

import (
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
	}{
		{raw: "debug", want: slog.LevelDebug},
		{raw: "INFO", want: slog.LevelInfo},
		{raw: "warn", want: slog.LevelWarn},
		{raw: "warning", want: slog.LevelWarn},
		{raw: "error", want: slog.LevelError},
		{raw: "  Error  ", want: slog.LevelError},
		{raw: "", want: slog.LevelInfo},
		{raw: "nonsense", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := parseLogLevel(tt.raw); got != tt.want {
				t.Fatalf("parseLogLevel(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
