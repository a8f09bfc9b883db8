package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/scenesmith/scenesmith/config"
	"github.com/scenesmith/scenesmith/internal/observability/statsd"
	"github.com/scenesmith/scenesmith/internal/service"
)

// JanitorConfig contains configuration for the scratch janitor.
type JanitorConfig struct {
	Config      config.JanitorConfig
	ScratchRoot string
	Logger      *slog.Logger
	Metrics     statsd.Sink
}

// RunJanitor starts the scratch janitor sweep loop.
func RunJanitor(ctx context.Context, cfg JanitorConfig) error {
	svc, err := service.NewJanitorService(service.JanitorServiceOptions{
		Config:      cfg.Config,
		ScratchRoot: cfg.ScratchRoot,
		Logger:      cfg.Logger,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create janitor service: %w", err)
	}

	return svc.Run(ctx)
}
