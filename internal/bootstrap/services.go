package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scenesmith/scenesmith/config"
	"github.com/scenesmith/scenesmith/internal/adapters/gemini"
	"github.com/scenesmith/scenesmith/internal/adapters/manim"
	"github.com/scenesmith/scenesmith/internal/data"
	"github.com/scenesmith/scenesmith/internal/observability/statsd"
	"github.com/scenesmith/scenesmith/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Render        *service.RenderService
	Synthesis     *service.SynthesisService
	Store         *data.FSArtifactStore
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink   *statsd.Client
	MetricsConfig config.MetricsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
// Both backends are optional: the render ledger needs Postgres and the
// synthesis cache needs Redis, and the pipeline runs without either.
type serviceRepositories struct {
	DB         *sql.DB
	Redis      redis.UniversalClient
	RecordRepo *data.RenderRecordRepo
	CacheRepo  *data.RedisCacheRepo
}

// buildObservability configures the metrics sink.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddr,
			Prefix:  cfg.Metrics.Prefix,
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	return ObservabilityContainer{
		MetricsSink:   metricsSink,
		MetricsConfig: cfg.Metrics,
	}
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB, redisClient redis.UniversalClient) *serviceRepositories {
	repos := &serviceRepositories{
		DB:    db,
		Redis: redisClient,
	}
	if db != nil {
		repos.RecordRepo = data.NewRenderRecordRepo(db)
	}
	if redisClient != nil {
		repos.CacheRepo = data.NewRedisCacheRepo(redisClient)
	}
	return repos
}

// buildSynthesizer constructs the generative client when credentials allow.
// A misconfigured synthesizer is not fatal: code-mode renders keep working,
// and prompt-mode requests surface a configuration error instead.
func buildSynthesizer(ctx context.Context, cfg config.SynthesisConfig, logger *slog.Logger) *gemini.Client {
	client, err := gemini.NewClient(ctx, cfg, logger)
	if err != nil {
		logger.Warn("code synthesis unavailable", "error", err)
		return nil
	}
	return client
}

type synthesisServiceDeps struct {
	Synthesizer *gemini.Client
	Repos       *serviceRepositories
	Config      config.SynthesisConfig
	Logger      *slog.Logger
	Metrics     *statsd.Client
}

func newSynthesisService(deps synthesisServiceDeps) *service.SynthesisService {
	if deps.Synthesizer == nil {
		return nil
	}

	opts := service.SynthesisServiceOptions{
		Synthesizer: deps.Synthesizer,
		Config:      deps.Config,
		Logger:      deps.Logger,
	}
	if deps.Config.CacheEnabled && deps.Repos.CacheRepo != nil {
		opts.Cache = deps.Repos.CacheRepo
	}
	if deps.Metrics != nil {
		opts.Metrics = deps.Metrics
	}
	return service.NewSynthesisService(opts)
}

type renderServiceDeps struct {
	Store     *data.FSArtifactStore
	Synthesis *service.SynthesisService
	Repos     *serviceRepositories
	Config    *config.AppConfig
	Logger    *slog.Logger
	Metrics   *statsd.Client
}

func newRenderService(deps renderServiceDeps) (*service.RenderService, error) {
	pipeline := service.RenderPipeline{
		Runner:  manim.NewRunner(deps.Config.Render, deps.Logger),
		Locator: manim.NewLocator(deps.Config.Render.Format),
		Store:   deps.Store,
	}
	if deps.Synthesis != nil {
		pipeline.Synthesizer = deps.Synthesis
	}

	opts := service.RenderServiceOptions{
		Pipeline: pipeline,
		Render:   deps.Config.Render,
		Artifact: deps.Config.Artifact,
		Logger:   deps.Logger,
	}
	if deps.Repos.RecordRepo != nil {
		opts.Records = deps.Repos.RecordRepo
	}
	if deps.Metrics != nil {
		opts.Metrics = deps.Metrics
	}
	return service.NewRenderService(opts)
}

// DomainServicesOptions groups inputs for domain service wiring.
type DomainServicesOptions struct {
	Repos         *serviceRepositories
	Observability ObservabilityContainer
	Config        *config.AppConfig
	Logger        *slog.Logger
}

// buildDomainServices wires business services using repositories and observability adapters.
func buildDomainServices(ctx context.Context, opts *DomainServicesOptions) (ServiceContainer, error) {
	if opts == nil {
		return ServiceContainer{}, errors.New("domain services options are required")
	}
	svcLogger := opts.Logger
	if svcLogger == nil {
		svcLogger = slog.Default()
	}

	appCfg := opts.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	store, err := data.NewFSArtifactStore(appCfg.Artifact)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create artifact store: %w", err)
	}

	synthesizer := buildSynthesizer(ctx, appCfg.Synthesis, svcLogger)
	synthesisService := newSynthesisService(synthesisServiceDeps{
		Synthesizer: synthesizer,
		Repos:       opts.Repos,
		Config:      appCfg.Synthesis,
		Logger:      svcLogger,
		Metrics:     opts.Observability.MetricsSink,
	})

	renderService, err := newRenderService(renderServiceDeps{
		Store:     store,
		Synthesis: synthesisService,
		Repos:     opts.Repos,
		Config:    appCfg,
		Logger:    svcLogger,
		Metrics:   opts.Observability.MetricsSink,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create render service: %w", err)
	}

	return ServiceContainer{
		Render:        renderService,
		Synthesis:     synthesisService,
		Store:         store,
		Observability: opts.Observability,
	}, nil
}

// NewServices builds the full service container from infrastructure handles.
func NewServices(ctx context.Context, deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil {
		return ServiceContainer{}, errors.New("service deps are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var obsCfg config.ObservabilityConfig
	if deps.Config != nil {
		obsCfg = deps.Config.Observability
	}
	observability := buildObservability(logger, obsCfg)
	repos := buildRepositories(deps.DB, deps.RedisClient)
	return buildDomainServices(ctx, &DomainServicesOptions{
		Repos:         repos,
		Observability: observability,
		Config:        deps.Config,
		Logger:        logger,
	})
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

const (
	// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
	shutdownWaitTimeout = 15 * time.Second
)

// serviceStartupDeps groups dependencies for service startup.
type serviceStartupDeps struct {
	ctx             context.Context
	cfg             *ServiceOrchestrationConfig
	logger          *slog.Logger
	enabledServices map[config.ServiceMode]bool
	errCh           chan error
}

// backgroundService describes a startable background component.
type backgroundService struct {
	mode  config.ServiceMode
	name  string
	start func(context.Context) error
}

// backgroundServiceHandle tracks a running background service.
type backgroundServiceHandle struct {
	mode config.ServiceMode
	name string
	done <-chan struct{}
}

// startHTTPServerIfEnabled starts the HTTP server if enabled.
func startHTTPServerIfEnabled(deps *serviceStartupDeps) *http.Server {
	if deps == nil || deps.cfg == nil || !deps.enabledServices[config.ServiceModeHTTP] {
		return nil
	}
	return StartHTTPServer(&HTTPServerConfig{
		Config:   deps.cfg.Config,
		Services: deps.cfg.Services,
		Logger:   deps.logger,
	})
}

func launchBackground(ctx context.Context, deps *serviceStartupDeps, descriptor backgroundService) <-chan struct{} {
	if deps == nil || !deps.enabledServices[descriptor.mode] {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := descriptor.start(ctx); err != nil {
			errMsg := fmt.Errorf("%s failed: %w", descriptor.name, err)
			select {
			case deps.errCh <- errMsg:
			case <-ctx.Done():
			default:
				if deps.logger != nil {
					deps.logger.WarnContext(
						ctx,
						"dropping background service error",
						"service",
						descriptor.name,
						"error",
						errMsg,
					)
				} else {
					slog.Default().WarnContext(ctx, "dropping background service error", "service", descriptor.name, "error", errMsg)
				}
			}
		}
	}()

	if deps.logger != nil {
		deps.logger.InfoContext(ctx, "background service started", "service", descriptor.name, "mode", descriptor.mode)
	} else {
		slog.Default().InfoContext(ctx, "background service started", "service", descriptor.name, "mode", descriptor.mode)
	}

	return done
}

func startBackgroundServices(deps *serviceStartupDeps, services []backgroundService) []backgroundServiceHandle {
	if deps == nil {
		return nil
	}
	handles := make([]backgroundServiceHandle, 0, len(services))

	for _, svc := range services {
		done := launchBackground(deps.ctx, deps, svc)
		if done == nil {
			continue
		}

		handles = append(handles, backgroundServiceHandle{
			mode: svc.mode,
			name: svc.name,
			done: done,
		})
	}

	return handles
}

func newJanitorBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeJanitor,
		name: "janitor",
		start: func(ctx context.Context) error {
			if deps == nil || deps.cfg == nil {
				return nil
			}
			janitorCfg := config.JanitorConfig{}
			scratchRoot := ""
			if deps.cfg.Config != nil {
				janitorCfg = deps.cfg.Config.Janitor
				scratchRoot = deps.cfg.Config.Render.ScratchRoot
			}
			return RunJanitor(ctx, JanitorConfig{
				Config:      janitorCfg,
				ScratchRoot: scratchRoot,
				Logger:      deps.logger,
				Metrics:     deps.cfg.Services.Observability.MetricsSink,
			})
		},
	}
}

func buildBackgroundServices(deps *serviceStartupDeps) []backgroundService {
	if deps == nil {
		return nil
	}
	return []backgroundService{
		newJanitorBackgroundService(deps),
	}
}

// ServiceStartupResult holds the results of starting all services.
type ServiceStartupResult struct {
	HTTPServer *http.Server
	Background []backgroundServiceHandle
}

// startServices starts all enabled services and returns their completion channels.
func startServices(deps *serviceStartupDeps) ServiceStartupResult {
	return ServiceStartupResult{
		HTTPServer: startHTTPServerIfEnabled(deps),
		Background: startBackgroundServices(deps, buildBackgroundServices(deps)),
	}
}

// RunServicesWithShutdown starts all enabled services and manages their lifecycle.
// This function blocks until a shutdown signal is received or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	ctx := context.Background()
	serviceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}

	// Determine which services are enabled
	enabledServices, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}
	errCh := make(chan error, errorChannelBufferSize(enabledServices))

	// Start all enabled services
	result := startServices(&serviceStartupDeps{
		ctx:             serviceCtx,
		cfg:             cfg,
		logger:          logger,
		enabledServices: enabledServices,
		errCh:           errCh,
	})

	// Wait for shutdown signal or error
	return waitForShutdown(shutdownConfig{
		ctx:         serviceCtx,
		cancel:      cancel,
		errCh:       errCh,
		httpServer:  result.HTTPServer,
		metrics:     cfg.Services.Observability.MetricsSink,
		logger:      logger,
		backgrounds: result.Background,
	})
}

func errorChannelCapacity(enabled map[config.ServiceMode]bool) int {
	modes := []config.ServiceMode{
		config.ServiceModeHTTP,
		config.ServiceModeJanitor,
	}

	count := 0
	for _, mode := range modes {
		if enabled[mode] {
			count++
		}
	}
	return count
}

func errorChannelBufferSize(enabled map[config.ServiceMode]bool) int {
	size := errorChannelCapacity(enabled) + 1
	if size < 1 {
		return 1
	}
	return size
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx         context.Context
	cancel      context.CancelFunc
	errCh       <-chan error
	httpServer  *http.Server
	metrics     *statsd.Client
	logger      *slog.Logger
	backgrounds []backgroundServiceHandle
}

// waitForShutdown waits for shutdown signal or service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		cfg.cancel() // Cancel service context before waiting
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel() // Cancel service context before waiting
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop attempts to gracefully stop all services.
func gracefulStop(cfg shutdownConfig) error {
	// Gracefully stop HTTP server if running
	if cfg.httpServer != nil {
		// Create a timeout context for HTTP shutdown
		shutdownCtx, cancel := context.WithTimeout(cfg.ctx, shutdownWaitTimeout)
		defer cancel()

		if err := ShutdownHTTPServer(ShutdownConfig{
			Context: shutdownCtx,
			Server:  cfg.httpServer,
			Logger:  cfg.logger,
		}); err != nil {
			return err
		}
	}

	// Wait for background services to finish
	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}

	// Flush buffered metrics after services stop
	if cfg.metrics != nil {
		if err := cfg.metrics.Close(); err != nil && cfg.logger != nil {
			cfg.logger.Warn("failed to close metrics sink", "error", err)
		}
	}

	return nil
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
