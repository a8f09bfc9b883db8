package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/scenesmith/scenesmith/config"
	"github.com/scenesmith/scenesmith/internal/core"
	"github.com/scenesmith/scenesmith/internal/observability/metrics"
	"github.com/scenesmith/scenesmith/internal/observability/statsd"
)

// synthesisCacheKeyPrefix namespaces cache entries so a shared Redis can
// host other keyspaces without collisions.
const synthesisCacheKeyPrefix = "synthesis:"

// SynthesisServiceOptions groups dependencies for SynthesisService.
type SynthesisServiceOptions struct {
	Synthesizer core.CodeSynthesizer   // Required: upstream code generator
	Cache       core.CacheRepository   // Optional: memoizes generated scenes
	Config      config.SynthesisConfig // Required: model name and cache policy
	Logger      *slog.Logger           // Optional: structured logger
	Metrics     statsd.Sink            // Optional: metrics sink (StatsD-compatible)
}

// SynthesisService wraps a CodeSynthesizer with a prompt-keyed cache.
// Identical prompts against the same model reuse the previous generation
// instead of paying for another API round trip. Cache failures degrade to
// misses; the upstream generator remains the source of truth.
type SynthesisService struct {
	synth   core.CodeSynthesizer
	cache   core.CacheRepository
	cfg     config.SynthesisConfig
	logger  *slog.Logger
	metrics statsd.Sink
}

var _ core.CodeSynthesizer = (*SynthesisService)(nil)

// NewSynthesisService constructs a new SynthesisService.
func NewSynthesisService(opts SynthesisServiceOptions) *SynthesisService {
	if opts.Synthesizer == nil {
		panic("CodeSynthesizer is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SynthesisService{
		synth:   opts.Synthesizer,
		cache:   opts.Cache,
		cfg:     opts.Config,
		logger:  logger.With("component", "synthesis_service"),
		metrics: opts.Metrics,
	}
}

// GenerateScene returns scene code for the prompt, consulting the cache first.
func (s *SynthesisService) GenerateScene(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	if code, ok := s.cachedScene(ctx, prompt); ok {
		s.emit(metrics.SynthesisMetric{
			CacheHit: true,
			Result:   metrics.ResultSuccess,
			Duration: time.Since(start),
		})
		return code, nil
	}

	code, err := s.synth.GenerateScene(ctx, prompt)
	if err != nil {
		s.emit(metrics.SynthesisMetric{
			Result:   metrics.ResultError,
			Duration: time.Since(start),
			Err:      err,
		})
		return "", err
	}

	s.storeScene(ctx, prompt, code)
	s.emit(metrics.SynthesisMetric{
		Result:   metrics.ResultSuccess,
		Duration: time.Since(start),
	})
	return code, nil
}

// cacheEnabled reports whether cache lookups should happen at all.
func (s *SynthesisService) cacheEnabled() bool {
	return s.cache != nil && s.cfg.CacheEnabled
}

// cacheKey derives a stable key from the model and prompt so switching
// models never serves stale generations.
func (s *SynthesisService) cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(s.cfg.Model + "|" + prompt))
	return synthesisCacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (s *SynthesisService) cachedScene(ctx context.Context, prompt string) (string, bool) {
	if !s.cacheEnabled() {
		return "", false
	}

	value, err := s.cache.Get(ctx, s.cacheKey(prompt))
	if err != nil {
		s.logger.DebugContext(ctx, "synthesis cache read failed", "error", err)
		return "", false
	}
	if len(value) == 0 {
		return "", false
	}
	return string(value), true
}

func (s *SynthesisService) storeScene(ctx context.Context, prompt, code string) {
	if !s.cacheEnabled() || code == "" {
		return
	}

	if err := s.cache.Set(ctx, s.cacheKey(prompt), []byte(code), s.cfg.CacheTTL); err != nil {
		s.logger.DebugContext(ctx, "synthesis cache write failed", "error", err)
	}
}

func (s *SynthesisService) emit(m metrics.SynthesisMetric) {
	if s.metrics == nil {
		return
	}
	metrics.EmitSynthesis(s.metrics, m)
}
