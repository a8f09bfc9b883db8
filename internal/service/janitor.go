package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/scenesmith/scenesmith/config"
	obserrors "github.com/scenesmith/scenesmith/internal/observability/errors"
	"github.com/scenesmith/scenesmith/internal/observability/metrics"
	"github.com/scenesmith/scenesmith/internal/observability/statsd"
)

// JanitorServiceOptions groups dependencies for JanitorService.
type JanitorServiceOptions struct {
	Config      config.JanitorConfig // Required: sweep cadence and age bound
	ScratchRoot string               // Required: directory swept for leftovers
	Logger      *slog.Logger         // Optional: structured logger
	Metrics     statsd.Sink          // Optional: metrics sink (StatsD-compatible)
}

// JanitorService removes orphaned per-job scratch directories.
//
// Jobs clear their own scratch on every exit path, so anything the janitor
// finds was left behind by a crashed or killed process. A directory counts as
// orphaned once its modification time is older than the configured max age,
// which keeps the sweep from racing in-flight renders. The artifact store is
// never touched.
type JanitorService struct {
	scratchRoot string
	config      config.JanitorConfig
	logger      *slog.Logger
	metrics     statsd.Sink
}

// NewJanitorService constructs a new JanitorService.
func NewJanitorService(opts JanitorServiceOptions) (*JanitorService, error) {
	if opts.ScratchRoot == "" {
		return nil, errors.New("scratch root is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "janitor_service")
		logger.Debug("JanitorService initialized",
			"scratch_root", opts.ScratchRoot,
			"interval", opts.Config.Interval,
			"max_age", opts.Config.MaxAge,
		)
	}

	return &JanitorService{
		scratchRoot: opts.ScratchRoot,
		config:      opts.Config,
		logger:      logger,
		metrics:     opts.Metrics,
	}, nil
}

// Run starts the sweep loop and runs until the context is cancelled.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (s *JanitorService) Run(ctx context.Context) error {
	if s.logger != nil {
		s.logger.InfoContext(ctx, "starting janitor service", "interval", s.config.Interval)
	}

	// Add jitter to prevent thundering herd if multiple instances start together
	s.waitWithJitter(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	// Sweep immediately after jitter
	if err := s.runSweep(ctx); err != nil {
		s.logSweepError(err, "initial sweep")
	}

	return s.runLoop(ctx, ticker)
}

// waitWithJitter adds a random delay up to 10% of the interval to prevent thundering herd.
func (s *JanitorService) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.config.Interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// If crypto/rand fails, skip jitter rather than failing startup
		if s.logger != nil {
			s.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		}
		return
	}

	// Use modulo on uint64 before converting to avoid overflow
	jitterNanos := binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)
	jitter := time.Duration(int64(jitterNanos)) // #nosec G115 - bounded by maxJitter which is int64

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
		// Graceful shutdown during jitter
	}
}

// runLoop runs the sweep loop until context is cancelled.
func (s *JanitorService) runLoop(ctx context.Context, ticker *time.Ticker) error {
	for {
		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.InfoContext(ctx, "janitor service stopping", "reason", ctx.Err())
			}
			// Return nil on graceful shutdown to avoid treating it as a failure
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			if err := s.runSweep(ctx); err != nil {
				s.logSweepError(err, "sweep")
				// Continue running despite errors
			}
		}
	}
}

// runSweep performs one pass over the scratch root and emits sweep metrics.
func (s *JanitorService) runSweep(ctx context.Context) error {
	start := time.Now()

	count, err := s.sweepScratch(ctx)
	s.emitSweepMetrics(count, time.Since(start), suppressContextCancellation(err))

	if err != nil {
		if isContextCancellation(err) {
			return context.Canceled
		}
		return fmt.Errorf("sweep failed: %w", err)
	}
	return nil
}

// sweepScratch removes per-job directories whose modification time is older
// than the max age. Removal failures for individual directories are collected
// so one stubborn entry cannot shadow the rest of the sweep.
func (s *JanitorService) sweepScratch(ctx context.Context) (int64, error) {
	entries, err := os.ReadDir(s.scratchRoot)
	if err != nil {
		// The root appears with the first render; nothing to sweep before that.
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read scratch root: %w", err)
	}

	cutoff := time.Now().Add(-s.config.MaxAge)

	var (
		removed int64
		errs    []error
	)
	for _, entry := range entries {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
		if !entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// A live job may have removed its own directory mid-sweep.
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		dir := filepath.Join(s.scratchRoot, entry.Name())
		if err := os.RemoveAll(dir); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", entry.Name(), err))
			continue
		}
		removed++
	}

	if removed > 0 && s.logger != nil {
		s.logger.InfoContext(ctx, "removed orphaned scratch directories",
			"count", removed,
			"max_age", s.config.MaxAge,
		)
	}

	return removed, errors.Join(errs...)
}

func (s *JanitorService) emitSweepMetrics(count int64, elapsed time.Duration, err error) {
	if s.metrics == nil {
		return
	}

	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	} else if count == 0 {
		result = metrics.ResultNoop
	}

	tags := map[string]string{
		"result": result,
	}
	if err != nil {
		if class := obserrors.Classify(err); class != "" {
			tags["error_class"] = class
		}
	}

	s.metrics.Count("janitor.sweep", 1, tags)

	if elapsed > 0 {
		s.metrics.Timing("janitor.sweep_duration", elapsed, metrics.CloneTags(tags))
	}
	if err == nil && count > 0 {
		s.metrics.Count("janitor.dirs_removed", count, metrics.CloneTags(tags))
	}
	if err == nil {
		s.metrics.Gauge("janitor.last_success_epoch", float64(time.Now().Unix()), nil)
	}
}

func (s *JanitorService) logSweepError(err error, label string) {
	if err == nil || s.logger == nil {
		return
	}

	if isContextCancellation(err) {
		s.logger.Debug(label+" cancelled by context", "error", err)
		return
	}

	s.logger.Error(label+" failed", "error", err)
}

func isContextCancellation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func suppressContextCancellation(err error) error {
	if isContextCancellation(err) {
		return nil
	}
	return err
}
