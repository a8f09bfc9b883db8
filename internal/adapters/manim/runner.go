// Package manim adapts the external Manim renderer: it executes the renderer
// subprocess for one job and locates the media file a run produced.
package manim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/scenesmith/scenesmith/config"
	"github.com/scenesmith/scenesmith/internal/core"
	"github.com/scenesmith/scenesmith/internal/domain/model"
)

// maxCapturedOutput bounds how much of each renderer stream is kept.
// Renderer logs can run to megabytes; only the tail is diagnostic.
const maxCapturedOutput = 64 * 1024

// waitDelay unblocks Wait when a child of the renderer inherits the output
// pipes and outlives the kill.
const waitDelay = 5 * time.Second

// Runner executes the renderer binary for a single job.
// It is safe for concurrent use; when no output flag is configured, runs are
// serialized because the renderer then owns its own output layout and
// concurrent jobs could interleave in a shared cache.
type Runner struct {
	cfg    config.RenderConfig
	logger *slog.Logger

	sharedMu sync.Mutex
}

var _ core.SceneRunner = (*Runner)(nil)

// NewRunner creates a Runner from render configuration.
func NewRunner(cfg config.RenderConfig, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:    cfg,
		logger: logger.With("component", "manim_runner"),
	}
}

// Run writes the job source to a transient file inside the scratch directory,
// invokes the renderer against it and captures the outcome. The transient
// file is removed on every path before Run returns.
func (r *Runner) Run(ctx context.Context, req core.RunRequest) (*model.ExecutionResult, error) {
	sourcePath := filepath.Join(req.ScratchDir, "scene_"+req.JobID+".py")
	if err := os.WriteFile(sourcePath, []byte(req.SourceText), 0o600); err != nil {
		return nil, fmt.Errorf("write scene source: %w", err)
	}
	defer func() {
		if err := os.Remove(sourcePath); err != nil && !os.IsNotExist(err) {
			r.logger.Warn("remove scene source failed", "job_id", req.JobID, "error", err)
		}
	}()

	quality := req.Quality
	if quality == "" {
		quality = r.cfg.Quality
	}

	args := []string{sourcePath, req.SceneName, "-q" + quality, "--format=" + r.cfg.Format}
	if r.cfg.OutputFlag != "" {
		args = append(args, r.cfg.OutputFlag, req.ScratchDir)
	} else {
		r.sharedMu.Lock()
		defer r.sharedMu.Unlock()
	}

	runCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	stdout := newTailBuffer(maxCapturedOutput)
	stderr := newTailBuffer(maxCapturedOutput)

	// #nosec G204 -- the binary is operator-configured and the arguments are
	// built here, not taken verbatim from the request.
	cmd := exec.CommandContext(runCtx, r.cfg.Binary, args...)
	// Pin the working directory so renderer output resolved relative to the
	// CWD lands inside the job's scratch directory.
	cmd.Dir = req.ScratchDir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay

	r.logger.DebugContext(ctx, "invoking renderer",
		"job_id", req.JobID,
		"scene", req.SceneName,
		"quality", quality,
		"timeout", r.cfg.Timeout)

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	result := &model.ExecutionResult{
		JobID:    req.JobID,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: elapsed,
	}

	switch {
	case err == nil:
		result.Outcome = model.ExecOutcomeSuccess
	case ctx.Err() != nil:
		// The caller went away; this run has no render verdict.
		return nil, ctx.Err()
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		result.Outcome = model.ExecOutcomeTimeout
	default:
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("run renderer: %w", err)
		}
		result.Outcome = model.ExecOutcomeProcessError
		result.ExitCode = exitErr.ExitCode()
	}

	r.logger.DebugContext(ctx, "renderer finished",
		"job_id", req.JobID,
		"outcome", result.Outcome,
		"exit_code", result.ExitCode,
		"duration", elapsed)

	return result, nil
}

// tailBuffer is an io.Writer that keeps only the last max bytes written.
type tailBuffer struct {
	max int
	buf []byte
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if len(t.buf) > t.max {
		t.buf = t.buf[len(t.buf)-t.max:]
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	return string(t.buf)
}
