package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/scenesmith/scenesmith/config"
	"github.com/scenesmith/scenesmith/internal/core"
	"github.com/scenesmith/scenesmith/internal/domain/model"
	"github.com/scenesmith/scenesmith/internal/domain/scene"
	apperrors "github.com/scenesmith/scenesmith/internal/errors"
	"github.com/scenesmith/scenesmith/internal/observability/metrics"
	"github.com/scenesmith/scenesmith/internal/observability/statsd"
)

// stderrTailLimit bounds the diagnostic log attached to render failures.
// Client responses carry this tail; full output never leaves the server logs.
const stderrTailLimit = 4 * 1024

// RenderPipeline groups the adapters one render job passes through.
type RenderPipeline struct {
	Runner      core.SceneRunner   // Required: renderer subprocess
	Locator     core.OutputLocator // Required: scratch output discovery
	Store       core.ArtifactStore // Required: artifact publication
	Synthesizer core.CodeSynthesizer
}

// RenderServiceOptions groups dependencies for RenderService.
type RenderServiceOptions struct {
	Pipeline RenderPipeline
	Records  core.RenderRecordRepository // Optional: render ledger
	Render   config.RenderConfig
	Artifact config.ArtifactConfig
	Logger   *slog.Logger // Optional: structured logger
	Metrics  statsd.Sink  // Optional: metrics sink (StatsD-compatible)
}

// RenderService orchestrates one render job end to end: validate, synthesize
// when prompted, execute the renderer in an isolated scratch directory,
// locate the output, publish it, and always tear the scratch down.
//
// A weighted semaphore bounds how many renders run at once; callers queued
// on the gate are released when their context ends.
type RenderService struct {
	runner   core.SceneRunner
	locator  core.OutputLocator
	store    core.ArtifactStore
	synth    core.CodeSynthesizer
	records  core.RenderRecordRepository
	cfg      config.RenderConfig
	artifact config.ArtifactConfig
	logger   *slog.Logger
	metrics  statsd.Sink
	gate     *semaphore.Weighted
	inFlight atomic.Int64
}

// NewRenderService constructs a new RenderService.
func NewRenderService(opts RenderServiceOptions) (*RenderService, error) {
	if opts.Pipeline.Runner == nil {
		return nil, errors.New("SceneRunner is required")
	}
	if opts.Pipeline.Locator == nil {
		return nil, errors.New("OutputLocator is required")
	}
	if opts.Pipeline.Store == nil {
		return nil, errors.New("ArtifactStore is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	maxConcurrent := opts.Render.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	return &RenderService{
		runner:   opts.Pipeline.Runner,
		locator:  opts.Pipeline.Locator,
		store:    opts.Pipeline.Store,
		synth:    opts.Pipeline.Synthesizer,
		records:  opts.Records,
		cfg:      opts.Render,
		artifact: opts.Artifact,
		logger:   logger.With("component", "render_service"),
		metrics:  opts.Metrics,
		gate:     semaphore.NewWeighted(int64(maxConcurrent)),
	}, nil
}

// Render runs one job through the pipeline and returns the published result.
// Failures come back as taxonomy errors; the scratch directory is removed on
// every path.
func (s *RenderService) Render(ctx context.Context, req model.RenderRequest) (*model.RenderResult, error) {
	req.Normalize(s.cfg.Quality)
	if err := validateRenderRequest(&req); err != nil {
		return nil, err
	}

	if err := s.gate.Acquire(ctx, 1); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCanceled, "The render was canceled while queued.")
	}
	defer s.gate.Release(1)

	s.trackInFlight(1)
	defer s.trackInFlight(-1)

	job := model.NewRenderJob(&req)
	start := time.Now()

	s.logger.InfoContext(ctx, "render started",
		"render_id", job.ID, "mode", job.Mode, "quality", job.QualityHint)

	result, err := s.execute(ctx, job)
	elapsed := time.Since(start)

	s.recordOutcome(ctx, job, result, err, elapsed)
	s.emitOutcome(job, err, elapsed)

	if err != nil {
		s.logger.WarnContext(ctx, "render failed",
			"render_id", job.ID, "mode", job.Mode,
			"error_code", apperrors.GetCode(err), "error", err, "duration", elapsed)
		return nil, err
	}

	result.Duration = elapsed
	return result, nil
}

// History returns recent ledger entries, newest first.
func (s *RenderService) History(ctx context.Context, limit, offset int) ([]*model.RenderRecord, error) {
	if s.records == nil {
		return nil, apperrors.NotFound("Render history is not enabled.")
	}

	records, err := s.records.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list render records: %w", err)
	}
	return records, nil
}

// execute walks the job through synthesis, execution, discovery and
// publication inside its own scratch directory.
func (s *RenderService) execute(ctx context.Context, job *model.RenderJob) (*model.RenderResult, error) {
	scratchDir, err := s.createScratch(job.ID)
	if err != nil {
		return nil, err
	}
	defer s.removeScratch(scratchDir)

	if err := s.resolveSource(ctx, job); err != nil {
		return nil, err
	}

	if _, err := s.runRenderer(ctx, job, scratchDir); err != nil {
		return nil, err
	}

	outputPath, err := s.locator.Locate(ctx, scratchDir, job.SceneName)
	if err != nil {
		return nil, err
	}

	artifact, err := s.store.Publish(ctx, outputPath, artifactFilename(job.ID, s.cfg.Format))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to publish the rendered animation.")
	}

	s.logger.InfoContext(ctx, "render complete",
		"render_id", job.ID, "scene", job.SceneName,
		"artifact", artifact.Filename, "size", artifact.Size)

	return &model.RenderResult{
		RenderID:     job.ID,
		Mode:         job.Mode,
		SceneName:    job.SceneName,
		ArtifactFile: artifact.Filename,
		DownloadURL:  s.artifact.BasePath + "/" + artifact.Filename,
		SourceText:   job.SourceText,
	}, nil
}

// resolveSource fills in the job's source text and scene name according to
// its mode. Prompt jobs always take the detected class from the generated
// code; code jobs honor an explicit scene name and detect only when it is
// absent.
func (s *RenderService) resolveSource(ctx context.Context, job *model.RenderJob) error {
	if job.Mode == model.RenderModePrompt {
		if s.synth == nil {
			return apperrors.Configuration("Code synthesis is not configured.")
		}

		code, err := s.synth.GenerateScene(ctx, job.Prompt)
		if err != nil {
			return err
		}
		job.SourceText = code

		name, ok := scene.Detect(code)
		if !ok {
			return apperrors.GenerationInvalid("AI failed to generate a valid Manim scene class.")
		}
		job.SceneName = name
		return nil
	}

	if job.SceneName != "" {
		return nil
	}
	name, ok := scene.Detect(job.SourceText)
	if !ok {
		return apperrors.SceneNotDetected("Could not automatically detect a Scene class. Please provide a scene_name.")
	}
	job.SceneName = name
	return nil
}

// runRenderer invokes the runner and maps execution outcomes onto the error
// taxonomy. A nil error from this method means the renderer exited cleanly.
func (s *RenderService) runRenderer(
	ctx context.Context,
	job *model.RenderJob,
	scratchDir string,
) (*model.ExecutionResult, error) {
	result, err := s.runner.Run(ctx, core.RunRequest{
		JobID:      job.ID,
		SourceText: job.SourceText,
		SceneName:  job.SceneName,
		Quality:    job.QualityHint,
		ScratchDir: scratchDir,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeCanceled, "The render was canceled.")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to start the renderer.")
	}

	switch result.Outcome {
	case model.ExecOutcomeTimeout:
		return nil, apperrors.Timeout("The animation rendering took too long and was stopped. Try a simpler prompt.")
	case model.ExecOutcomeProcessError:
		return nil, apperrors.RenderFailed("Failed to render Manim animation.",
			tailString(result.Stderr, stderrTailLimit))
	}

	return result, nil
}

func (s *RenderService) createScratch(jobID string) (string, error) {
	dir := filepath.Join(s.cfg.ScratchRoot, jobID)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to prepare the render workspace.")
	}
	return dir, nil
}

func (s *RenderService) removeScratch(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		s.logger.Warn("scratch cleanup failed", "dir", dir, "error", err)
	}
}

// recordOutcome writes the finished job to the ledger. Write failures are
// logged and swallowed; the render verdict already belongs to the caller.
func (s *RenderService) recordOutcome(
	ctx context.Context,
	job *model.RenderJob,
	result *model.RenderResult,
	renderErr error,
	elapsed time.Duration,
) {
	if s.records == nil {
		return
	}
	// Caller-canceled runs have no verdict to record.
	if apperrors.IsCanceled(renderErr) {
		return
	}

	req := &model.CreateRenderRecordRequest{
		ID:         job.ID,
		Mode:       job.Mode,
		SceneName:  job.SceneName,
		Status:     model.RenderStatusDone,
		DurationMS: elapsed.Milliseconds(),
	}
	if renderErr != nil {
		req.Status = model.RenderStatusFailed
		req.ErrorCode = string(apperrors.GetCode(renderErr))
		if req.ErrorCode == "" {
			req.ErrorCode = string(apperrors.ErrCodeInternal)
		}
	} else if result != nil {
		req.ArtifactFile = result.ArtifactFile
	}

	if _, err := s.records.Create(ctx, req); err != nil {
		s.logger.ErrorContext(ctx, "render ledger write failed", "render_id", job.ID, "error", err)
	}
}

func (s *RenderService) emitOutcome(job *model.RenderJob, renderErr error, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}

	result := metrics.ResultSuccess
	if renderErr != nil {
		result = metrics.ResultError
	}
	metrics.EmitRenderLifecycle(s.metrics, metrics.RenderMetric{
		Mode:     string(job.Mode),
		Result:   result,
		Duration: elapsed,
		Err:      renderErr,
	})
}

func (s *RenderService) trackInFlight(delta int64) {
	current := s.inFlight.Add(delta)
	if s.metrics != nil {
		s.metrics.Gauge("render.in_flight", float64(current), nil)
	}
}

func validateRenderRequest(req *model.RenderRequest) error {
	if req.Mode == model.RenderModePrompt {
		if strings.TrimSpace(req.Prompt) == "" {
			return apperrors.MissingPrompt("A prompt is required for 'prompt' mode.")
		}
		return nil
	}
	if strings.TrimSpace(req.SourceText) == "" {
		return apperrors.MissingSource("No scene code provided.")
	}
	return nil
}

func artifactFilename(renderID, format string) string {
	return "render_" + renderID + "." + format
}

// tailString returns the last max bytes of s.
func tailString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[len(s)-max:]
}
