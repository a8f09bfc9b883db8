package config

import (
	"strings"
	"time"
)

// RenderConfig contains renderer subprocess configuration.
type RenderConfig struct {
	// Binary is the renderer executable invoked once per job.
	Binary string `env:"BINARY" envDefault:"manim"`

	// Timeout is the wall-clock bound for a single render.
	// The subprocess is killed when it elapses.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"120s"`

	// Quality is the default quality hint appended to the renderer's -q flag
	// when a request does not carry one.
	Quality string `env:"QUALITY" envDefault:"h"`

	// Format is the output container format and artifact file extension.
	Format string `env:"FORMAT" envDefault:"mp4"`

	// ScratchRoot is the parent directory of per-job scratch directories.
	ScratchRoot string `env:"SCRATCH_ROOT" envDefault:"scratch"`

	// OutputFlag is the renderer flag used to point media output at the
	// job's own scratch directory. When empty the renderer writes wherever
	// it pleases and renders are serialized over the shared scratch root.
	OutputFlag string `env:"OUTPUT_FLAG" envDefault:"--media_dir"`

	// MaxConcurrent bounds simultaneous renderer subprocesses.
	MaxConcurrent int `env:"MAX_CONCURRENT" envDefault:"4"`
}

// Sanitize applies guardrails to render configuration values.
func (r *RenderConfig) Sanitize() {
	r.Binary = strings.TrimSpace(r.Binary)
	if r.Binary == "" {
		r.Binary = "manim"
	}
	if r.Timeout <= 0 {
		r.Timeout = 120 * time.Second
	}
	r.Quality = strings.TrimSpace(r.Quality)
	if r.Quality == "" {
		r.Quality = "h"
	}
	r.Format = strings.TrimPrefix(strings.TrimSpace(r.Format), ".")
	if r.Format == "" {
		r.Format = "mp4"
	}
	r.ScratchRoot = strings.TrimSpace(r.ScratchRoot)
	if r.ScratchRoot == "" {
		r.ScratchRoot = "scratch"
	}
	r.OutputFlag = strings.TrimSpace(r.OutputFlag)
	if r.MaxConcurrent < 1 {
		r.MaxConcurrent = 4
	}
}

// ArtifactConfig contains artifact store configuration.
type ArtifactConfig struct {
	// Dir is the directory finished artifacts are published into.
	Dir string `env:"DIR" envDefault:"renders"`

	// BasePath is the public URL prefix artifacts are served under.
	BasePath string `env:"BASE_PATH" envDefault:"/renders"`
}

// Sanitize applies guardrails to artifact configuration values.
func (a *ArtifactConfig) Sanitize() {
	a.Dir = strings.TrimSpace(a.Dir)
	if a.Dir == "" {
		a.Dir = "renders"
	}

	a.BasePath = strings.TrimSpace(a.BasePath)
	if !strings.HasPrefix(a.BasePath, "/") {
		a.BasePath = "/" + a.BasePath
	}
	a.BasePath = strings.TrimRight(a.BasePath, "/")
	if a.BasePath == "" {
		a.BasePath = "/renders"
	}
}
