// Package model defines the core data types used throughout the render pipeline.
package model

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RenderMode selects how a job obtains its animation source.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type RenderMode string

// RenderStatus represents the terminal state of a finished render job.
type RenderStatus string

const (
	// RenderModeCode runs caller-supplied animation source as-is.
	RenderModeCode RenderMode = "code"
	// RenderModePrompt synthesizes animation source from a natural-language prompt first.
	RenderModePrompt RenderMode = "prompt"

	// RenderStatusDone indicates the job published an artifact.
	RenderStatusDone RenderStatus = "done"
	// RenderStatusFailed indicates the job terminated in a failure state.
	RenderStatusFailed RenderStatus = "failed"
)

// UnmarshalText implements encoding.TextUnmarshaler for RenderMode to allow env parsing.
func (m *RenderMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	rm := RenderMode(v)
	if rm.Valid() {
		*m = rm
		return nil
	}
	return fmt.Errorf("invalid RenderMode: %q", v)
}

// Valid returns true if the RenderMode is valid.
func (m RenderMode) Valid() bool {
	return m == RenderModeCode || m == RenderModePrompt
}

// Valid returns true if the RenderStatus is valid.
func (s RenderStatus) Valid() bool {
	return s == RenderStatusDone || s == RenderStatusFailed
}

// NewRenderID generates the opaque 32-char hex id used for transient files
// and published artifacts of one job.
func NewRenderID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// RenderJob carries one render request through the pipeline. It lives in
// memory for the duration of a single run and is never persisted as-is.
type RenderJob struct {
	ID          string
	Mode        RenderMode
	SourceText  string
	SceneName   string
	QualityHint string
	Prompt      string
	CreatedAt   time.Time
}

// NewRenderJob builds a job with a fresh id from an incoming request.
func NewRenderJob(req *RenderRequest) *RenderJob {
	return &RenderJob{
		ID:          NewRenderID(),
		Mode:        req.Mode,
		SourceText:  req.SourceText,
		SceneName:   req.SceneName,
		QualityHint: req.QualityHint,
		Prompt:      req.Prompt,
		CreatedAt:   time.Now().UTC(),
	}
}

// RenderRequest is the job submission wire format.
//
// SceneName left empty means "resolve it from the source"; a non-empty value
// is used as-is and skips resolution.
type RenderRequest struct {
	Mode        RenderMode `json:"mode,omitempty"`
	SourceText  string     `json:"sourceText,omitempty"`
	SceneName   string     `json:"sceneName,omitempty"`
	QualityHint string     `json:"qualityHint,omitempty"`
	Prompt      string     `json:"prompt,omitempty"`
}

// Normalize applies wire-format defaults for omitted fields.
func (r *RenderRequest) Normalize(defaultQuality string) {
	if r.Mode == "" {
		r.Mode = RenderModeCode
	}
	if strings.TrimSpace(r.QualityHint) == "" {
		r.QualityHint = defaultQuality
	}
}

// RenderResult is what a finished pipeline run hands back to the transport.
type RenderResult struct {
	RenderID     string
	Mode         RenderMode
	SceneName    string
	ArtifactFile string
	DownloadURL  string
	SourceText   string
	Duration     time.Duration
}

// Artifact describes a published render output in the store.
type Artifact struct {
	ID        string
	Filename  string
	Path      string
	Size      int64
	CreatedAt time.Time
}
