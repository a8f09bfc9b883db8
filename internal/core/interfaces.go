// Package core defines the contracts of the render pipeline.
package core

import (
	"context"
	"io"
	"time"

	"github.com/scenesmith/scenesmith/internal/domain/model"
)

// This file contains the interface definitions (ports in hexagonal architecture)
// sitting between the service layer and the adapters that do the real work:
// code synthesis, subprocess execution, artifact storage, persistence, caching.
// Service implementations should depend on these interfaces, not concrete types.

// CodeSynthesizer turns a natural-language prompt into renderer source code.
type CodeSynthesizer interface {
	// GenerateScene returns a complete runnable scene script for the prompt.
	// The returned text has response fences stripped and surrounding
	// whitespace trimmed; it is NOT guaranteed to contain a scene class.
	GenerateScene(ctx context.Context, prompt string) (string, error)
}

// RunRequest groups the inputs for a single renderer invocation.
type RunRequest struct {
	JobID      string
	SourceText string
	SceneName  string
	Quality    string
	ScratchDir string
}

// SceneRunner executes the external renderer subprocess for one job.
type SceneRunner interface {
	// Run writes the job source to a transient file inside the scratch
	// directory, invokes the renderer against it and captures the outcome.
	// The transient file is removed before Run returns on every path.
	// Renderer failures and timeouts are reported through the result outcome,
	// not the error; a non-nil error means the runner itself could not start.
	Run(ctx context.Context, req RunRequest) (*model.ExecutionResult, error)
}

// OutputLocator finds the rendered media file beneath a scratch directory.
type OutputLocator interface {
	// Locate returns the path of the best candidate file for sceneName:
	// name matches beat non-matches, newer modification times beat older.
	// Returns an artifact_not_found error when root is missing or empty.
	Locate(ctx context.Context, root, sceneName string) (string, error)
}

// ArtifactStore persists finished render outputs and serves them back.
type ArtifactStore interface {
	// Publish moves the file at srcPath into the store under filename.
	// The source copy does not survive publication.
	Publish(ctx context.Context, srcPath, filename string) (*model.Artifact, error)

	// Open returns the stored artifact and a reader over its bytes.
	// The caller owns closing the reader.
	Open(ctx context.Context, filename string) (io.ReadSeekCloser, *model.Artifact, error)
}

// RenderRecordRepository persists the ledger of finished render jobs.
type RenderRecordRepository interface {
	Create(ctx context.Context, req *model.CreateRenderRecordRequest) (*model.RenderRecord, error)
	List(ctx context.Context, limit, offset int) ([]*model.RenderRecord, error)
}

// CacheRepository defines the interface for caching operations.
// The core defines the contract; the data layer provides the implementation.
type CacheRepository interface {
	// Set stores a value in the cache with the given key and TTL.
	// If TTL is 0, the key will not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value from the cache by key.
	// Returns nil if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key from the cache.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Exists checks if a key exists in the cache.
	Exists(ctx context.Context, key string) (bool, error)

	// SetTTL updates the TTL for an existing key.
	// Returns true if the key exists and TTL was updated.
	SetTTL(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Health checks the health of the cache connection.
	Health(ctx context.Context) error
}
