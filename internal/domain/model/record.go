package model

import "time"

// RenderRecord is one row of the render ledger: the durable trace of a
// finished job, written after the pipeline reaches a terminal state.
type RenderRecord struct {
	ID           string       `json:"id"                     db:"id"`
	Mode         RenderMode   `json:"mode"                   db:"mode"`
	SceneName    string       `json:"sceneName,omitempty"    db:"scene_name"`
	Status       RenderStatus `json:"status"                 db:"status"`
	ErrorCode    string       `json:"errorCode,omitempty"    db:"error_code"`
	ArtifactFile string       `json:"artifactFile,omitempty" db:"artifact_file"`
	DurationMS   int64        `json:"durationMs"             db:"duration_ms"`
	CreatedAt    time.Time    `json:"createdAt"              db:"created_at"`
}

// CreateRenderRecordRequest carries the fields written to the ledger.
// The ID is the render id of the finished job, not a fresh identifier.
type CreateRenderRecordRequest struct {
	ID           string
	Mode         RenderMode
	SceneName    string
	Status       RenderStatus
	ErrorCode    string
	ArtifactFile string
	DurationMS   int64
}
