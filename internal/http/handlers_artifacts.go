package httpx

import (
	"net/http"

	"github.com/scenesmith/scenesmith/internal/core"
)

// ArtifactHandlers provides HTTP handlers for downloading published renders.
type ArtifactHandlers struct {
	Store core.ArtifactStore
}

// Download handles HTTP requests to stream a published artifact by filename.
// ServeContent gives video players byte-range support for seeking.
func (h *ArtifactHandlers) Download(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")

	body, artifact, err := h.Store.Open(r.Context(), filename)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	defer func() {
		_ = body.Close()
	}()

	http.ServeContent(w, r, artifact.Filename, artifact.CreatedAt, body)
}
