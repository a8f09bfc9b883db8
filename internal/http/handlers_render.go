// Package httpx provides HTTP handlers and utilities for the scene render API.
package httpx

import (
	"net/http"

	"github.com/scenesmith/scenesmith/internal/domain/model"
	"github.com/scenesmith/scenesmith/internal/service"
)

// RenderHandlers provides HTTP handlers for render-related operations.
type RenderHandlers struct {
	Svc *service.RenderService
}

// renderResponse is the wire shape of a successful render. The synthesis
// fields are present only for prompt-mode jobs.
type renderResponse struct {
	DownloadURL       string `json:"downloadUrl"`
	ManimCode         string `json:"manimCode,omitempty"`
	ExplanationScript string `json:"explanationScript,omitempty"`
}

// CreateRender handles HTTP requests to render an animation from scene source
// or from a natural-language prompt.
func (h *RenderHandlers) CreateRender(w http.ResponseWriter, r *http.Request) {
	var req model.RenderRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Render(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	resp := renderResponse{DownloadURL: result.DownloadURL}
	if result.Mode == model.RenderModePrompt {
		resp.ManimCode = result.SourceText
		// Narration is not generated yet; clients expect the field to exist.
		resp.ExplanationScript = "{}"
	}

	WriteJSON(w, http.StatusOK, resp)
}

// RenderOptions answers bare OPTIONS requests on the render route. True
// preflights are short-circuited by the CORS middleware before reaching
// here; this keeps probes from tools that send plain OPTIONS out of the
// error logs.
func (h *RenderHandlers) RenderOptions(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// ListHistory handles HTTP requests to list recent render records.
func (h *RenderHandlers) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultHistoryLimit, maxHistoryLimit)

	records, err := h.Svc.History(r.Context(), limit, offset)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if records == nil {
		records = []*model.RenderRecord{}
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"renders": records,
		"limit":   limit,
		"offset":  offset,
	})
}
