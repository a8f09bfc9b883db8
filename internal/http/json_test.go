package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/scenesmith/scenesmith/internal/errors"
)

func TestWriteAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"missing source", apperrors.MissingSource("No scene code provided."), http.StatusBadRequest, "missing_source"},
		{"scene not detected", apperrors.SceneNotDetected("no scene"), http.StatusBadRequest, "scene_not_detected"},
		{"artifact missing", apperrors.ArtifactNotFound("Rendered video file not found."), http.StatusNotFound, "artifact_not_found"},
		{"not found", apperrors.NotFound("File not found."), http.StatusNotFound, "not_found"},
		{"timeout", apperrors.Timeout("too slow"), http.StatusInternalServerError, "timeout"},
		{"upstream", apperrors.Upstream("model unavailable"), http.StatusInternalServerError, "upstream"},
		{"canceled", apperrors.Wrap(errors.New("ctx"), apperrors.ErrCodeCanceled, "gone"), 499, "canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteAppError(w, tt.err)

			require.Equal(t, tt.wantStatus, w.Code)

			got := decodeBody(t, w)
			assert.Equal(t, tt.wantCode, got["error"])
			assert.NotEmpty(t, got["message"])
		})
	}
}

func TestWriteAppError_RenderFailureCarriesLog(t *testing.T) {
	w := httptest.NewRecorder()
	WriteAppError(w, apperrors.RenderFailed("Failed to render Manim animation.", "ValueError: boom"))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	got := decodeBody(t, w)
	assert.Equal(t, "render_failed", got["error"])
	assert.Equal(t, "Failed to render Manim animation.", got["message"])
	assert.Equal(t, "ValueError: boom", got["log"])
}

func TestWriteAppError_PlainErrorHidesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	WriteAppError(w, errors.New("pq: connection refused on 10.0.0.3"))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	got := decodeBody(t, w)
	assert.Equal(t, "internal", got["error"])
	assert.Equal(t, "An unexpected error occurred.", got["message"])
	assert.NotContains(t, got, "log")
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(`{"mode":"code","bogus":true}`))

	var dst struct {
		Mode string `json:"mode"`
	}

	w := httptest.NewRecorder()
	ok := DecodeJSON(w, r, &dst)

	assert.False(t, ok)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_json", decodeBody(t, w)["error"])
}
