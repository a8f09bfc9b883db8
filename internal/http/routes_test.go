package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	apperrors "github.com/scenesmith/scenesmith/internal/errors"
	"github.com/scenesmith/scenesmith/internal/mocks"
)

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockArtifactStore, *gomock.Controller) {
	t.Helper()
	h, _, ctrl := newRenderHandlersWithMocks(t)
	store := mocks.NewMockArtifactStore(ctrl)
	router := NewRouter(RouterServices{Render: h.Svc, Store: store})
	return router, store, ctrl
}

func TestRouter_Health(t *testing.T) {
	router, _, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_RenderOptions(t *testing.T) {
	router, _, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	r := httptest.NewRequest(http.MethodOptions, "/render", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestRouter_RenderRejectsGet(t *testing.T) {
	router, _, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	r := httptest.NewRequest(http.MethodGet, "/render", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_ArtifactByFilename(t *testing.T) {
	router, store, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	store.EXPECT().
		Open(gomock.Any(), "render_missing.mp4").
		Return(nil, nil, apperrors.NotFound("File not found."))

	r := httptest.NewRequest(http.MethodGet, "/renders/render_missing.mp4", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "File not found.", decodeBody(t, w)["message"])
}

func TestRouter_UnknownPath(t *testing.T) {
	router, _, ctrl := newTestRouter(t)
	defer ctrl.Finish()

	r := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
