package httpx

import (
	"net/http"

	"github.com/scenesmith/scenesmith/internal/core"
	"github.com/scenesmith/scenesmith/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Render *service.RenderService
	Store  core.ArtifactStore
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	renderHandlers := &RenderHandlers{Svc: services.Render}
	artifactHandlers := &ArtifactHandlers{Store: services.Store}

	registerRenderRoutes(mux, renderHandlers)
	registerArtifactRoutes(mux, artifactHandlers)
	mux.Handle("GET /health", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /health", http.HandlerFunc(healthHandler))

	return mux
}

func registerRenderRoutes(mux *http.ServeMux, h *RenderHandlers) {
	mux.HandleFunc("POST /render", h.CreateRender)
	mux.HandleFunc("OPTIONS /render", h.RenderOptions)
	mux.HandleFunc("GET /history", h.ListHistory)
}

func registerArtifactRoutes(mux *http.ServeMux, h *ArtifactHandlers) {
	mux.HandleFunc("GET /renders/{filename}", h.Download)
}
