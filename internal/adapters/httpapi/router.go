package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"portfolio-gallery/internal/domain/entity"
	"portfolio-gallery/internal/ports"
)

// GalleryViewer is the part of the gallery the HTTP API reads
type GalleryViewer interface {
	ViewWith(sel entity.Selection, includeRemote bool) entity.GalleryView
	IncludeRemote() bool
	RemoteCount() int
}

// Deps holds what the router needs to serve requests
type Deps struct {
	Gallery GalleryViewer
	// Pinned serves /api/github-pinned; nil answers every request with no items.
	Pinned ports.PinnedSource
	// Stats reports client statistics on /api/status; optional.
	Stats  func() any
	Logger *zap.Logger
}

// NewRouter configures all routes and returns the router
func NewRouter(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(deps.Logger))

	pinned := NewPinnedHandler(deps.Pinned, deps.Logger)
	projects := NewProjectHandler(deps.Gallery, deps.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/github-pinned", pinned.ServeHTTP)
		r.Get("/projects", projects.ListProjects)

		r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
			status := map[string]any{
				"include_remote": deps.Gallery.IncludeRemote(),
				"remote_count":   deps.Gallery.RemoteCount(),
			}
			if deps.Stats != nil {
				status["github"] = deps.Stats()
			}
			respondJSON(w, http.StatusOK, status)
		})

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
