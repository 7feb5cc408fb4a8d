package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"portfolio-gallery/internal/domain/entity"
	"portfolio-gallery/internal/ports"
)

// pinnedResponse is the body of /api/github-pinned
type pinnedResponse struct {
	Items []ports.PinnedItem `json:"items"`
}

// PinnedHandler proxies a user's pinned repositories. It always answers
// 200; any failure yields an empty item list.
type PinnedHandler struct {
	source ports.PinnedSource
	logger *zap.Logger
}

// NewPinnedHandler creates a PinnedHandler
func NewPinnedHandler(source ports.PinnedSource, logger *zap.Logger) *PinnedHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PinnedHandler{source: source, logger: logger}
}

// ServeHTTP handles GET /api/github-pinned?user=
func (h *PinnedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	empty := pinnedResponse{Items: []ports.PinnedItem{}}

	user := strings.TrimSpace(r.URL.Query().Get("user"))
	if user == "" || h.source == nil {
		respondJSON(w, http.StatusOK, empty)
		return
	}

	items, err := h.source.PinnedItems(r.Context(), user)
	if err != nil {
		h.logger.Warn("Pinned items unavailable", zap.String("user", user), zap.Error(err))
		respondJSON(w, http.StatusOK, empty)
		return
	}
	if items == nil {
		items = []ports.PinnedItem{}
	}

	respondJSON(w, http.StatusOK, pinnedResponse{Items: items})
}

// ProjectHandler serves the filtered project gallery
type ProjectHandler struct {
	gallery GalleryViewer
	logger  *zap.Logger
}

// NewProjectHandler creates a ProjectHandler
func NewProjectHandler(gallery GalleryViewer, logger *zap.Logger) *ProjectHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectHandler{gallery: gallery, logger: logger}
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sel, err := entity.ParseSelection(q.Get("role"), q.Get("year"), q.Get("difficulty"), q.Get("q"), q.Get("sort"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	includeRemote := h.gallery.IncludeRemote()
	if raw := q.Get("github"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid github flag: "+raw)
			return
		}
		includeRemote = v
	}

	view := h.gallery.ViewWith(sel, includeRemote)
	if view.Entries == nil {
		view.Entries = []entity.ClassifiedEntry{}
	}
	respondJSON(w, http.StatusOK, view)
}
