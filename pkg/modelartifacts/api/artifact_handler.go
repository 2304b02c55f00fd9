// Package api exposes artifact resolution over HTTP using
// pkg/modelartifacts.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/furiosa-ai/model-artifacts/pkg/modelartifacts"
)

// BundleResponse is the response body for a model bundle manifest
type BundleResponse struct {
	Name      string             `json:"name"`
	Artifacts []ArtifactManifest `json:"artifacts"`
}

// ArtifactManifest describes one artifact inside a bundle
type ArtifactManifest struct {
	Extension string `json:"extension"`
	Size      int64  `json:"size"`
}

// ArtifactHandler handles HTTP requests for model artifacts
type ArtifactHandler struct {
	loader *modelartifacts.Loader
}

// NewArtifactHandler creates a new artifact handler
func NewArtifactHandler(loader *modelartifacts.Loader) *ArtifactHandler {
	return &ArtifactHandler{loader: loader}
}

// Routes returns the routes for model artifacts
func (h *ArtifactHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{name}", h.GetBundle)
	r.Get("/{name}/artifacts/{ext}", h.GetArtifact)

	return r
}

// GetBundle resolves every artifact of a model and returns a manifest of
// extensions and sizes. It does not stream artifact bytes.
func (h *ArtifactHandler) GetBundle(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		http.Error(w, "Missing model name", http.StatusBadRequest)
		return
	}

	bundle, err := h.loader.LoadBundle(r.Context(), name)
	if err != nil {
		slog.Error("Failed to load bundle", "model", name, "error", err)
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	resp := BundleResponse{Name: name}
	for _, ext := range modelartifacts.DefaultExtensions {
		resp.Artifacts = append(resp.Artifacts, ArtifactManifest{
			Extension: ext,
			Size:      int64(len(bundle[ext])),
		})
	}

	slog.Info("Bundle resolved", "model", name)
	render.JSON(w, r, resp)
}

// GetArtifact resolves a single artifact of a model and returns its raw
// bytes.
func (h *ArtifactHandler) GetArtifact(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ext := chi.URLParam(r, "ext")
	if name == "" || ext == "" {
		http.Error(w, "Missing model name or extension", http.StatusBadRequest)
		return
	}

	data, err := h.loader.Resolve(r.Context(), name, ext)
	if err != nil {
		slog.Error("Failed to resolve artifact", "model", name, "extension", ext, "error", err)
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	slog.Info("Artifact served", "model", name, "extension", ext, "size", len(data))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// statusForError maps the library's typed errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, modelartifacts.ErrIntegrityMismatch),
		errors.Is(err, modelartifacts.ErrDescriptorMalformed),
		errors.Is(err, modelartifacts.ErrVersionTagUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, modelartifacts.ErrArtifactUnavailable),
		errors.Is(err, modelartifacts.ErrArtifactNotFoundRemote):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
