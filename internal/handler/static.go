package handler

import (
	"embed"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
)

//go:embed static
var staticFiles embed.FS

// handleStatic serves the embedded assets. The file name comes from the
// route wildcard so it works under any base path.
func (h *Handler) handleStatic(w http.ResponseWriter, r *http.Request) {
	name := path.Join("static", path.Clean("/"+chi.URLParam(r, "*")))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFileFS(w, r, staticFiles, name)
}
