package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// htmx request and response headers.
const (
	hxRequest    = "HX-Request"
	hxReswap     = "HX-Reswap"
	hxReplaceURL = "HX-Replace-Url"
)

// isHTMXRequest reports whether the request was initiated by htmx.
func isHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(hxRequest), "true")
}

// render writes c as HTML. The component is rendered into a buffer first so a
// failure halfway through becomes a clean 500 instead of a truncated page.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		slog.Error("render error", "error", err, "path", r.URL.Path)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("write response", "error", err)
	}
}
