package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/turmadocricas/cricas/internal/handler/views"
	"github.com/turmadocricas/cricas/internal/model"
	"github.com/turmadocricas/cricas/internal/navigation"
	"github.com/turmadocricas/cricas/internal/page"
)

// respondApp sends the re-rendered #app element to htmx, or redirects plain
// form posts to the deep link of the new state.
func (h *Handler) respondApp(w http.ResponseWriter, r *http.Request, p *page.Page, scrollTo string) {
	u := stateURL(model.BasePathFromContext(r.Context()), p.State())
	if !isHTMXRequest(r) {
		http.Redirect(w, r, u, http.StatusSeeOther)
		return
	}
	w.Header().Set(hxReplaceURL, u)
	if scrollTo != "" {
		w.Header().Set(hxReswap, "outerHTML show:#"+scrollTo+":top")
	}
	render(w, r, views.App(views.AppData{Page: p, Now: h.now()}))
}

func (h *Handler) countSection(t navigation.Transition) {
	if h.metrics != nil {
		h.metrics.SectionViews.WithLabelValues(string(t.To)).Inc()
	}
}

func (h *Handler) handleSection(w http.ResponseWriter, r *http.Request) {
	p := h.load(r)
	t, ok := p.ShowSection(model.Section(chi.URLParam(r, "id")))
	if !ok {
		h.respondApp(w, r, p, "")
		return
	}
	h.countSection(t)
	h.respondApp(w, r, p, t.ScrollTarget())
}

func (h *Handler) handleMenu(w http.ResponseWriter, r *http.Request) {
	p := h.load(r)
	p.ToggleMenu()
	h.respondApp(w, r, p, "")
}

func (h *Handler) handleKey(w http.ResponseWriter, r *http.Request) {
	p := h.load(r)
	before := p.Section()
	if !p.PressKey(formValue(r, "key")) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	var scrollTo string
	if after := p.Section(); after != before {
		t := navigation.Transition{From: before, To: after}
		h.countSection(t)
		scrollTo = t.ScrollTarget()
	}
	h.respondApp(w, r, p, scrollTo)
}

func (h *Handler) handleOverlayOpen(w http.ResponseWriter, r *http.Request) {
	p := h.load(r)
	p.OpenOverlay(model.Overlay(chi.URLParam(r, "name")))
	h.respondApp(w, r, p, "")
}

func (h *Handler) handleOverlayClose(w http.ResponseWriter, r *http.Request) {
	p := h.load(r)
	p.CloseOverlay()
	h.respondApp(w, r, p, "")
}
