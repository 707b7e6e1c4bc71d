package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/turmadocricas/cricas/internal/handler/views"
)

func (h *Handler) handleCarousel(w http.ResponseWriter, r *http.Request) {
	p := h.load(r)
	switch chi.URLParam(r, "action") {
	case "next":
		p.NextSlide()
	case "prev":
		p.PreviousSlide()
	case "tick":
		if !p.AutoplayTick(formBool(r, "hovered"), formBool(r, "hidden")) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
	default:
		http.NotFound(w, r)
		return
	}
	render(w, r, views.Carousel(p))
}

func (h *Handler) handleCarouselGoTo(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid slide index", http.StatusBadRequest)
		return
	}
	p := h.load(r)
	p.GoToSlide(i)
	render(w, r, views.Carousel(p))
}

func (h *Handler) handleTyping(w http.ResponseWriter, r *http.Request) {
	p := h.load(r)
	shown, delay, ok := p.TypingStep()
	render(w, r, views.Typing(views.TypingFrame{
		Shown:  shown,
		Delay:  delay,
		State:  p.State().Typing,
		Active: ok,
	}))
}

func (h *Handler) handleCountdown(w http.ResponseWriter, r *http.Request) {
	p := h.load(r)
	render(w, r, views.Countdown(p.CountdownAt(h.now())))
}

func (h *Handler) handleNavbarScroll(w http.ResponseWriter, r *http.Request) {
	p := h.load(r)
	render(w, r, views.NavbarScroll(p))
}
