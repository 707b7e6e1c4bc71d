package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/turmadocricas/cricas/internal/model"
)

// Form fields carrying the view state. Every fragment that owns a part of the
// state renders it back as hidden inputs marked data-state.
const (
	fieldSection        = "section"
	fieldSlide          = "slide"
	fieldOverlay        = "overlay"
	fieldMenu           = "menu"
	fieldTypingText     = "typing_text"
	fieldTypingChar     = "typing_char"
	fieldTypingDeleting = "typing_deleting"
	fieldScroll         = "scroll"
)

// parseViewState reads the view state from the query string or form body.
// Missing or malformed fields keep their defaults; page.Load validates the rest.
func parseViewState(r *http.Request) model.ViewState {
	vs := model.DefaultViewState()
	if s := formValue(r, fieldSection); s != "" {
		vs.Section = model.Section(s)
	}
	vs.Slide = formInt(r, fieldSlide)
	vs.Overlay = model.Overlay(formValue(r, fieldOverlay))
	vs.MenuOpen = formBool(r, fieldMenu)
	vs.Typing = model.TypingState{
		Text:     formInt(r, fieldTypingText),
		Char:     formInt(r, fieldTypingChar),
		Deleting: formBool(r, fieldTypingDeleting),
	}
	if f, err := strconv.ParseFloat(formValue(r, fieldScroll), 64); err == nil {
		vs.ScrollY = f
	}
	return vs
}

func formValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

func formInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(formValue(r, name))
	return n
}

func formBool(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(formValue(r, name))
	return b
}

// stateURL is the deep link for a view state, used to redirect requests made
// without htmx back to a full page.
func stateURL(basePath string, vs model.ViewState) string {
	q := url.Values{}
	if vs.Section != model.SectionHome {
		q.Set(fieldSection, string(vs.Section))
	}
	if vs.Slide != 0 {
		q.Set(fieldSlide, strconv.Itoa(vs.Slide))
	}
	if vs.Overlay != model.OverlayNone {
		q.Set(fieldOverlay, string(vs.Overlay))
	}
	if vs.MenuOpen {
		q.Set(fieldMenu, "true")
	}
	u := basePath + "/"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}
