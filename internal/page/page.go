// Package page is the view model of the site. A Page is rebuilt from the
// ViewState of every request, owns one controller per concern and hands the
// updated ViewState back to the browser.
package page

import (
	"math"
	"time"

	"github.com/turmadocricas/cricas/internal/carousel"
	"github.com/turmadocricas/cricas/internal/countdown"
	"github.com/turmadocricas/cricas/internal/effects"
	"github.com/turmadocricas/cricas/internal/model"
	"github.com/turmadocricas/cricas/internal/navigation"
	"github.com/turmadocricas/cricas/internal/typing"
)

// Page holds the controllers for one request.
type Page struct {
	cfg     model.SiteConfig
	content model.Content

	nav      *navigation.Switcher
	carousel *carousel.Controller
	autoplay *carousel.Autoplay
	typing   *typing.Animator

	typingState model.TypingState
	overlay     model.Overlay
	menuOpen    bool
	scrollY     float64
}

// Load rebuilds a page from the state sent by the browser. Invalid parts of
// the state fall back to their defaults.
func Load(vs model.ViewState, c model.Content, cfg model.SiteConfig) *Page {
	p := &Page{
		cfg:      cfg,
		content:  c,
		nav:      navigation.NewSwitcher(vs.Section),
		carousel: carousel.New(len(c.Members), vs.Slide, carousel.WithSlideWidth(cfg.SlideWidth)),
		typing:   typing.New(c.Headlines),
		menuOpen: vs.MenuOpen,
	}
	p.SetScroll(vs.ScrollY)
	p.autoplay = carousel.NewAutoplay(p.carousel, cfg.AutoplayInterval)
	p.typingState = p.typing.Normalize(vs.Typing)
	if vs.Overlay.Valid() {
		p.overlay = vs.Overlay
	}
	return p
}

// State returns the view state to send back to the browser.
func (p *Page) State() model.ViewState {
	return model.ViewState{
		Section:  p.nav.Active(),
		Slide:    p.carousel.Index(),
		Overlay:  p.overlay,
		MenuOpen: p.menuOpen,
		Typing:   p.typingState,
		ScrollY:  p.scrollY,
	}
}

// Content returns the site content.
func (p *Page) Content() model.Content { return p.content }

// Config returns the site configuration.
func (p *Page) Config() model.SiteConfig { return p.cfg }

// Section returns the active section.
func (p *Page) Section() model.Section { return p.nav.Active() }

// Links returns the navigation links with the active one highlighted.
func (p *Page) Links() []navigation.Link { return p.nav.Links() }

// ShowSection switches to id and closes the mobile menu. Unknown ids are ignored.
func (p *Page) ShowSection(id model.Section) (navigation.Transition, bool) {
	t, ok := p.nav.Show(id)
	if ok {
		p.menuOpen = false
	}
	return t, ok
}

// MenuOpen reports whether the mobile menu is expanded.
func (p *Page) MenuOpen() bool { return p.menuOpen }

// ToggleMenu expands or collapses the mobile menu.
func (p *Page) ToggleMenu() { p.menuOpen = !p.menuOpen }

// Overlay returns the open modal, if any.
func (p *Page) Overlay() model.Overlay { return p.overlay }

// OpenOverlay opens a modal. Unknown overlays are ignored.
func (p *Page) OpenOverlay(o model.Overlay) bool {
	if o == model.OverlayNone || !o.Valid() {
		return false
	}
	p.overlay = o
	return true
}

// CloseOverlay closes the open modal.
func (p *Page) CloseOverlay() { p.overlay = model.OverlayNone }

// Dismiss closes the open modal and the mobile menu.
func (p *Page) Dismiss() {
	p.overlay = model.OverlayNone
	p.menuOpen = false
}

// PressKey applies a keyboard shortcut and reports whether it did anything.
func (p *Page) PressKey(key string) bool {
	cmd, ok := navigation.Resolve(key, p.nav.Active())
	if !ok {
		return false
	}
	switch cmd.Action {
	case navigation.ActionShowSection:
		_, ok = p.ShowSection(cmd.Section)
		return ok
	case navigation.ActionPreviousSlide:
		p.carousel.Previous()
	case navigation.ActionNextSlide:
		p.carousel.Next()
	case navigation.ActionDismiss:
		p.Dismiss()
	}
	return true
}

// Carousel returns the current carousel frame.
func (p *Page) Carousel() carousel.Frame { return p.carousel.Frame() }

// NextSlide advances the carousel.
func (p *Page) NextSlide() { p.carousel.Next() }

// PreviousSlide moves the carousel back.
func (p *Page) PreviousSlide() { p.carousel.Previous() }

// GoToSlide jumps to slide i.
func (p *Page) GoToSlide(i int) { p.carousel.GoTo(i) }

// AutoplayTick runs one autoplay tick with the pointer and visibility state
// reported by the browser, and reports whether the carousel moved.
func (p *Page) AutoplayTick(hovered, hidden bool) bool {
	p.autoplay.SetHovered(hovered)
	p.autoplay.SetHidden(hidden)
	return p.autoplay.Tick()
}

// AutoplayInterval returns the autoplay period.
func (p *Page) AutoplayInterval() time.Duration { return p.autoplay.Interval() }

// Typing returns the headline text for the current state and the delay
// before the next frame. ok is false without headlines.
func (p *Page) Typing() (shown string, delay time.Duration, ok bool) {
	if p.typing.Empty() {
		return "", 0, false
	}
	return p.typing.Shown(p.typingState), typing.TypeDelay, true
}

// TypingStep advances the headline typewriter and returns the text to show
// and the delay before the next frame. It returns ok=false without headlines.
func (p *Page) TypingStep() (shown string, delay time.Duration, ok bool) {
	if p.typing.Empty() {
		return "", 0, false
	}
	p.typingState, shown, delay = p.typing.Step(p.typingState)
	return shown, delay, true
}

// Navbar returns the navbar appearance for the reported scroll offset.
func (p *Page) Navbar() navigation.Navbar {
	return navigation.NavbarAt(p.scrollY, p.content.Logo, p.content.LogoCompact)
}

// SetScroll records the page scroll offset. Negative and non-finite offsets
// count as the top of the page.
func (p *Page) SetScroll(y float64) {
	if y < 0 || math.IsNaN(y) || math.IsInf(y, 0) {
		y = 0
	}
	p.scrollY = y
}

// FloatingIcon is a decorative icon with its parallax transform.
type FloatingIcon struct {
	Icon     string
	Parallax effects.Parallax
}

// FloatingIcons returns the decorative icons positioned for the scroll offset.
func (p *Page) FloatingIcons() []FloatingIcon {
	icons := make([]FloatingIcon, 0, len(p.content.FloatingIcons))
	for i, icon := range p.content.FloatingIcons {
		icons = append(icons, FloatingIcon{Icon: icon, Parallax: effects.ParallaxAt(p.scrollY, i)})
	}
	return icons
}

// Countdown describes the NP2 countdown at a given instant.
type Countdown struct {
	Target    time.Time
	Remaining countdown.Remaining
}

// CountdownAt evaluates the countdown at now.
func (p *Page) CountdownAt(now time.Time) Countdown {
	month, day := p.cfg.CountdownMonth, p.cfg.CountdownDay
	if month == 0 {
		month = countdown.DefaultMonth
	}
	if day == 0 {
		day = countdown.DefaultDay
	}
	target := countdown.Target(now, month, day, p.cfg.Location)
	return Countdown{Target: target, Remaining: countdown.Compute(now, target)}
}
