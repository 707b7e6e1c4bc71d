package page

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/turmadocricas/cricas/internal/model"
)

func testContent() model.Content {
	return model.Content{
		Logo:          "Turma",
		LogoCompact:   "Turminha",
		Headlines:     []string{"ab"},
		Members:       make([]model.Member, 5),
		FloatingIcons: []string{"📚", "🍺"},
	}
}

func testConfig() model.SiteConfig {
	return model.SiteConfig{SlideWidth: 320, AutoplayInterval: 4 * time.Second, Location: time.UTC}
}

func load(vs model.ViewState) *Page {
	return Load(vs, testContent(), testConfig())
}

func TestLoadSanitizesState(t *testing.T) {
	p := load(model.ViewState{
		Section: "bogus",
		Slide:   42,
		Overlay: "popup",
		Typing:  model.TypingState{Text: 9, Char: 9},
	})
	want := model.ViewState{Section: model.SectionHome}
	if diff := cmp.Diff(want, p.State()); diff != "" {
		t.Errorf("State() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRoundTripsValidState(t *testing.T) {
	vs := model.ViewState{
		Section:  model.SectionMembers,
		Slide:    3,
		Overlay:  model.OverlayCalculator,
		MenuOpen: true,
		Typing:   model.TypingState{Text: 0, Char: 1, Deleting: true},
		ScrollY:  120,
	}
	if diff := cmp.Diff(vs, load(vs).State()); diff != "" {
		t.Errorf("State() mismatch (-want +got):\n%s", diff)
	}
}

func TestShowSectionClosesMenu(t *testing.T) {
	p := load(model.ViewState{Section: model.SectionHome, MenuOpen: true})
	if _, ok := p.ShowSection(model.SectionRules); !ok {
		t.Fatal("ShowSection(rules) failed")
	}
	if p.MenuOpen() {
		t.Error("menu still open after navigating")
	}
	if p.Section() != model.SectionRules {
		t.Errorf("section = %q", p.Section())
	}
}

func TestShowUnknownSectionKeepsMenu(t *testing.T) {
	p := load(model.ViewState{Section: model.SectionHome, MenuOpen: true})
	if _, ok := p.ShowSection("nope"); ok {
		t.Fatal("ShowSection(nope) succeeded")
	}
	if !p.MenuOpen() || p.Section() != model.SectionHome {
		t.Errorf("state changed: %+v", p.State())
	}
}

func TestPressKey(t *testing.T) {
	tests := []struct {
		name   string
		start  model.ViewState
		key    string
		wantOK bool
		want   model.ViewState
	}{
		{
			"digit switches section",
			model.ViewState{Section: model.SectionHome},
			"3", true,
			model.ViewState{Section: model.SectionMembers},
		},
		{
			"arrow right on members",
			model.ViewState{Section: model.SectionMembers, Slide: 4},
			"ArrowRight", true,
			model.ViewState{Section: model.SectionMembers, Slide: 0},
		},
		{
			"arrow left on members",
			model.ViewState{Section: model.SectionMembers, Slide: 0},
			"ArrowLeft", true,
			model.ViewState{Section: model.SectionMembers, Slide: 4},
		},
		{
			"arrow ignored elsewhere",
			model.ViewState{Section: model.SectionRanking, Slide: 2},
			"ArrowRight", false,
			model.ViewState{Section: model.SectionRanking, Slide: 2},
		},
		{
			"escape dismisses overlay and menu",
			model.ViewState{Section: model.SectionHome, Overlay: model.OverlayDateInfo, MenuOpen: true},
			"Escape", true,
			model.ViewState{Section: model.SectionHome},
		},
		{
			"unbound key",
			model.ViewState{Section: model.SectionHome},
			"x", false,
			model.ViewState{Section: model.SectionHome},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := load(tt.start)
			if ok := p.PressKey(tt.key); ok != tt.wantOK {
				t.Errorf("PressKey(%q) = %v, want %v", tt.key, ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, p.State()); diff != "" {
				t.Errorf("state mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOverlays(t *testing.T) {
	p := load(model.DefaultViewState())
	if p.OpenOverlay("nope") || p.OpenOverlay(model.OverlayNone) {
		t.Error("opened an invalid overlay")
	}
	if !p.OpenOverlay(model.OverlayCalculator) || p.Overlay() != model.OverlayCalculator {
		t.Fatalf("overlay = %q, want calculator", p.Overlay())
	}
	p.CloseOverlay()
	if p.Overlay() != model.OverlayNone {
		t.Errorf("overlay = %q after close", p.Overlay())
	}
}

func TestToggleMenu(t *testing.T) {
	p := load(model.DefaultViewState())
	p.ToggleMenu()
	if !p.MenuOpen() {
		t.Fatal("menu closed after first toggle")
	}
	p.ToggleMenu()
	if p.MenuOpen() {
		t.Error("menu open after second toggle")
	}
}

func TestAutoplayTick(t *testing.T) {
	p := load(model.ViewState{Section: model.SectionMembers, Slide: 1})
	if p.AutoplayTick(true, false) {
		t.Error("advanced while hovered")
	}
	if p.AutoplayTick(false, true) {
		t.Error("advanced while hidden")
	}
	if !p.AutoplayTick(false, false) || p.Carousel().Index != 2 {
		t.Errorf("index = %d, want 2", p.Carousel().Index)
	}
}

func TestCarouselWithoutMembers(t *testing.T) {
	c := testContent()
	c.Members = nil
	p := Load(model.ViewState{Section: model.SectionMembers, Slide: 3}, c, testConfig())
	p.NextSlide()
	p.PressKey("ArrowLeft")
	if p.AutoplayTick(false, false) {
		t.Error("autoplay advanced without members")
	}
	if got := p.Carousel(); got.Index != 0 || got.Total != 0 {
		t.Errorf("frame = %+v", got)
	}
}

func TestTypingStepAdvancesState(t *testing.T) {
	p := load(model.DefaultViewState())
	shown, delay, ok := p.TypingStep()
	if !ok || shown != "a" || delay != 100*time.Millisecond {
		t.Fatalf("TypingStep() = %q, %v, %v", shown, delay, ok)
	}
	if got := p.State().Typing; got != (model.TypingState{Char: 1}) {
		t.Errorf("typing state = %+v", got)
	}
}

func TestTypingDoesNotAdvance(t *testing.T) {
	vs := model.DefaultViewState()
	vs.Typing = model.TypingState{Char: 1}
	p := load(vs)
	shown, _, ok := p.Typing()
	if !ok || shown != "a" {
		t.Fatalf("Typing() = %q, %v", shown, ok)
	}
	if got := p.State().Typing; got != vs.Typing {
		t.Errorf("typing state changed to %+v", got)
	}
}

func TestLoadClampsScroll(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
		{-12, 0},
		{120, 120},
	}
	for _, tt := range tests {
		vs := model.DefaultViewState()
		vs.ScrollY = tt.in
		p := load(vs)
		if got := p.State().ScrollY; got != tt.want {
			t.Errorf("Load(scroll=%v).ScrollY = %v, want %v", tt.in, got, tt.want)
		}
		for _, icon := range p.FloatingIcons() {
			if math.IsNaN(icon.Parallax.TranslateY) || math.IsNaN(icon.Parallax.Rotate) {
				t.Errorf("Load(scroll=%v) icon transform = %+v", tt.in, icon.Parallax)
			}
		}
	}
}

func TestNavbarAndIcons(t *testing.T) {
	p := load(model.DefaultViewState())
	p.SetScroll(-10)
	if nb := p.Navbar(); nb.Scrolled || nb.Logo != "Turma" {
		t.Errorf("navbar at top = %+v", nb)
	}
	p.SetScroll(300)
	if nb := p.Navbar(); !nb.SearchMode || nb.Logo != "Turminha" {
		t.Errorf("navbar at 300 = %+v", nb)
	}
	icons := p.FloatingIcons()
	if len(icons) != 2 {
		t.Fatalf("got %d icons", len(icons))
	}
	if icons[1].Parallax.TranslateY >= icons[0].Parallax.TranslateY {
		t.Errorf("second icon should move further: %+v", icons)
	}
}

func TestCountdownAt(t *testing.T) {
	p := load(model.DefaultViewState())
	now := time.Date(2025, time.November, 14, 0, 0, 0, 0, time.UTC)
	cd := p.CountdownAt(now)
	if !cd.Target.Equal(time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("target = %v", cd.Target)
	}
	if cd.Remaining.Days != 1 || cd.Remaining.Finished {
		t.Errorf("remaining = %+v", cd.Remaining)
	}

	after := p.CountdownAt(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC))
	if !after.Remaining.Finished {
		t.Errorf("remaining after date = %+v, want finished", after.Remaining)
	}
}
