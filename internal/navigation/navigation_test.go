package navigation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/turmadocricas/cricas/internal/model"
)

func TestSwitcherShow(t *testing.T) {
	s := NewSwitcher(model.SectionHome)

	tr, ok := s.Show(model.SectionMembers)
	if !ok {
		t.Fatal("Show(members) returned false")
	}
	if tr.From != model.SectionHome || tr.To != model.SectionMembers {
		t.Errorf("transition = %+v", tr)
	}
	if tr.ScrollTarget() != "members" {
		t.Errorf("scroll target = %q, want members", tr.ScrollTarget())
	}
	if s.Active() != model.SectionMembers {
		t.Errorf("active = %q, want members", s.Active())
	}
}

func TestSwitcherIgnoresUnknownSection(t *testing.T) {
	s := NewSwitcher(model.SectionRules)
	if _, ok := s.Show("settings"); ok {
		t.Error("Show(settings) returned true")
	}
	if s.Active() != model.SectionRules {
		t.Errorf("active = %q, want rules", s.Active())
	}
}

func TestNewSwitcherFallsBackToHome(t *testing.T) {
	if got := NewSwitcher("nope").Active(); got != model.SectionHome {
		t.Errorf("active = %q, want home", got)
	}
}

func TestLinksHighlightOnlyActive(t *testing.T) {
	s := NewSwitcher(model.SectionJobs)
	links := s.Links()
	if len(links) != len(model.Sections) {
		t.Fatalf("got %d links, want %d", len(links), len(model.Sections))
	}
	active := 0
	for _, l := range links {
		if l.Active {
			active++
			if l.Section != model.SectionJobs {
				t.Errorf("link %q highlighted", l.Section)
			}
		}
		if l.Key == "" {
			t.Errorf("link %q has no shortcut", l.Section)
		}
	}
	if active != 1 {
		t.Errorf("%d links highlighted, want 1", active)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		key    string
		active model.Section
		want   Command
		wantOK bool
	}{
		{"1", model.SectionRules, Command{Action: ActionShowSection, Section: model.SectionHome}, true},
		{"2", model.SectionHome, Command{Action: ActionShowSection, Section: model.SectionRanking}, true},
		{"3", model.SectionHome, Command{Action: ActionShowSection, Section: model.SectionMembers}, true},
		{"4", model.SectionHome, Command{Action: ActionShowSection, Section: model.SectionRules}, true},
		{"5", model.SectionHome, Command{Action: ActionShowSection, Section: model.SectionCountdown}, true},
		{"6", model.SectionHome, Command{Action: ActionShowSection, Section: model.SectionJobs}, true},
		{"ArrowLeft", model.SectionMembers, Command{Action: ActionPreviousSlide}, true},
		{"ArrowRight", model.SectionMembers, Command{Action: ActionNextSlide}, true},
		{"ArrowLeft", model.SectionHome, Command{}, false},
		{"ArrowRight", model.SectionRanking, Command{}, false},
		{"Escape", model.SectionHome, Command{Action: ActionDismiss}, true},
		{"7", model.SectionHome, Command{}, false},
		{"a", model.SectionMembers, Command{}, false},
	}
	for _, tt := range tests {
		got, ok := Resolve(tt.key, tt.active)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Resolve(%q, %q) = %+v, %v; want %+v, %v", tt.key, tt.active, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestKeysAllResolve(t *testing.T) {
	for _, k := range Keys() {
		if _, ok := Resolve(k, model.SectionMembers); !ok {
			t.Errorf("bound key %q does not resolve on members", k)
		}
	}
}

func TestNavbarAt(t *testing.T) {
	tests := []struct {
		y    float64
		want Navbar
	}{
		{0, Navbar{Logo: "Turma"}},
		{50, Navbar{Logo: "Turma"}},
		{51, Navbar{Scrolled: true, Logo: "Turma"}},
		{200, Navbar{Scrolled: true, Logo: "Turma"}},
		{201, Navbar{Scrolled: true, SearchMode: true, Logo: "Turminha"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, NavbarAt(tt.y, "Turma", "Turminha")); diff != "" {
			t.Errorf("NavbarAt(%v) mismatch (-want +got):\n%s", tt.y, diff)
		}
	}
}
