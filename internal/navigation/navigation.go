// Package navigation implements the single-active-section view switcher,
// the keyboard shortcuts and the navbar scroll appearance.
package navigation

import "github.com/turmadocricas/cricas/internal/model"

// Switcher keeps exactly one section active.
type Switcher struct {
	active model.Section
}

// NewSwitcher starts on initial, or on home when initial is not a known section.
func NewSwitcher(initial model.Section) *Switcher {
	if !initial.Valid() {
		initial = model.SectionHome
	}
	return &Switcher{active: initial}
}

// Transition describes one section change.
type Transition struct {
	From model.Section
	To   model.Section
}

// ScrollTarget is the element id to scroll into view after the change.
func (t Transition) ScrollTarget() string { return string(t.To) }

// Active returns the active section.
func (s *Switcher) Active() model.Section { return s.active }

// IsActive reports whether sec is the active section.
func (s *Switcher) IsActive(sec model.Section) bool { return s.active == sec }

// Show makes id the active section. Unknown ids leave the switcher untouched
// and return false.
func (s *Switcher) Show(id model.Section) (Transition, bool) {
	if !id.Valid() {
		return Transition{}, false
	}
	t := Transition{From: s.active, To: id}
	s.active = id
	return t, true
}

// Link is a navigation entry with its highlight state.
type Link struct {
	Section model.Section
	Key     string // keyboard shortcut
	Active  bool
}

// Links returns one link per section, in navigation order.
func (s *Switcher) Links() []Link {
	links := make([]Link, 0, len(model.Sections))
	for _, sec := range model.Sections {
		links = append(links, Link{
			Section: sec,
			Key:     ShortcutFor(sec),
			Active:  sec == s.active,
		})
	}
	return links
}
