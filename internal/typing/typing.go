// Package typing implements the typewriter effect of the home headline.
package typing

import (
	"time"

	"github.com/turmadocricas/cricas/internal/model"
)

// Delays between frames.
const (
	TypeDelay   = 100 * time.Millisecond
	DeleteDelay = 50 * time.Millisecond
	HoldDelay   = 2000 * time.Millisecond // full text shown
	NextDelay   = 500 * time.Millisecond  // text erased, before the next one
)

// Animator cycles through a fixed list of texts, typing each one rune by rune
// and then erasing it.
type Animator struct {
	texts [][]rune
}

// New creates an animator over texts.
func New(texts []string) *Animator {
	a := &Animator{}
	for _, t := range texts {
		a.texts = append(a.texts, []rune(t))
	}
	return a
}

// Empty reports whether there is nothing to animate.
func (a *Animator) Empty() bool { return len(a.texts) == 0 }

// Normalize clamps a state received from outside into a valid position.
func (a *Animator) Normalize(s model.TypingState) model.TypingState {
	if a.Empty() {
		return model.TypingState{}
	}
	if s.Text < 0 || s.Text >= len(a.texts) {
		s.Text = 0
		s.Char = 0
		s.Deleting = false
	}
	n := len(a.texts[s.Text])
	if s.Char < 0 {
		s.Char = 0
	}
	if s.Char > n {
		s.Char = n
	}
	return s
}

// Shown returns the text visible in state s without advancing it.
func (a *Animator) Shown(s model.TypingState) string {
	if a.Empty() {
		return ""
	}
	s = a.Normalize(s)
	return string(a.texts[s.Text][:s.Char])
}

// Step produces the next frame: the text to show, the delay before the
// following step and the state to pass to it.
func (a *Animator) Step(s model.TypingState) (next model.TypingState, shown string, delay time.Duration) {
	if a.Empty() {
		return model.TypingState{}, "", 0
	}
	s = a.Normalize(s)
	current := a.texts[s.Text]

	if s.Deleting {
		s.Char = max(s.Char-1, 0)
		delay = DeleteDelay
	} else {
		s.Char = min(s.Char+1, len(current))
		delay = TypeDelay
	}
	shown = string(current[:s.Char])

	switch {
	case !s.Deleting && s.Char == len(current):
		s.Deleting = true
		delay = HoldDelay
	case s.Deleting && s.Char == 0:
		s.Deleting = false
		s.Text = (s.Text + 1) % len(a.texts)
		delay = NextDelay
	}
	return s, shown, delay
}

// Loop returns a ticker step that animates forever, passing every frame to render.
func (a *Animator) Loop(render func(string)) func(time.Time) (time.Duration, bool) {
	var state model.TypingState
	return func(time.Time) (time.Duration, bool) {
		if a.Empty() {
			return 0, true
		}
		var shown string
		var delay time.Duration
		state, shown, delay = a.Step(state)
		render(shown)
		return delay, false
	}
}
