package typing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/turmadocricas/cricas/internal/model"
	"github.com/turmadocricas/cricas/internal/ticker"
)

type frame struct {
	Shown string
	Delay time.Duration
	State model.TypingState
}

func TestStepCycle(t *testing.T) {
	a := New([]string{"ab", "c"})

	var got []frame
	var s model.TypingState
	for i := 0; i < 6; i++ {
		var shown string
		var delay time.Duration
		s, shown, delay = a.Step(s)
		got = append(got, frame{shown, delay, s})
	}

	want := []frame{
		{"a", TypeDelay, model.TypingState{Text: 0, Char: 1}},
		{"ab", HoldDelay, model.TypingState{Text: 0, Char: 2, Deleting: true}},
		{"a", DeleteDelay, model.TypingState{Text: 0, Char: 1, Deleting: true}},
		{"", NextDelay, model.TypingState{Text: 1, Char: 0}},
		{"c", HoldDelay, model.TypingState{Text: 1, Char: 1, Deleting: true}},
		{"", NextDelay, model.TypingState{Text: 0, Char: 0}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}
}

func TestStepCountsRunes(t *testing.T) {
	a := New([]string{"ão"})
	s, shown, _ := a.Step(model.TypingState{})
	if shown != "ã" {
		t.Errorf("first frame = %q, want %q", shown, "ã")
	}
	_, shown, delay := a.Step(s)
	if shown != "ão" || delay != HoldDelay {
		t.Errorf("second frame = %q after %v", shown, delay)
	}
}

func TestNormalize(t *testing.T) {
	a := New([]string{"abc", "de"})
	tests := []struct {
		in, want model.TypingState
	}{
		{model.TypingState{Text: 1, Char: 1}, model.TypingState{Text: 1, Char: 1}},
		{model.TypingState{Text: 1, Char: 9, Deleting: true}, model.TypingState{Text: 1, Char: 2, Deleting: true}},
		{model.TypingState{Text: 7, Char: 2, Deleting: true}, model.TypingState{}},
		{model.TypingState{Text: 0, Char: -4}, model.TypingState{}},
	}
	for _, tt := range tests {
		if got := a.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestShown(t *testing.T) {
	a := New([]string{"olá"})
	if got := a.Shown(model.TypingState{Char: 3}); got != "olá" {
		t.Errorf("Shown(char 3) = %q", got)
	}
	if got := a.Shown(model.TypingState{Char: 2, Deleting: true}); got != "ol" {
		t.Errorf("Shown(char 2) = %q", got)
	}
	if got := New(nil).Shown(model.TypingState{Char: 2}); got != "" {
		t.Errorf("empty Shown = %q", got)
	}
}

func TestEmptyAnimator(t *testing.T) {
	a := New(nil)
	s, shown, delay := a.Step(model.TypingState{Text: 3, Char: 2})
	if s != (model.TypingState{}) || shown != "" || delay != 0 {
		t.Errorf("Step on empty = %+v %q %v", s, shown, delay)
	}
	if _, done := a.Loop(func(string) {})(time.Time{}); !done {
		t.Error("loop over no texts did not finish")
	}
}

func TestLoopWithTicker(t *testing.T) {
	a := New([]string{"hi"})
	clock := ticker.NewManual(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	ctx, cancel := context.WithCancel(context.Background())

	var shown []string
	errc := make(chan error, 1)
	go func() {
		errc <- ticker.Run(ctx, clock, a.Loop(func(s string) { shown = append(shown, s) }))
	}()

	for _, d := range []time.Duration{TypeDelay, HoldDelay, DeleteDelay} {
		clock.BlockUntil(1)
		clock.Advance(d)
	}
	clock.BlockUntil(1)
	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v", err)
	}

	want := []string{"h", "hi", "h", ""}
	if diff := cmp.Diff(want, shown); diff != "" {
		t.Errorf("shown mismatch (-want +got):\n%s", diff)
	}
}
