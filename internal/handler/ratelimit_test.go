package handler

import (
	"testing"
	"time"
)

func TestRateLimiterPerClient(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newRateLimiter(1, 2)
	l.now = func() time.Time { return now }

	for i, want := range []bool{true, true, false} {
		if got := l.allow("a"); got != want {
			t.Errorf("request %d from a: allow = %v, want %v", i, got, want)
		}
	}
	if !l.allow("b") {
		t.Error("b shares a's budget")
	}

	now = now.Add(time.Second)
	if !l.allow("a") {
		t.Error("a not refilled after one second")
	}
}

func TestRateLimiterSweepsIdleClients(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newRateLimiter(1, 1)
	l.now = func() time.Time { return now }

	l.allow("old")
	now = now.Add(visitorTTL + 2*time.Minute)
	l.allow("new")

	if _, ok := l.visitors["old"]; ok {
		t.Error("idle visitor not swept")
	}
	if len(l.visitors) != 1 {
		t.Errorf("visitors = %d, want 1", len(l.visitors))
	}
}
