package countdown

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/turmadocricas/cricas/internal/ticker"
)

func TestTarget(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, loc)

	got := Target(now, DefaultMonth, DefaultDay, loc)
	want := time.Date(2025, time.November, 15, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("Target() = %v, want %v", got, want)
	}
}

func TestTargetUsesYearInLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	// 01:00 UTC on Jan 1 is still Dec 31 in BRT.
	now := time.Date(2026, time.January, 1, 1, 0, 0, 0, time.UTC)
	if got := Target(now, time.November, 15, loc).Year(); got != 2025 {
		t.Errorf("Target year = %d, want 2025", got)
	}
}

func TestCompute(t *testing.T) {
	target := time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want Remaining
	}{
		{
			"days ahead",
			target.Add(-(3*24*time.Hour + 4*time.Hour + 5*time.Minute + 6*time.Second)),
			Remaining{Days: 3, Hours: 4, Minutes: 5, Seconds: 6},
		},
		{
			"sub-second dropped",
			target.Add(-(90*time.Second + 999*time.Millisecond)),
			Remaining{Minutes: 1, Seconds: 30},
		},
		{
			"exactly at target",
			target,
			Remaining{},
		},
		{
			"past target",
			target.Add(time.Millisecond),
			Remaining{Finished: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Compute(tt.now, target)); diff != "" {
				t.Errorf("Compute() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDigits(t *testing.T) {
	d, h, m, s := Remaining{Days: 120, Hours: 3, Minutes: 0, Seconds: 59}.Digits()
	got := []string{d, h, m, s}
	want := []string{"120", "03", "00", "59"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Digits() mismatch (-want +got):\n%s", diff)
	}
}

func TestTimerStopsAfterTarget(t *testing.T) {
	target := time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC)
	clock := ticker.NewManual(target.Add(-2 * time.Second))

	var frames []Remaining
	timer := NewTimer(target, func(r Remaining) { frames = append(frames, r) })

	errc := make(chan error, 1)
	go func() { errc <- ticker.Run(context.Background(), clock, timer.Step) }()

	for i := 0; i < 3; i++ {
		clock.BlockUntil(1)
		clock.Advance(time.Second)
	}
	if err := <-errc; err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []Remaining{
		{Seconds: 2},
		{Seconds: 1},
		{},
		{Finished: true},
	}
	if diff := cmp.Diff(want, frames); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}
}
