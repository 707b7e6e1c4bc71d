// Package countdown computes the time left until the NP2 exam date.
package countdown

import (
	"fmt"
	"time"
)

// Default exam date: November 15 of the current year.
const (
	DefaultMonth = time.November
	DefaultDay   = 15
)

// Remaining is the time left split into display units.
type Remaining struct {
	Days     int
	Hours    int
	Minutes  int
	Seconds  int
	Finished bool // the target is in the past; all units are zero
}

// Digits returns the four units zero-padded to at least two digits.
func (r Remaining) Digits() (days, hours, minutes, seconds string) {
	return pad(r.Days), pad(r.Hours), pad(r.Minutes), pad(r.Seconds)
}

func pad(n int) string {
	return fmt.Sprintf("%02d", n)
}

// Target returns midnight of month/day in the year of now, in loc.
// A nil loc means time.Local.
func Target(now time.Time, month time.Month, day int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(now.In(loc).Year(), month, day, 0, 0, 0, 0, loc)
}

// Compute splits target - now into units. Sub-second remainders are dropped.
func Compute(now, target time.Time) Remaining {
	d := target.Sub(now)
	if d < 0 {
		return Remaining{Finished: true}
	}
	const day = 24 * time.Hour
	return Remaining{
		Days:    int(d / day),
		Hours:   int(d % day / time.Hour),
		Minutes: int(d % time.Hour / time.Minute),
		Seconds: int(d % time.Minute / time.Second),
	}
}

// Timer re-evaluates the countdown once per second until it finishes.
type Timer struct {
	target time.Time
	render func(Remaining)
}

// NewTimer creates a timer towards target that reports every tick to render.
func NewTimer(target time.Time, render func(Remaining)) *Timer {
	return &Timer{target: target, render: render}
}

// Target returns the timer's target instant.
func (t *Timer) Target() time.Time { return t.target }

// Step renders the current remaining time. It is done once the target has
// passed, after rendering the finished state once.
func (t *Timer) Step(now time.Time) (time.Duration, bool) {
	r := Compute(now, t.target)
	if t.render != nil {
		t.render(r)
	}
	return time.Second, r.Finished
}
