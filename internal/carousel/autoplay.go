package carousel

import "time"

// DefaultInterval is the autoplay period.
const DefaultInterval = 4 * time.Second

// Autoplay advances a controller on a fixed interval. It is paused while the
// pointer hovers the carousel or the page is hidden, and resumes once neither
// holds.
type Autoplay struct {
	ctrl     *Controller
	interval time.Duration
	hovered  bool
	hidden   bool
}

// NewAutoplay creates an autoplay driver for c. A non-positive interval
// means DefaultInterval.
func NewAutoplay(c *Controller, interval time.Duration) *Autoplay {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Autoplay{ctrl: c, interval: interval}
}

// Interval returns the autoplay period.
func (a *Autoplay) Interval() time.Duration { return a.interval }

// Running reports whether ticks currently advance the carousel.
func (a *Autoplay) Running() bool {
	return a.ctrl.Enabled() && !a.hovered && !a.hidden
}

// SetHovered records pointer enter (true) or leave (false).
func (a *Autoplay) SetHovered(v bool) { a.hovered = v }

// SetHidden records the page becoming hidden (true) or visible again (false).
func (a *Autoplay) SetHidden(v bool) { a.hidden = v }

// Tick is called once per interval. It advances the carousel when running and
// reports whether it did.
func (a *Autoplay) Tick() bool {
	if !a.Running() {
		return false
	}
	a.ctrl.Next()
	return true
}

// Step adapts Tick to a ticker step function. It never finishes on its own.
func (a *Autoplay) Step(time.Time) (time.Duration, bool) {
	a.Tick()
	return a.interval, false
}
