// Package ticker runs timer-driven state machines (countdown, typing,
// autoplay) as a loop of pure steps, so the same step function can be driven
// by wall time or by a test.
package ticker

import (
	"context"
	"sync"
	"time"
)

// Step is one transition of a timer-driven loop. It returns the delay until
// the next call, or done to stop the loop.
type Step func(now time.Time) (next time.Duration, done bool)

// Clock abstracts wall time.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// System is the real clock.
type System struct{}

func (System) Now() time.Time                         { return time.Now() }
func (System) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Run calls step until it reports done or ctx is cancelled. The first call
// happens immediately. It returns ctx.Err() on cancellation and nil otherwise.
func Run(ctx context.Context, clock Clock, step Step) error {
	for {
		next, done := step(clock.Now())
		if done {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(next):
		}
	}
}

// Manual is a clock that only moves when told to.
type Manual struct {
	mu      sync.Mutex
	cond    *sync.Cond
	now     time.Time
	waiters []waiter
}

type waiter struct {
	at time.Time
	ch chan time.Time
}

// NewManual returns a manual clock set to start.
func NewManual(start time.Time) *Manual {
	m := &Manual{now: start}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Now returns the clock's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// After returns a channel that receives once the clock has advanced by d.
func (m *Manual) After(d time.Duration) <-chan time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- m.now
		return ch
	}
	m.waiters = append(m.waiters, waiter{at: m.now.Add(d), ch: ch})
	m.cond.Broadcast()
	return ch
}

// Advance moves the clock forward by d and fires every waiter that is due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	pending := m.waiters[:0]
	for _, w := range m.waiters {
		if w.at.After(m.now) {
			pending = append(pending, w)
			continue
		}
		w.ch <- m.now
	}
	m.waiters = pending
}

// BlockUntil waits until n callers are blocked in After.
func (m *Manual) BlockUntil(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.waiters) < n {
		m.cond.Wait()
	}
}
