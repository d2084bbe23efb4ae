package schedule

import (
	"context"
	"time"
)

// Countdown re-evaluates a room's window on a fixed cadence and drives the
// live countdown for one session. The tick callback fires on every
// evaluation; onEnded fires exactly once when the window transitions to
// ended, after which the countdown stops. Cancelling the context stops the
// countdown without firing onEnded.
type Countdown struct {
	interval time.Duration
	now      func() time.Time
}

// NewCountdown creates a countdown with the standard 1-second cadence
func NewCountdown() *Countdown {
	return &Countdown{
		interval: time.Second,
		now:      time.Now,
	}
}

// NewCountdownWithClock creates a countdown with an injected cadence and
// clock. Used by tests.
func NewCountdownWithClock(interval time.Duration, now func() time.Time) *Countdown {
	return &Countdown{interval: interval, now: now}
}

// Run blocks until the window ends or ctx is cancelled. tick may be nil.
func (c *Countdown) Run(ctx context.Context, scheduledFor time.Time, durationMinutes int, tick func(Window), onEnded func()) {
	// Evaluate immediately so a room that is already past its end locks out
	// without waiting for the first tick.
	if c.step(scheduledFor, durationMinutes, tick, onEnded) {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.step(scheduledFor, durationMinutes, tick, onEnded) {
				return
			}
		}
	}
}

func (c *Countdown) step(scheduledFor time.Time, durationMinutes int, tick func(Window), onEnded func()) bool {
	w := Evaluate(c.now(), scheduledFor, durationMinutes)
	if tick != nil {
		tick(w)
	}
	if w.Phase == PhaseEnded {
		if onEnded != nil {
			onEnded()
		}
		return true
	}
	return false
}
