package schedule

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock advances by step on every reading so Run makes progress without
// real sleeps.
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.now
	f.now = f.now.Add(f.step)
	return t
}

func TestCountdown_EndsOnce(t *testing.T) {
	scheduledFor := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: scheduledFor.Add(9 * time.Minute), step: 30 * time.Second}

	var ticks int
	var ended int
	cd := NewCountdownWithClock(time.Millisecond, clock.Now)

	done := make(chan struct{})
	go func() {
		defer close(done)
		cd.Run(context.Background(), scheduledFor, 10,
			func(Window) { ticks++ },
			func() { ended++ })
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("countdown did not stop after the window ended")
	}

	assert.Equal(t, 1, ended, "onEnded must fire exactly once")
	assert.Greater(t, ticks, 1)
}

func TestCountdown_AlreadyEnded(t *testing.T) {
	scheduledFor := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: scheduledFor.Add(2 * time.Hour), step: time.Second}

	var ended int
	cd := NewCountdownWithClock(time.Millisecond, clock.Now)
	cd.Run(context.Background(), scheduledFor, 10, nil, func() { ended++ })

	assert.Equal(t, 1, ended, "an already-expired window ends on the first evaluation")
}

func TestCountdown_CancelStopsWithoutEnded(t *testing.T) {
	scheduledFor := time.Now().Add(time.Hour)
	cd := NewCountdownWithClock(time.Millisecond, time.Now)

	ctx, cancel := context.WithCancel(context.Background())

	endedCh := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		cd.Run(ctx, scheduledFor, 30, nil, func() { endedCh <- struct{}{} })
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("countdown did not stop on cancellation")
	}

	select {
	case <-endedCh:
		t.Fatal("onEnded fired for a cancelled countdown")
	default:
	}
}
