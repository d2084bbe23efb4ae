package tasks

import (
	"context"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Outcome records the final state of one fire-and-forget task
type Outcome struct {
	Name       string
	Err        error
	Attempts   int
	FinishedAt time.Time
}

// Runner executes best-effort side effects off the critical path. Failures
// are retried with exponential backoff, then logged and recorded in the
// outcome log; they are never surfaced to the caller.
type Runner struct {
	logger     *zap.Logger
	maxElapsed time.Duration

	mu       sync.Mutex
	outcomes []Outcome
	wg       sync.WaitGroup
}

// NewRunner creates a task runner
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{
		logger:     logger,
		maxElapsed: 30 * time.Second,
	}
}

// Go schedules fn on its own goroutine. The task retries on error until the
// backoff budget is spent, then its outcome is recorded.
func (r *Runner) Go(ctx context.Context, name string, fn func(context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		attempts := 0
		operation := func() error {
			attempts++
			return fn(ctx)
		}

		bo := backoff.NewExponentialBackOff()
		bo.MaxElapsedTime = r.maxElapsed

		err := backoff.Retry(operation, backoff.WithContext(bo, ctx))
		if err != nil {
			r.logger.Warn("best-effort task failed",
				zap.String("task", name),
				zap.Int("attempts", attempts),
				zap.Error(err),
			)
		}

		r.mu.Lock()
		r.outcomes = append(r.outcomes, Outcome{
			Name:       name,
			Err:        err,
			Attempts:   attempts,
			FinishedAt: time.Now(),
		})
		r.mu.Unlock()
	}()
}

// Outcomes returns a snapshot of recorded task outcomes
func (r *Runner) Outcomes() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Outcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

// Wait blocks until all scheduled tasks have finished. Intended for shutdown
// and tests.
func (r *Runner) Wait() {
	r.wg.Wait()
}
