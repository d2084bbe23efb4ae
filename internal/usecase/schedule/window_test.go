package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate_Phases(t *testing.T) {
	scheduledFor := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	const durationMinutes = 60

	tests := []struct {
		name string
		now  time.Time
		want Phase
	}{
		{"ten minutes early", scheduledFor.Add(-10 * time.Minute), PhaseNotYetOpen},
		{"three minutes early", scheduledFor.Add(-3 * time.Minute), PhaseJoinable},
		{"exactly at early boundary", scheduledFor.Add(-EarlyJoinWindow), PhaseJoinable},
		{"at start", scheduledFor, PhaseJoinable},
		{"mid window", scheduledFor.Add(30 * time.Minute), PhaseJoinable},
		{"at end", scheduledFor.Add(60 * time.Minute), PhaseJoinable},
		{"one minute past end", scheduledFor.Add(61 * time.Minute), PhaseEnded},
		{"a day late", scheduledFor.Add(24 * time.Hour), PhaseEnded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Evaluate(tt.now, scheduledFor, durationMinutes)
			assert.Equal(t, tt.want, w.Phase)
		})
	}
}

func TestEvaluate_RemainingSeconds(t *testing.T) {
	scheduledFor := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	w := Evaluate(scheduledFor.Add(50*time.Minute), scheduledFor, 60)
	assert.Equal(t, int64(600), w.RemainingSeconds)

	// Early joiners see the remaining time to the end, including the
	// not-yet-started portion.
	w = Evaluate(scheduledFor.Add(-2*time.Minute), scheduledFor, 60)
	assert.Equal(t, int64(62*60), w.RemainingSeconds)

	// Never negative, whatever the inputs.
	w = Evaluate(scheduledFor.Add(3*time.Hour), scheduledFor, 60)
	assert.GreaterOrEqual(t, w.RemainingSeconds, int64(0))
}

func TestEvaluate_Totality(t *testing.T) {
	scheduledFor := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	// Every instant maps to exactly one known phase.
	for offset := -48 * time.Hour; offset <= 48*time.Hour; offset += 17 * time.Minute {
		w := Evaluate(scheduledFor.Add(offset), scheduledFor, 45)
		switch w.Phase {
		case PhaseNotYetOpen, PhaseJoinable, PhaseEnded:
		default:
			t.Fatalf("unknown phase %q at offset %v", w.Phase, offset)
		}
	}
}
