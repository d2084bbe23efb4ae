package schedule

import "time"

// Phase classifies where an instant falls relative to a room's schedule
type Phase string

const (
	PhaseNotYetOpen Phase = "not_yet_open"
	PhaseJoinable   Phase = "joinable"
	PhaseEnded      Phase = "ended"
)

// EarlyJoinWindow is how long before the scheduled start a candidate may join
const EarlyJoinWindow = 5 * time.Minute

// Window is the evaluated admission state for a room at a given instant
type Window struct {
	Phase            Phase `json:"phase"`
	RemainingSeconds int64 `json:"remaining_seconds"`
}

// Evaluate computes the admission phase and remaining time for a room
// scheduled at scheduledFor with the given duration. RemainingSeconds is
// only meaningful while joinable and is clamped to zero or above.
func Evaluate(now, scheduledFor time.Time, durationMinutes int) Window {
	endTime := scheduledFor.Add(time.Duration(durationMinutes) * time.Minute)

	if now.After(endTime) {
		return Window{Phase: PhaseEnded}
	}
	if scheduledFor.Sub(now) > EarlyJoinWindow {
		return Window{Phase: PhaseNotYetOpen}
	}

	remaining := int64(endTime.Sub(now) / time.Second)
	if remaining < 0 {
		remaining = 0
	}
	return Window{Phase: PhaseJoinable, RemainingSeconds: remaining}
}
