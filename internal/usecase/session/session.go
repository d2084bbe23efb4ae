package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prepwise/interview-assistant/internal/domain/entities"
	"github.com/prepwise/interview-assistant/internal/infrastructure/external/livekit"
)

// State is a session's lifecycle phase
type State string

const (
	StateIdle       State = "idle"
	StateLoading    State = "loading"
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
)

// Session is one live interview run. All mutable fields are guarded by mu;
// gen increments on every (re)start so that slow loads from a superseded
// start never clobber a newer one.
type Session struct {
	ID uuid.UUID

	mu  sync.Mutex
	gen uint64

	state           State
	candidateID     uuid.UUID
	roomID          *uuid.UUID
	roomKey         string
	jobRole         entities.JobRole
	experienceLevel entities.ExperienceLevel
	scheduled       bool
	scheduledFor    *time.Time
	durationMinutes int

	questions []entities.Question
	current   int
	answers   map[string]entities.Answer
	qLocks    map[string]*sync.Mutex

	capture   *livekit.Capture
	deviceErr error

	remaining       int64
	startedAt       time.Time
	result          *entities.InterviewResult
	cancelCountdown context.CancelFunc
}

func newSession() *Session {
	return &Session{
		ID:      uuid.New(),
		state:   StateIdle,
		answers: make(map[string]entities.Answer),
		qLocks:  make(map[string]*sync.Mutex),
	}
}

// questionLock returns the serialization lock for one question id.
// Caller must hold s.mu.
func (s *Session) questionLock(questionID string) *sync.Mutex {
	lock, ok := s.qLocks[questionID]
	if !ok {
		lock = &sync.Mutex{}
		s.qLocks[questionID] = lock
	}
	return lock
}

// resetLocked clears per-run state for a fresh start. Caller must hold s.mu.
func (s *Session) resetLocked() {
	s.state = StateLoading
	s.questions = nil
	s.current = 0
	s.answers = make(map[string]entities.Answer)
	s.qLocks = make(map[string]*sync.Mutex)
	s.deviceErr = nil
	s.remaining = 0
	s.result = nil
}

// Snapshot is a consistent read-only view of a session
type Snapshot struct {
	ID               uuid.UUID                 `json:"id"`
	State            State                     `json:"state"`
	CandidateID      uuid.UUID                 `json:"candidate_id"`
	RoomID           *uuid.UUID                `json:"room_id,omitempty"`
	JobRole          entities.JobRole          `json:"job_role"`
	ExperienceLevel  entities.ExperienceLevel  `json:"experience_level"`
	Scheduled        bool                      `json:"scheduled"`
	Questions        []entities.Question       `json:"questions"`
	CurrentIndex     int                       `json:"current_index"`
	AnsweredIDs      []string                  `json:"answered_ids"`
	RemainingSeconds int64                     `json:"remaining_seconds"`
	MediaRoom        string                    `json:"media_room,omitempty"`
	MediaJoinURL     string                    `json:"media_join_url,omitempty"`
	MediaJoinToken   string                    `json:"media_join_token,omitempty"`
	DeviceError      string                    `json:"device_error,omitempty"`
	Result           *entities.InterviewResult `json:"result,omitempty"`
}

// snapshotLocked builds a Snapshot. Caller must hold s.mu.
func (s *Session) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		ID:               s.ID,
		State:            s.state,
		CandidateID:      s.candidateID,
		RoomID:           s.roomID,
		JobRole:          s.jobRole,
		ExperienceLevel:  s.experienceLevel,
		Scheduled:        s.scheduled,
		Questions:        append([]entities.Question(nil), s.questions...),
		CurrentIndex:     s.current,
		RemainingSeconds: s.remaining,
		Result:           s.result,
	}
	for id := range s.answers {
		snap.AnsweredIDs = append(snap.AnsweredIDs, id)
	}
	if s.capture != nil {
		snap.MediaRoom = s.capture.RoomName
		snap.MediaJoinURL = s.capture.JoinURL
		snap.MediaJoinToken = s.capture.JoinToken
	}
	if s.deviceErr != nil {
		snap.DeviceError = s.deviceErr.Error()
	}
	return snap
}
