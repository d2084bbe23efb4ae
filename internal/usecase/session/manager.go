package session

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/prepwise/interview-assistant/internal/domain/entities"
	"github.com/prepwise/interview-assistant/internal/infrastructure/external/evaluator"
	"github.com/prepwise/interview-assistant/internal/infrastructure/external/livekit"
	"github.com/prepwise/interview-assistant/internal/metrics"
	"github.com/prepwise/interview-assistant/internal/usecase/result"
	"github.com/prepwise/interview-assistant/internal/usecase/room"
	"github.com/prepwise/interview-assistant/internal/usecase/schedule"
	"github.com/prepwise/interview-assistant/pkg/tasks"
)

const (
	// questionSeconds is the time allotted per question when deriving a
	// question count from a room's duration
	questionSeconds = 180

	// scheduledFallbackQuestions is used for scheduled sessions whose
	// duration is unknown
	scheduledFallbackQuestions = 5

	// practiceQuestions is the fixed count for unscheduled practice runs
	practiceQuestions = 5

	fallbackScoreFloor = 60
	fallbackScoreSpan  = 15
)

// Gateway supplies questions and scores answers. Satisfied by
// evaluator.Client.
type Gateway interface {
	FetchQuestions(ctx context.Context, role entities.JobRole, level entities.ExperienceLevel, count int) ([]entities.Question, error)
	EvaluateAnswer(ctx context.Context, question, answer string, role entities.JobRole, level entities.ExperienceLevel) (*evaluator.Evaluation, error)
}

// Transcriber converts a recorded answer into text
type Transcriber interface {
	TranscribeFromURL(ctx context.Context, audioURL string) (string, error)
}

// Recorder archives a session's recording reference
type Recorder interface {
	SaveRecordingManifest(ctx context.Context, sessionID, mediaRoom string) error
}

// ResultStore persists orchestrator-produced results. Satisfied by the
// result service.
type ResultStore interface {
	Save(ctx context.Context, result *entities.InterviewResult) error
}

// StartOptions configures one session start. Role and level fall back to
// the last configuration used when omitted; Scheduled is inferred from the
// presence of a room reference when nil.
type StartOptions struct {
	SessionID       *uuid.UUID
	CandidateID     uuid.UUID
	RoomID          *uuid.UUID
	RoomKey         string
	ScheduledFor    *time.Time
	JobRole         entities.JobRole
	ExperienceLevel entities.ExperienceLevel
	DurationMinutes int
	Scheduled       *bool
	Capture         *livekit.Capture
}

// Manager owns all live sessions. It drives the per-session lifecycle,
// question loading, answer scoring and the countdown for scheduled runs.
type Manager struct {
	gateway     Gateway
	captures    livekit.Provider
	transcriber Transcriber
	recorder    Recorder
	rooms       room.Service
	results     ResultStore
	runner      *tasks.Runner
	logger      *zap.Logger
	now         func() time.Time

	mu        sync.Mutex
	sessions  map[uuid.UUID]*Session
	lastRole  entities.JobRole
	lastLevel entities.ExperienceLevel
}

// NewManager creates a session manager. transcriber and recorder may be nil
// when the corresponding integrations are disabled.
func NewManager(
	gateway Gateway,
	captures livekit.Provider,
	transcriber Transcriber,
	recorder Recorder,
	rooms room.Service,
	results ResultStore,
	runner *tasks.Runner,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		gateway:     gateway,
		captures:    captures,
		transcriber: transcriber,
		recorder:    recorder,
		rooms:       rooms,
		results:     results,
		runner:      runner,
		logger:      logger,
		now:         time.Now,
		sessions:    make(map[uuid.UUID]*Session),
	}
}

// questionCount derives how many questions a session gets. Scheduled
// sessions get one question per three minutes of room duration, never fewer
// than one; unknown durations and practice runs use fixed counts.
func questionCount(scheduled bool, durationMinutes int) int {
	if !scheduled {
		return practiceQuestions
	}
	if durationMinutes <= 0 {
		return scheduledFallbackQuestions
	}
	count := durationMinutes * 60 / questionSeconds
	if count < 1 {
		count = 1
	}
	return count
}

// Start begins a session run. Passing an existing SessionID restarts that
// session; the restart supersedes any load still in flight from the
// previous start.
func (m *Manager) Start(ctx context.Context, opts StartOptions) (*Snapshot, error) {
	role, level := m.resolveConfig(opts.JobRole, opts.ExperienceLevel)

	sess, err := m.obtain(opts.SessionID)
	if err != nil {
		return nil, err
	}

	scheduled := opts.RoomID != nil || opts.RoomKey != ""
	if opts.Scheduled != nil {
		scheduled = *opts.Scheduled
	}

	sess.mu.Lock()
	if sess.cancelCountdown != nil {
		sess.cancelCountdown()
		sess.cancelCountdown = nil
	}
	if prev := sess.capture; prev != nil {
		sess.capture = nil
		m.releaseCapture(prev, sess.ID)
	}
	sess.gen++
	gen := sess.gen
	sess.resetLocked()
	sess.candidateID = opts.CandidateID
	sess.roomID = opts.RoomID
	sess.roomKey = opts.RoomKey
	sess.jobRole = role
	sess.experienceLevel = level
	sess.scheduled = scheduled
	sess.scheduledFor = opts.ScheduledFor
	sess.durationMinutes = opts.DurationMinutes
	sess.mu.Unlock()

	kind := "practice"
	if scheduled {
		kind = "scheduled"
	}
	metrics.SessionsStarted.WithLabelValues(kind).Inc()

	count := questionCount(scheduled, opts.DurationMinutes)

	var (
		questions []entities.Question
		capture   *livekit.Capture
		deviceErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		qs, err := m.gateway.FetchQuestions(gctx, role, level, count)
		if err != nil {
			metrics.GatewayFallbacks.WithLabelValues("fetch-questions").Inc()
			m.logger.Warn("question fetch failed, using local bank",
				zap.String("session_id", sess.ID.String()),
				zap.Error(err))
			qs = localQuestions(role, level, count)
		}
		questions = qs
		return nil
	})
	if opts.Capture != nil {
		capture = opts.Capture
	} else if m.captures != nil {
		g.Go(func() error {
			c, err := m.captures.Acquire(gctx, "interview-"+sess.ID.String(), opts.CandidateID.String())
			if err != nil {
				// Media is optional: the session proceeds without it and
				// surfaces the failure on the snapshot.
				deviceErr = err
				return nil
			}
			capture = c
			return nil
		})
	}
	_ = g.Wait()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.gen != gen {
		if capture != nil {
			m.releaseCapture(capture, sess.ID)
		}
		m.logger.Info("session start superseded by a newer start",
			zap.String("session_id", sess.ID.String()),
			zap.Uint64("generation", gen))
		return sess.snapshotLocked(), nil
	}

	sess.questions = questions
	sess.capture = capture
	sess.deviceErr = deviceErr
	sess.state = StateInProgress
	sess.startedAt = m.now()
	if deviceErr != nil {
		m.logger.Warn("media capture unavailable, continuing without recording",
			zap.String("session_id", sess.ID.String()),
			zap.Error(deviceErr))
	}

	if scheduled && sess.scheduledFor != nil {
		m.startCountdown(sess)
	}

	m.logger.Info("session started",
		zap.String("session_id", sess.ID.String()),
		zap.String("kind", kind),
		zap.String("job_role", string(role)),
		zap.Int("questions", len(questions)))

	return sess.snapshotLocked(), nil
}

// startCountdown wires the scheduled-session countdown. Caller must hold
// sess.mu.
func (m *Manager) startCountdown(sess *Session) {
	ctx, cancel := context.WithCancel(context.Background())
	sess.cancelCountdown = cancel

	scheduledFor := *sess.scheduledFor
	durationMinutes := sess.durationMinutes
	id := sess.ID

	go schedule.NewCountdown().Run(ctx, scheduledFor, durationMinutes,
		func(w schedule.Window) {
			sess.mu.Lock()
			sess.remaining = w.RemainingSeconds
			sess.mu.Unlock()
		},
		func() {
			m.logger.Info("session window ended, finishing",
				zap.String("session_id", id.String()))
			if _, err := m.finish(context.Background(), id, "countdown_expiry"); err != nil {
				m.logger.Warn("countdown finish failed",
					zap.String("session_id", id.String()),
					zap.Error(err))
			}
		})
}

// Get returns a snapshot of a session
func (m *Manager) Get(sessionID uuid.UUID) (*Snapshot, error) {
	sess, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshotLocked(), nil
}

// SubmitAnswer records and scores one answer. Submissions for the same
// question are serialized; last write wins. An audioURL, when given and
// transcription is configured, replaces the typed text with the transcript.
func (m *Manager) SubmitAnswer(ctx context.Context, sessionID uuid.UUID, questionID, text, audioURL string) (*entities.Answer, error) {
	sess, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.state != StateInProgress {
		sess.mu.Unlock()
		return nil, entities.ErrSessionNotRunning
	}
	var question *entities.Question
	for i := range sess.questions {
		if sess.questions[i].ID == questionID {
			question = &sess.questions[i]
			break
		}
	}
	if question == nil {
		sess.mu.Unlock()
		return nil, entities.ErrQuestionNotFound
	}
	role, level := sess.jobRole, sess.experienceLevel
	lock := sess.questionLock(questionID)
	sess.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	if audioURL != "" && m.transcriber != nil {
		transcript, err := m.transcriber.TranscribeFromURL(ctx, audioURL)
		if err != nil {
			m.logger.Warn("answer transcription failed, using typed text",
				zap.String("session_id", sessionID.String()),
				zap.String("question_id", questionID),
				zap.Error(err))
		} else if transcript != "" {
			text = transcript
		}
	}

	answer := entities.Answer{
		QuestionID: questionID,
		Question:   question.Text,
		Text:       strings.TrimSpace(text),
	}

	if entities.TooShort(text) {
		answer.Feedback = "Answer was too short to evaluate. Try to elaborate with specifics next time."
	} else {
		eval, err := m.gateway.EvaluateAnswer(ctx, question.Text, answer.Text, role, level)
		if err != nil {
			metrics.GatewayFallbacks.WithLabelValues("evaluate-answer").Inc()
			m.logger.Warn("answer evaluation failed, recording provisional score",
				zap.String("session_id", sessionID.String()),
				zap.String("question_id", questionID),
				zap.Error(err))
			answer.Score = fallbackScore()
			answer.Feedback = "The evaluation service was unavailable, so a provisional score was recorded for this answer."
		} else {
			answer.Score = eval.Score
			answer.Feedback = eval.Feedback
			answer.Strengths = eval.Strengths
			answer.Weaknesses = eval.Weaknesses
		}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.state != StateInProgress {
		return nil, entities.ErrSessionNotRunning
	}
	sess.answers[questionID] = answer
	return &answer, nil
}

// Next advances the question cursor, clamped to the last question
func (m *Manager) Next(sessionID uuid.UUID) (*Snapshot, error) {
	return m.move(sessionID, 1)
}

// Previous moves the question cursor back, clamped to the first question
func (m *Manager) Previous(sessionID uuid.UUID) (*Snapshot, error) {
	return m.move(sessionID, -1)
}

func (m *Manager) move(sessionID uuid.UUID, delta int) (*Snapshot, error) {
	sess, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.state != StateInProgress {
		return nil, entities.ErrSessionNotRunning
	}
	if len(sess.questions) > 0 {
		next := sess.current + delta
		if next < 0 {
			next = 0
		}
		if last := len(sess.questions) - 1; next > last {
			next = last
		}
		sess.current = next
	}
	return sess.snapshotLocked(), nil
}

// Finish closes a session: the capture is released exactly once, answers
// are aggregated into a result, and persistence plus room completion run in
// the background. Finishing an already complete session returns its
// snapshot unchanged.
func (m *Manager) Finish(ctx context.Context, sessionID uuid.UUID) (*Snapshot, error) {
	return m.finish(ctx, sessionID, "session_finish")
}

func (m *Manager) finish(ctx context.Context, sessionID uuid.UUID, trigger string) (*Snapshot, error) {
	sess, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.state == StateComplete {
		snap := sess.snapshotLocked()
		sess.mu.Unlock()
		return snap, nil
	}
	if sess.state != StateInProgress {
		sess.mu.Unlock()
		return nil, entities.ErrSessionNotRunning
	}
	if sess.cancelCountdown != nil {
		sess.cancelCountdown()
		sess.cancelCountdown = nil
	}
	capture := sess.capture
	sess.capture = nil
	sess.state = StateComplete
	sess.current = 0
	sess.remaining = 0

	questions := append([]entities.Question(nil), sess.questions...)
	answers := make(map[string]entities.Answer, len(sess.answers))
	for id, a := range sess.answers {
		answers[id] = a
	}
	meta := result.SessionMeta{
		CandidateID:     sess.candidateID,
		RoomID:          sess.roomID,
		JobRole:         sess.jobRole,
		ExperienceLevel: sess.experienceLevel,
	}
	roomKey := sess.roomKey
	sess.mu.Unlock()

	if capture != nil {
		if err := capture.Stop(ctx); err != nil {
			m.logger.Warn("capture release failed",
				zap.String("session_id", sessionID.String()),
				zap.Error(err))
		}
		if m.recorder != nil {
			mediaRoom := capture.RoomName
			m.runner.Go(context.Background(), "recording-manifest", func(ctx context.Context) error {
				return m.recorder.SaveRecordingManifest(ctx, sessionID.String(), mediaRoom)
			})
		}
	}

	if len(answers) > 0 {
		res := result.Aggregate(questions, answers, meta)
		sess.mu.Lock()
		sess.result = res
		sess.mu.Unlock()

		m.runner.Go(context.Background(), "result-persist", func(ctx context.Context) error {
			return m.results.Save(ctx, res)
		})
	}

	if roomKey != "" {
		m.runner.Go(context.Background(), "room-auto-complete", func(ctx context.Context) error {
			_, _, err := m.rooms.AutoComplete(ctx, roomKey, trigger)
			return err
		})
	}

	metrics.SessionsCompleted.Inc()
	m.logger.Info("session finished",
		zap.String("session_id", sessionID.String()),
		zap.String("trigger", trigger),
		zap.Int("answered", len(answers)))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshotLocked(), nil
}

// Close stops countdowns and releases captures for every live session.
// Called on shutdown.
func (m *Manager) Close(ctx context.Context) {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.mu.Unlock()

	for _, sess := range sessions {
		sess.mu.Lock()
		if sess.cancelCountdown != nil {
			sess.cancelCountdown()
			sess.cancelCountdown = nil
		}
		capture := sess.capture
		sess.capture = nil
		sess.mu.Unlock()

		if capture != nil {
			if err := capture.Stop(ctx); err != nil {
				m.logger.Warn("capture release failed on shutdown",
					zap.String("session_id", sess.ID.String()),
					zap.Error(err))
			}
		}
	}
}

// resolveConfig fills omitted role/level from the last configuration used,
// falling back to defaults, and remembers the resolved pair.
func (m *Manager) resolveConfig(role entities.JobRole, level entities.ExperienceLevel) (entities.JobRole, entities.ExperienceLevel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if role == "" {
		role = m.lastRole
	}
	if role == "" {
		role = entities.JobRoleSoftwareEngineer
	}
	if level == "" {
		level = m.lastLevel
	}
	if level == "" {
		level = entities.ExperienceLevelMid
	}
	m.lastRole, m.lastLevel = role, level
	return role, level
}

// obtain returns the session for restart, or registers a new one
func (m *Manager) obtain(sessionID *uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sessionID != nil {
		sess, ok := m.sessions[*sessionID]
		if !ok {
			return nil, entities.ErrSessionNotFound
		}
		return sess, nil
	}
	sess := newSession()
	m.sessions[sess.ID] = sess
	return sess, nil
}

func (m *Manager) lookup(sessionID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	return sess, nil
}

// releaseCapture tears a capture down in the background
func (m *Manager) releaseCapture(capture *livekit.Capture, sessionID uuid.UUID) {
	m.logger.Debug("releasing superseded capture",
		zap.String("session_id", sessionID.String()),
		zap.String("media_room", capture.RoomName))
	m.runner.Go(context.Background(), "capture-release", func(ctx context.Context) error {
		return capture.Stop(ctx)
	})
}

func fallbackScore() int {
	return fallbackScoreFloor + rand.Intn(fallbackScoreSpan)
}
