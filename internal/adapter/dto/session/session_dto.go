package session

import "github.com/google/uuid"

// StartSessionRequest begins or restarts an interview session.
// SessionID restarts an existing session. InterviewID, when set, ties the
// session to a scheduled room and may be a room id or a join token.
type StartSessionRequest struct {
	SessionID       *uuid.UUID `json:"session_id,omitempty"`
	InterviewID     string     `json:"interview_id,omitempty"`
	JobRole         string     `json:"job_role" validate:"omitempty,job_role"`
	ExperienceLevel string     `json:"experience_level" validate:"omitempty,experience_level"`
	DurationMinutes int        `json:"duration_minutes" validate:"omitempty,min=1,max=240"`
	Scheduled       *bool      `json:"scheduled,omitempty"`
}

// SubmitAnswerRequest records an answer for one question. AudioURL, when
// given, points at a recording to transcribe in place of the typed text.
type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Text       string `json:"text"`
	AudioURL   string `json:"audio_url" validate:"omitempty,url"`
}
