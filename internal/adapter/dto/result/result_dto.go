package result

import (
	"time"

	"github.com/google/uuid"
)

// AnswerPayload is one answered question inside a result
type AnswerPayload struct {
	QuestionID string   `json:"question_id"`
	Question   string   `json:"question"`
	Text       string   `json:"text"`
	Score      int      `json:"score" validate:"min=0,max=100"`
	Feedback   string   `json:"feedback,omitempty"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
	Skipped    bool     `json:"skipped,omitempty"`
}

// SubmitResultRequest is an externally submitted interview result.
// InterviewID is optional and may be either a room id or a join token.
type SubmitResultRequest struct {
	InterviewID     string          `json:"interview_id"`
	JobRole         string          `json:"job_role" validate:"required,job_role"`
	ExperienceLevel string          `json:"experience_level" validate:"required,experience_level"`
	TotalScore      int             `json:"total_score" validate:"min=0,max=100"`
	Feedback        string          `json:"feedback"`
	Strengths       []string        `json:"strengths"`
	Improvements    []string        `json:"improvements"`
	Answers         []AnswerPayload `json:"answers" validate:"dive"`
}

// ResultResponse is the API representation of a stored result
type ResultResponse struct {
	ID              uuid.UUID       `json:"id"`
	CandidateID     uuid.UUID       `json:"candidate_id"`
	RoomID          *uuid.UUID      `json:"room_id,omitempty"`
	JobRole         string          `json:"job_role"`
	ExperienceLevel string          `json:"experience_level"`
	TotalScore      int             `json:"total_score"`
	Feedback        string          `json:"feedback"`
	Strengths       []string        `json:"strengths"`
	Improvements    []string        `json:"improvements"`
	Answers         []AnswerPayload `json:"answers"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ListResultsRequest carries pagination for result listings
type ListResultsRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}
