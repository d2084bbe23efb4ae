package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MaxResultTags caps the deduplicated strengths/improvements on a result
const MaxResultTags = 5

// InterviewResult is the persisted aggregate of one finished session.
// Results are append-only: a new session creates a new record rather than
// mutating an earlier one.
type InterviewResult struct {
	ID              uuid.UUID                    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID     uuid.UUID                    `gorm:"type:uuid;not null;index" json:"candidate_id"`
	RoomID          *uuid.UUID                   `gorm:"type:uuid;index" json:"room_id,omitempty"`
	JobRole         JobRole                      `gorm:"type:varchar(50);not null" json:"job_role"`
	ExperienceLevel ExperienceLevel              `gorm:"type:varchar(20);not null" json:"experience_level"`
	TotalScore      int                          `gorm:"not null;check:total_score >= 0 AND total_score <= 100" json:"total_score"`
	Feedback        string                       `gorm:"type:text" json:"feedback"`
	Strengths       datatypes.JSONSlice[string]  `gorm:"type:jsonb" json:"strengths"`
	Improvements    datatypes.JSONSlice[string]  `gorm:"type:jsonb" json:"improvements"`
	Answers         datatypes.JSONSlice[Answer]  `gorm:"type:jsonb" json:"answers"`
	CreatedAt       time.Time                    `gorm:"default:now();index" json:"created_at"`
}

// TableName specifies the table name for InterviewResult
func (InterviewResult) TableName() string {
	return "interview_results"
}
