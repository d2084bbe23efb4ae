package entities

import (
	"time"

	"github.com/google/uuid"
)

// JobRole represents the role an interview is conducted for
type JobRole string

const (
	JobRoleSoftwareEngineer JobRole = "software_engineer"
	JobRoleProductManager   JobRole = "product_manager"
	JobRoleDataAnalyst      JobRole = "data_analyst"
	JobRoleUXDesigner       JobRole = "ux_designer"
)

// ExperienceLevel represents the seniority the interview targets
type ExperienceLevel string

const (
	ExperienceLevelJunior ExperienceLevel = "junior"
	ExperienceLevelMid    ExperienceLevel = "mid"
	ExperienceLevelSenior ExperienceLevel = "senior"
)

// RoomStatus represents the current status of an interview room
type RoomStatus string

const (
	RoomStatusScheduled RoomStatus = "scheduled"
	RoomStatusCompleted RoomStatus = "completed"
	RoomStatusCancelled RoomStatus = "cancelled"
)

// ValidJobRole reports whether the given role is a known job role
func ValidJobRole(r JobRole) bool {
	switch r {
	case JobRoleSoftwareEngineer, JobRoleProductManager, JobRoleDataAnalyst, JobRoleUXDesigner:
		return true
	}
	return false
}

// ValidExperienceLevel reports whether the given level is a known experience level
func ValidExperienceLevel(l ExperienceLevel) bool {
	switch l {
	case ExperienceLevelJunior, ExperienceLevelMid, ExperienceLevelSenior:
		return true
	}
	return false
}

// InterviewRoom represents a scheduled interview slot. The room is addressable
// both by its persisted ID and by the opaque Token embedded in the join link.
// Rooms are never deleted; notes serve as the audit trail.
type InterviewRoom struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Token           string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`
	Title           string          `gorm:"type:varchar(255);not null" json:"title"`
	OrganizerID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"organizer_id"`
	Organizer       *User           `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	CandidateID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"candidate_id"`
	Candidate       *User           `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
	ScheduledFor    time.Time       `gorm:"not null;index" json:"scheduled_for"`
	DurationMinutes int             `gorm:"not null;default:30" json:"duration_minutes"`
	JobRole         JobRole         `gorm:"type:varchar(50);not null" json:"job_role"`
	ExperienceLevel ExperienceLevel `gorm:"type:varchar(20);not null" json:"experience_level"`
	Status          RoomStatus      `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Notes           string          `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for InterviewRoom
func (InterviewRoom) TableName() string {
	return "interview_rooms"
}

// IsTerminal reports whether the room reached a terminal status.
// Terminal rooms never revert to scheduled.
func (r *InterviewRoom) IsTerminal() bool {
	return r.Status == RoomStatusCompleted || r.Status == RoomStatusCancelled
}

// EndTime returns the instant the scheduled window closes
func (r *InterviewRoom) EndTime() time.Time {
	return r.ScheduledFor.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// Cancel transitions the room to cancelled. Only allowed from scheduled.
func (r *InterviewRoom) Cancel() error {
	if r.Status != RoomStatusScheduled {
		return ErrInvalidTransition
	}
	r.Status = RoomStatusCancelled
	return nil
}

// Complete transitions the room to completed. Only allowed from scheduled.
func (r *InterviewRoom) Complete() error {
	if r.Status != RoomStatusScheduled {
		return ErrInvalidTransition
	}
	r.Status = RoomStatusCompleted
	return nil
}

// AutoComplete transitions the room to completed if it is still scheduled.
// Returns true if the status changed. Already-terminal rooms are a no-op
// success so racing expiry triggers never surface an error.
func (r *InterviewRoom) AutoComplete() bool {
	if r.Status != RoomStatusScheduled {
		return false
	}
	r.Status = RoomStatusCompleted
	return true
}

// IsParty reports whether the user is the organizer or candidate on the room
func (r *InterviewRoom) IsParty(userID uuid.UUID) bool {
	return r.OrganizerID == userID || r.CandidateID == userID
}
