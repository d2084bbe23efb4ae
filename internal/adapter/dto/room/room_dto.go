package room

import (
	"time"

	"github.com/google/uuid"
)

// CreateRoomRequest is the payload for scheduling an interview room
type CreateRoomRequest struct {
	Title           string    `json:"title" validate:"required,max=255"`
	CandidateID     uuid.UUID `json:"candidate_id" validate:"required"`
	ScheduledFor    time.Time `json:"scheduled_for" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=5,max=240"`
	JobRole         string    `json:"job_role" validate:"required,job_role"`
	ExperienceLevel string    `json:"experience_level" validate:"required,experience_level"`
	Notes           string    `json:"notes" validate:"max=2000"`
}

// ListRoomsRequest carries pagination for room listings
type ListRoomsRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// RoomResponse is the API representation of an interview room
type RoomResponse struct {
	ID              uuid.UUID `json:"id"`
	Token           string    `json:"token"`
	Title           string    `json:"title"`
	OrganizerID     uuid.UUID `json:"organizer_id"`
	CandidateID     uuid.UUID `json:"candidate_id"`
	ScheduledFor    time.Time `json:"scheduled_for"`
	DurationMinutes int       `json:"duration_minutes"`
	JobRole         string    `json:"job_role"`
	ExperienceLevel string    `json:"experience_level"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// WindowResponse describes where a room sits relative to its join window
type WindowResponse struct {
	Phase            string `json:"phase"`
	RemainingSeconds int64  `json:"remaining_seconds"`
}

// RoomDetailResponse pairs a room with its current admission window
type RoomDetailResponse struct {
	Room   *RoomResponse   `json:"room"`
	Window *WindowResponse `json:"window"`
}

// ListRoomsResponse is a paginated room listing
type ListRoomsResponse struct {
	Rooms    []*RoomResponse `json:"rooms"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}
