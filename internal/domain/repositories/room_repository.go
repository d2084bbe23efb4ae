package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/prepwise/interview-assistant/internal/domain/entities"
)

// RoomRepository defines the interface for interview room data access
type RoomRepository interface {
	// Create creates a new room
	Create(ctx context.Context, room *entities.InterviewRoom) error

	// FindByID retrieves a room by its persisted ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.InterviewRoom, error)

	// FindByToken retrieves a room by the opaque token embedded in its link
	FindByToken(ctx context.Context, token string) (*entities.InterviewRoom, error)

	// UpdateStatus updates the room status
	UpdateStatus(ctx context.Context, roomID uuid.UUID, status entities.RoomStatus) error

	// AppendNote appends an audit note to the room
	AppendNote(ctx context.Context, roomID uuid.UUID, note string) error

	// ListForUser retrieves rooms the user organizes or attends
	ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.InterviewRoom, int64, error)
}
