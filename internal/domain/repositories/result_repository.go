package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/prepwise/interview-assistant/internal/domain/entities"
)

// ResultRepository defines the interface for interview result data access.
// Results are append-only; there is no update or delete.
type ResultRepository interface {
	// Create persists a new result
	Create(ctx context.Context, result *entities.InterviewResult) error

	// FindLatestByRoomID retrieves the most recent result for a room
	FindLatestByRoomID(ctx context.Context, roomID uuid.UUID) (*entities.InterviewResult, error)

	// FindByCandidateID retrieves a candidate's results, newest first
	FindByCandidateID(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]*entities.InterviewResult, error)
}
