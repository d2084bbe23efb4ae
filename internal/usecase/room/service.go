package room

import (
	"context"

	"github.com/google/uuid"
	"github.com/prepwise/interview-assistant/internal/domain/entities"
)

// ResolvedBy tags which alias a room lookup matched
type ResolvedBy string

const (
	ResolvedByID    ResolvedBy = "id"
	ResolvedByToken ResolvedBy = "token"
)

// Service defines the interface for the room use case
type Service interface {
	// CreateRoom creates a new scheduled interview room
	CreateRoom(ctx context.Context, input CreateRoomInput) (*entities.InterviewRoom, error)

	// GetRoomByToken retrieves a room by its join-link token
	GetRoomByToken(ctx context.Context, token string) (*entities.InterviewRoom, error)

	// ListRoomsForUser retrieves rooms the user is a party to
	ListRoomsForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.InterviewRoom, int64, error)

	// Resolve looks a room up by persisted id first, then by token
	Resolve(ctx context.Context, idOrToken string) (*entities.InterviewRoom, ResolvedBy, error)

	// Cancel transitions a scheduled room to cancelled
	Cancel(ctx context.Context, roomID, callerID uuid.UUID) (*entities.InterviewRoom, error)

	// Complete explicitly transitions a scheduled room to completed
	Complete(ctx context.Context, roomID, callerID uuid.UUID) (*entities.InterviewRoom, error)

	// AutoComplete idempotently transitions a room to completed on expiry.
	// Returns whether the status actually changed.
	AutoComplete(ctx context.Context, idOrToken, trigger string) (*entities.InterviewRoom, bool, error)
}
