package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prepwise/interview-assistant/internal/domain/entities"
	"github.com/prepwise/interview-assistant/internal/domain/repositories"
	"github.com/prepwise/interview-assistant/internal/infrastructure/cache"
	"github.com/prepwise/interview-assistant/internal/metrics"
)

// tokenCacheTTL bounds how long a token->id mapping is served from cache
const tokenCacheTTL = 10 * time.Minute

// RoomService handles room lifecycle business logic
type RoomService struct {
	roomRepo repositories.RoomRepository
	userRepo repositories.UserRepository
	cache    cache.Store
	logger   *zap.Logger
}

// NewRoomService creates a new room service
func NewRoomService(
	roomRepo repositories.RoomRepository,
	userRepo repositories.UserRepository,
	store cache.Store,
	logger *zap.Logger,
) *RoomService {
	return &RoomService{
		roomRepo: roomRepo,
		userRepo: userRepo,
		cache:    store,
		logger:   logger,
	}
}

// CreateRoomInput represents input for creating a room
type CreateRoomInput struct {
	Title           string
	OrganizerID     uuid.UUID
	CandidateID     uuid.UUID
	ScheduledFor    time.Time
	DurationMinutes int
	JobRole         entities.JobRole
	ExperienceLevel entities.ExperienceLevel
	Notes           string
}

// CreateRoom creates a new scheduled interview room
func (s *RoomService) CreateRoom(ctx context.Context, input CreateRoomInput) (*entities.InterviewRoom, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", entities.ErrInvalidRequest)
	}
	if input.ScheduledFor.IsZero() {
		return nil, fmt.Errorf("%w: scheduled time is required", entities.ErrInvalidRequest)
	}
	if input.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", entities.ErrInvalidRequest)
	}
	if !entities.ValidJobRole(input.JobRole) {
		return nil, fmt.Errorf("%w: unknown job role %q", entities.ErrInvalidRequest, input.JobRole)
	}
	if !entities.ValidExperienceLevel(input.ExperienceLevel) {
		return nil, fmt.Errorf("%w: unknown experience level %q", entities.ErrInvalidRequest, input.ExperienceLevel)
	}

	if _, err := s.userRepo.FindByID(ctx, input.CandidateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: candidate", entities.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to look up candidate: %w", err)
	}

	room := &entities.InterviewRoom{
		Token:           uuid.New().String(),
		Title:           input.Title,
		OrganizerID:     input.OrganizerID,
		CandidateID:     input.CandidateID,
		ScheduledFor:    input.ScheduledFor,
		DurationMinutes: input.DurationMinutes,
		JobRole:         input.JobRole,
		ExperienceLevel: input.ExperienceLevel,
		Status:          entities.RoomStatusScheduled,
		Notes:           input.Notes,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return room, nil
}

// GetRoomByToken retrieves a room by its join-link token
func (s *RoomService) GetRoomByToken(ctx context.Context, token string) (*entities.InterviewRoom, error) {
	room, err := s.roomRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

// ListRoomsForUser retrieves rooms the user is a party to
func (s *RoomService) ListRoomsForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.InterviewRoom, int64, error) {
	rooms, total, err := s.roomRepo.ListForUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, total, nil
}

// Resolve looks a room up by both of its aliases in a fixed order: the
// persisted id first, then the link token. The token->id mapping is cached.
func (s *RoomService) Resolve(ctx context.Context, idOrToken string) (*entities.InterviewRoom, ResolvedBy, error) {
	if id, err := uuid.Parse(idOrToken); err == nil {
		room, err := s.roomRepo.FindByID(ctx, id)
		if err == nil {
			return room, ResolvedByID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("failed to resolve room by id: %w", err)
		}
		// Fall through: a uuid-shaped token is still a valid token.
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, "room_token:"+idOrToken); ok {
			if id, err := uuid.Parse(cached); err == nil {
				if room, err := s.roomRepo.FindByID(ctx, id); err == nil {
					return room, ResolvedByToken, nil
				}
			}
		}
	}

	room, err := s.roomRepo.FindByToken(ctx, idOrToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", entities.ErrRoomNotFound
		}
		return nil, "", fmt.Errorf("failed to resolve room by token: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, "room_token:"+idOrToken, room.ID.String(), tokenCacheTTL); err != nil {
			s.logger.Warn("failed to cache room token", zap.Error(err))
		}
	}

	return room, ResolvedByToken, nil
}

// Cancel transitions a scheduled room to cancelled. Only a party to the room
// may cancel, and only from the scheduled status.
func (s *RoomService) Cancel(ctx context.Context, roomID, callerID uuid.UUID) (*entities.InterviewRoom, error) {
	return s.transition(ctx, roomID, callerID, "cancelled", func(r *entities.InterviewRoom) error {
		return r.Cancel()
	})
}

// Complete explicitly transitions a scheduled room to completed
func (s *RoomService) Complete(ctx context.Context, roomID, callerID uuid.UUID) (*entities.InterviewRoom, error) {
	return s.transition(ctx, roomID, callerID, "completed", func(r *entities.InterviewRoom) error {
		return r.Complete()
	})
}

func (s *RoomService) transition(ctx context.Context, roomID, callerID uuid.UUID, verb string, apply func(*entities.InterviewRoom) error) (*entities.InterviewRoom, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if !room.IsParty(callerID) {
		return nil, entities.ErrAccessDenied
	}

	if err := apply(room); err != nil {
		return nil, err
	}

	if err := s.roomRepo.UpdateStatus(ctx, room.ID, room.Status); err != nil {
		return nil, fmt.Errorf("failed to update room status: %w", err)
	}

	note := fmt.Sprintf("%s by %s at %s", verb, callerID, time.Now().UTC().Format(time.RFC3339))
	if err := s.roomRepo.AppendNote(ctx, room.ID, note); err != nil {
		s.logger.Warn("failed to append room note", zap.String("room_id", room.ID.String()), zap.Error(err))
	}

	return room, nil
}

// AutoComplete idempotently transitions a room to completed. Rooms already
// in a terminal status are a no-op success so that racing expiry triggers
// (client countdowns, explicit completion, result submission) never fail.
func (s *RoomService) AutoComplete(ctx context.Context, idOrToken, trigger string) (*entities.InterviewRoom, bool, error) {
	room, resolvedBy, err := s.Resolve(ctx, idOrToken)
	if err != nil {
		return nil, false, err
	}

	if !room.AutoComplete() {
		return room, false, nil
	}

	if err := s.roomRepo.UpdateStatus(ctx, room.ID, entities.RoomStatusCompleted); err != nil {
		return nil, false, fmt.Errorf("failed to update room status: %w", err)
	}

	metrics.RoomAutoCompletes.WithLabelValues(trigger).Inc()
	s.logger.Info("room auto-completed",
		zap.String("room_id", room.ID.String()),
		zap.String("resolved_by", string(resolvedBy)),
		zap.String("trigger", trigger),
	)

	note := fmt.Sprintf("auto-completed (%s) at %s", trigger, time.Now().UTC().Format(time.RFC3339))
	if err := s.roomRepo.AppendNote(ctx, room.ID, note); err != nil {
		s.logger.Warn("failed to append room note", zap.String("room_id", room.ID.String()), zap.Error(err))
	}

	return room, true, nil
}

// Ensure RoomService implements Service interface
var _ Service = (*RoomService)(nil)
