package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prepwise/interview-assistant/internal/domain/entities"
	"github.com/prepwise/interview-assistant/internal/domain/repositories"
)

// roomRepository implements the RoomRepository interface
type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *gorm.DB) repositories.RoomRepository {
	return &roomRepository{db: db}
}

// Create creates a new room
func (r *roomRepository) Create(ctx context.Context, room *entities.InterviewRoom) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// FindByID retrieves a room by its persisted ID
func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.InterviewRoom, error) {
	var room entities.InterviewRoom
	err := r.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Candidate").
		Where("id = ?", id).
		First(&room).Error

	if err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByToken retrieves a room by the token embedded in its join link
func (r *roomRepository) FindByToken(ctx context.Context, token string) (*entities.InterviewRoom, error) {
	var room entities.InterviewRoom
	err := r.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Candidate").
		Where("token = ?", token).
		First(&room).Error

	if err != nil {
		return nil, err
	}
	return &room, nil
}

// UpdateStatus updates the room status
func (r *roomRepository) UpdateStatus(ctx context.Context, roomID uuid.UUID, status entities.RoomStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.InterviewRoom{}).
		Where("id = ?", roomID).
		Update("status", status).Error
}

// AppendNote appends an audit note to the room's free-text notes
func (r *roomRepository) AppendNote(ctx context.Context, roomID uuid.UUID, note string) error {
	return r.db.WithContext(ctx).
		Model(&entities.InterviewRoom{}).
		Where("id = ?", roomID).
		Update("notes", gorm.Expr("CASE WHEN notes = '' THEN ? ELSE notes || E'\\n' || ? END", note, note)).Error
}

// ListForUser retrieves rooms the user organizes or attends
func (r *roomRepository) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.InterviewRoom, int64, error) {
	var rooms []*entities.InterviewRoom
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entities.InterviewRoom{}).
		Where("organizer_id = ? OR candidate_id = ?", userID, userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Organizer").
		Preload("Candidate").
		Order("scheduled_for DESC").
		Limit(limit).
		Offset(offset).
		Find(&rooms).Error

	if err != nil {
		return nil, 0, err
	}
	return rooms, total, nil
}
