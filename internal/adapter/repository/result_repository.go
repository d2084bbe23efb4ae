package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prepwise/interview-assistant/internal/domain/entities"
	"github.com/prepwise/interview-assistant/internal/domain/repositories"
)

// resultRepository implements the ResultRepository interface
type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *gorm.DB) repositories.ResultRepository {
	return &resultRepository{db: db}
}

// Create persists a new result
func (r *resultRepository) Create(ctx context.Context, result *entities.InterviewResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

// FindLatestByRoomID retrieves the most recent result for a room
func (r *resultRepository) FindLatestByRoomID(ctx context.Context, roomID uuid.UUID) (*entities.InterviewResult, error) {
	var result entities.InterviewResult
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		First(&result).Error

	if err != nil {
		return nil, err
	}
	return &result, nil
}

// FindByCandidateID retrieves a candidate's results, newest first
func (r *resultRepository) FindByCandidateID(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]*entities.InterviewResult, error) {
	var results []*entities.InterviewResult
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error

	if err != nil {
		return nil, err
	}
	return results, nil
}
