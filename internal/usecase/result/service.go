package result

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/prepwise/interview-assistant/internal/domain/entities"
	"github.com/prepwise/interview-assistant/internal/domain/repositories"
	"github.com/prepwise/interview-assistant/internal/usecase/room"
	"github.com/prepwise/interview-assistant/pkg/tasks"
)

// SubmitInput is a result submitted through the API rather than produced by
// the in-process orchestrator. InterviewKey, when set, is a room id or join
// token that ties the result to a scheduled room.
type SubmitInput struct {
	CandidateID     uuid.UUID
	InterviewKey    string
	JobRole         entities.JobRole
	ExperienceLevel entities.ExperienceLevel
	TotalScore      int
	Feedback        string
	Strengths       []string
	Improvements    []string
	Answers         []entities.Answer
}

// Service manages interview result persistence and retrieval
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*entities.InterviewResult, error)
	Save(ctx context.Context, result *entities.InterviewResult) error
	LatestForRoom(ctx context.Context, roomID uuid.UUID) (*entities.InterviewResult, *entities.InterviewRoom, error)
	ListForCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]*entities.InterviewResult, error)
}

// ResultService implements Service on the result repository, resolving room
// references through the room service.
type ResultService struct {
	resultRepo repositories.ResultRepository
	roomRepo   repositories.RoomRepository
	rooms      room.Service
	runner     *tasks.Runner
	logger     *zap.Logger
}

// NewResultService creates a new result service
func NewResultService(
	resultRepo repositories.ResultRepository,
	roomRepo repositories.RoomRepository,
	rooms room.Service,
	runner *tasks.Runner,
	logger *zap.Logger,
) *ResultService {
	return &ResultService{
		resultRepo: resultRepo,
		roomRepo:   roomRepo,
		rooms:      rooms,
		runner:     runner,
		logger:     logger,
	}
}

// Submit stores an externally submitted result. When the input names a room,
// resolution failure rejects the whole submission; on success the room is
// closed out in the background so a lost update never blocks the caller.
func (s *ResultService) Submit(ctx context.Context, input SubmitInput) (*entities.InterviewResult, error) {
	res := &entities.InterviewResult{
		CandidateID:     input.CandidateID,
		JobRole:         input.JobRole,
		ExperienceLevel: input.ExperienceLevel,
		TotalScore:      clampScore(input.TotalScore),
		Feedback:        input.Feedback,
		Strengths:       datatypes.NewJSONSlice(dedupe(input.Strengths, entities.MaxResultTags)),
		Improvements:    datatypes.NewJSONSlice(dedupe(input.Improvements, entities.MaxResultTags)),
		Answers:         datatypes.NewJSONSlice(input.Answers),
	}

	if input.InterviewKey != "" {
		rm, _, err := s.rooms.Resolve(ctx, input.InterviewKey)
		if err != nil {
			return nil, err
		}
		res.RoomID = &rm.ID
	}

	if err := s.resultRepo.Create(ctx, res); err != nil {
		return nil, err
	}

	if input.InterviewKey != "" {
		key := input.InterviewKey
		s.runner.Go(context.Background(), "room-auto-complete", func(ctx context.Context) error {
			_, _, err := s.rooms.AutoComplete(ctx, key, "result_submission")
			return err
		})
	}

	s.logger.Info("interview result stored",
		zap.String("result_id", res.ID.String()),
		zap.String("candidate_id", res.CandidateID.String()),
		zap.Int("total_score", res.TotalScore))

	return res, nil
}

// Save persists an orchestrator-produced result as-is.
func (s *ResultService) Save(ctx context.Context, result *entities.InterviewResult) error {
	return s.resultRepo.Create(ctx, result)
}

// LatestForRoom returns the most recent result for a room. When the room
// exists but has no results yet the room is still returned alongside
// ErrResultNotFound so callers can report its current status.
func (s *ResultService) LatestForRoom(ctx context.Context, roomID uuid.UUID) (*entities.InterviewResult, *entities.InterviewRoom, error) {
	rm, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, entities.ErrRoomNotFound
		}
		return nil, nil, err
	}

	res, err := s.resultRepo.FindLatestByRoomID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rm, entities.ErrResultNotFound
		}
		return nil, rm, err
	}
	return res, rm, nil
}

// ListForCandidate returns a candidate's results, newest first.
func (s *ResultService) ListForCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]*entities.InterviewResult, error) {
	return s.resultRepo.FindByCandidateID(ctx, candidateID, limit, offset)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

var _ Service = (*ResultService)(nil)
