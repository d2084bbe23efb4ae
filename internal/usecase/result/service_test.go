package result

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prepwise/interview-assistant/internal/domain/entities"
	"github.com/prepwise/interview-assistant/internal/usecase/room"
	"github.com/prepwise/interview-assistant/pkg/tasks"
)

type memResultRepo struct {
	mu      sync.Mutex
	results []*entities.InterviewResult
}

func (r *memResultRepo) Create(_ context.Context, res *entities.InterviewResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	r.results = append(r.results, res)
	return nil
}

func (r *memResultRepo) FindLatestByRoomID(_ context.Context, roomID uuid.UUID) (*entities.InterviewResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.results) - 1; i >= 0; i-- {
		if r.results[i].RoomID != nil && *r.results[i].RoomID == roomID {
			return r.results[i], nil
		}
	}
	return nil, entities.ErrResultNotFound
}

func (r *memResultRepo) FindByCandidateID(_ context.Context, candidateID uuid.UUID, limit, offset int) ([]*entities.InterviewResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.InterviewResult
	for i := len(r.results) - 1; i >= 0; i-- {
		if r.results[i].CandidateID == candidateID {
			out = append(out, r.results[i])
		}
	}
	return out, nil
}

// stubRoomService serves one known room and records auto-completes
type stubRoomService struct {
	room     *entities.InterviewRoom
	mu       sync.Mutex
	triggers []string
}

func (s *stubRoomService) CreateRoom(context.Context, room.CreateRoomInput) (*entities.InterviewRoom, error) {
	return nil, entities.ErrInvalidRequest
}

func (s *stubRoomService) GetRoomByToken(_ context.Context, token string) (*entities.InterviewRoom, error) {
	if s.room != nil && s.room.Token == token {
		return s.room, nil
	}
	return nil, entities.ErrRoomNotFound
}

func (s *stubRoomService) ListRoomsForUser(context.Context, uuid.UUID, int, int) ([]*entities.InterviewRoom, int64, error) {
	return nil, 0, nil
}

func (s *stubRoomService) Resolve(_ context.Context, idOrToken string) (*entities.InterviewRoom, room.ResolvedBy, error) {
	if s.room == nil {
		return nil, "", entities.ErrRoomNotFound
	}
	if s.room.ID.String() == idOrToken {
		return s.room, room.ResolvedByID, nil
	}
	if s.room.Token == idOrToken {
		return s.room, room.ResolvedByToken, nil
	}
	return nil, "", entities.ErrRoomNotFound
}

func (s *stubRoomService) Cancel(context.Context, uuid.UUID, uuid.UUID) (*entities.InterviewRoom, error) {
	return nil, entities.ErrRoomNotFound
}

func (s *stubRoomService) Complete(context.Context, uuid.UUID, uuid.UUID) (*entities.InterviewRoom, error) {
	return nil, entities.ErrRoomNotFound
}

func (s *stubRoomService) AutoComplete(_ context.Context, _ string, trigger string) (*entities.InterviewRoom, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggers = append(s.triggers, trigger)
	return s.room, true, nil
}

// memRoomRepo serves the same room by id for LatestForRoom
type memRoomRepo struct {
	room *entities.InterviewRoom
}

func (r *memRoomRepo) Create(context.Context, *entities.InterviewRoom) error { return nil }

func (r *memRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.InterviewRoom, error) {
	if r.room != nil && r.room.ID == id {
		return r.room, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRoomRepo) FindByToken(context.Context, string) (*entities.InterviewRoom, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *memRoomRepo) UpdateStatus(context.Context, uuid.UUID, entities.RoomStatus) error {
	return nil
}

func (r *memRoomRepo) AppendNote(context.Context, uuid.UUID, string) error { return nil }

func (r *memRoomRepo) ListForUser(context.Context, uuid.UUID, int, int) ([]*entities.InterviewRoom, int64, error) {
	return nil, 0, nil
}

type resultFixture struct {
	service *ResultService
	repo    *memResultRepo
	rooms   *stubRoomService
	runner  *tasks.Runner
	room    *entities.InterviewRoom
}

func newResultFixture(t *testing.T) *resultFixture {
	t.Helper()
	rm := &entities.InterviewRoom{
		ID:     uuid.New(),
		Token:  uuid.New().String(),
		Status: entities.RoomStatusScheduled,
	}
	f := &resultFixture{
		repo:   &memResultRepo{},
		rooms:  &stubRoomService{room: rm},
		runner: tasks.NewRunner(zap.NewNop()),
		room:   rm,
	}
	f.service = NewResultService(f.repo, &memRoomRepo{room: rm}, f.rooms, f.runner, zap.NewNop())
	return f
}

func TestSubmit_Standalone(t *testing.T) {
	f := newResultFixture(t)

	res, err := f.service.Submit(context.Background(), SubmitInput{
		CandidateID:     uuid.New(),
		JobRole:         entities.JobRoleSoftwareEngineer,
		ExperienceLevel: entities.ExperienceLevelMid,
		TotalScore:      74,
		Strengths:       []string{"clarity", "clarity", "depth"},
	})

	require.NoError(t, err)
	assert.Nil(t, res.RoomID)
	assert.Equal(t, 74, res.TotalScore)
	assert.Equal(t, []string{"clarity", "depth"}, []string(res.Strengths))

	f.runner.Wait()
	assert.Empty(t, f.rooms.triggers, "no room reference, no auto-complete")
}

func TestSubmit_WithRoomReference(t *testing.T) {
	f := newResultFixture(t)

	res, err := f.service.Submit(context.Background(), SubmitInput{
		CandidateID:  uuid.New(),
		InterviewKey: f.room.Token,
		JobRole:      entities.JobRoleSoftwareEngineer,
		TotalScore:   81,
	})

	require.NoError(t, err)
	require.NotNil(t, res.RoomID)
	assert.Equal(t, f.room.ID, *res.RoomID)

	f.runner.Wait()
	assert.Equal(t, []string{"result_submission"}, f.rooms.triggers)
}

func TestSubmit_UnknownRoomRejected(t *testing.T) {
	f := newResultFixture(t)

	_, err := f.service.Submit(context.Background(), SubmitInput{
		CandidateID:  uuid.New(),
		InterviewKey: "no-such-room",
		TotalScore:   50,
	})

	assert.ErrorIs(t, err, entities.ErrRoomNotFound)
	assert.Empty(t, f.repo.results, "nothing stored when the reference is bad")
}

func TestSubmit_ClampsScore(t *testing.T) {
	f := newResultFixture(t)

	res, err := f.service.Submit(context.Background(), SubmitInput{CandidateID: uuid.New(), TotalScore: 140})
	require.NoError(t, err)
	assert.Equal(t, 100, res.TotalScore)

	res, err = f.service.Submit(context.Background(), SubmitInput{CandidateID: uuid.New(), TotalScore: -3})
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalScore)
}

func TestLatestForRoom(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	// No results yet: the room still comes back so callers can report its
	// status alongside the 404.
	res, rm, err := f.service.LatestForRoom(ctx, f.room.ID)
	assert.ErrorIs(t, err, entities.ErrResultNotFound)
	assert.Nil(t, res)
	require.NotNil(t, rm)
	assert.Equal(t, entities.RoomStatusScheduled, rm.Status)

	_, err = f.service.Submit(ctx, SubmitInput{CandidateID: uuid.New(), InterviewKey: f.room.Token, TotalScore: 66})
	require.NoError(t, err)
	_, err = f.service.Submit(ctx, SubmitInput{CandidateID: uuid.New(), InterviewKey: f.room.Token, TotalScore: 88})
	require.NoError(t, err)

	res, _, err = f.service.LatestForRoom(ctx, f.room.ID)
	require.NoError(t, err)
	assert.Equal(t, 88, res.TotalScore, "newest result wins")

	_, _, err = f.service.LatestForRoom(ctx, uuid.New())
	assert.Error(t, err)

	f.runner.Wait()
}
