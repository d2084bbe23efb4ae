package room

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prepwise/interview-assistant/internal/domain/entities"
	"github.com/prepwise/interview-assistant/internal/infrastructure/cache"
)

// memRoomRepo is an in-memory room repository for service tests
type memRoomRepo struct {
	rooms map[uuid.UUID]*entities.InterviewRoom
}

func newMemRoomRepo() *memRoomRepo {
	return &memRoomRepo{rooms: make(map[uuid.UUID]*entities.InterviewRoom)}
}

func (r *memRoomRepo) Create(_ context.Context, room *entities.InterviewRoom) error {
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	copied := *room
	r.rooms[room.ID] = &copied
	return nil
}

func (r *memRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.InterviewRoom, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *room
	return &copied, nil
}

func (r *memRoomRepo) FindByToken(_ context.Context, token string) (*entities.InterviewRoom, error) {
	for _, room := range r.rooms {
		if room.Token == token {
			copied := *room
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRoomRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entities.RoomStatus) error {
	room, ok := r.rooms[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	room.Status = status
	return nil
}

func (r *memRoomRepo) AppendNote(_ context.Context, id uuid.UUID, note string) error {
	room, ok := r.rooms[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if room.Notes == "" {
		room.Notes = note
	} else {
		room.Notes += "\n" + note
	}
	return nil
}

func (r *memRoomRepo) ListForUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entities.InterviewRoom, int64, error) {
	var out []*entities.InterviewRoom
	for _, room := range r.rooms {
		if room.IsParty(userID) {
			copied := *room
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

// memUserRepo knows a fixed set of users
type memUserRepo struct {
	users map[uuid.UUID]*entities.User
}

func (r *memUserRepo) Create(_ context.Context, u *entities.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type roomFixture struct {
	service   *RoomService
	roomRepo  *memRoomRepo
	organizer uuid.UUID
	candidate uuid.UUID
}

func newRoomFixture(t *testing.T) *roomFixture {
	t.Helper()
	organizer := uuid.New()
	candidate := uuid.New()
	userRepo := &memUserRepo{users: map[uuid.UUID]*entities.User{
		organizer: {ID: organizer, Email: "organizer@example.com", Role: entities.UserRoleOrganizer},
		candidate: {ID: candidate, Email: "candidate@example.com", Role: entities.UserRoleCandidate},
	}}
	roomRepo := newMemRoomRepo()
	return &roomFixture{
		service:   NewRoomService(roomRepo, userRepo, cache.NewMemoryStore(), zap.NewNop()),
		roomRepo:  roomRepo,
		organizer: organizer,
		candidate: candidate,
	}
}

func (f *roomFixture) createRoom(t *testing.T) *entities.InterviewRoom {
	t.Helper()
	room, err := f.service.CreateRoom(context.Background(), CreateRoomInput{
		Title:           "Backend screen",
		OrganizerID:     f.organizer,
		CandidateID:     f.candidate,
		ScheduledFor:    time.Now().Add(24 * time.Hour),
		DurationMinutes: 45,
		JobRole:         entities.JobRoleSoftwareEngineer,
		ExperienceLevel: entities.ExperienceLevelMid,
	})
	require.NoError(t, err)
	return room
}

func TestCreateRoom_Validation(t *testing.T) {
	f := newRoomFixture(t)
	base := CreateRoomInput{
		Title:           "Screen",
		OrganizerID:     f.organizer,
		CandidateID:     f.candidate,
		ScheduledFor:    time.Now().Add(time.Hour),
		DurationMinutes: 30,
		JobRole:         entities.JobRoleSoftwareEngineer,
		ExperienceLevel: entities.ExperienceLevelMid,
	}

	t.Run("valid", func(t *testing.T) {
		room, err := f.service.CreateRoom(context.Background(), base)
		require.NoError(t, err)
		assert.Equal(t, entities.RoomStatusScheduled, room.Status)
		assert.NotEmpty(t, room.Token)
	})

	t.Run("missing title", func(t *testing.T) {
		input := base
		input.Title = ""
		_, err := f.service.CreateRoom(context.Background(), input)
		assert.ErrorIs(t, err, entities.ErrInvalidRequest)
	})

	t.Run("bad role", func(t *testing.T) {
		input := base
		input.JobRole = "astronaut"
		_, err := f.service.CreateRoom(context.Background(), input)
		assert.ErrorIs(t, err, entities.ErrInvalidRequest)
	})

	t.Run("unknown candidate", func(t *testing.T) {
		input := base
		input.CandidateID = uuid.New()
		_, err := f.service.CreateRoom(context.Background(), input)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestResolve_IDThenToken(t *testing.T) {
	f := newRoomFixture(t)
	room := f.createRoom(t)
	ctx := context.Background()

	byID, resolvedBy, err := f.service.Resolve(ctx, room.ID.String())
	require.NoError(t, err)
	assert.Equal(t, ResolvedByID, resolvedBy)
	assert.Equal(t, room.ID, byID.ID)

	byToken, resolvedBy, err := f.service.Resolve(ctx, room.Token)
	require.NoError(t, err)
	assert.Equal(t, ResolvedByToken, resolvedBy)
	assert.Equal(t, room.ID, byToken.ID)

	// Second token lookup is served through the cache and still resolves.
	again, resolvedBy, err := f.service.Resolve(ctx, room.Token)
	require.NoError(t, err)
	assert.Equal(t, ResolvedByToken, resolvedBy)
	assert.Equal(t, room.ID, again.ID)

	_, _, err = f.service.Resolve(ctx, "not-a-room")
	assert.ErrorIs(t, err, entities.ErrRoomNotFound)

	// A uuid-shaped string that matches no id is still tried as a token.
	_, _, err = f.service.Resolve(ctx, uuid.New().String())
	assert.ErrorIs(t, err, entities.ErrRoomNotFound)
}

func TestCancel_Guards(t *testing.T) {
	f := newRoomFixture(t)
	room := f.createRoom(t)
	ctx := context.Background()

	_, err := f.service.Cancel(ctx, room.ID, uuid.New())
	assert.ErrorIs(t, err, entities.ErrAccessDenied, "outsiders cannot cancel")

	cancelled, err := f.service.Cancel(ctx, room.ID, f.candidate)
	require.NoError(t, err)
	assert.Equal(t, entities.RoomStatusCancelled, cancelled.Status)
	assert.Contains(t, f.roomRepo.rooms[room.ID].Notes, "cancelled by")

	_, err = f.service.Cancel(ctx, room.ID, f.candidate)
	assert.ErrorIs(t, err, entities.ErrInvalidTransition, "cancel is not re-entrant")

	_, err = f.service.Complete(ctx, room.ID, f.organizer)
	assert.ErrorIs(t, err, entities.ErrInvalidTransition, "cancelled rooms never complete")
}

func TestComplete_Transition(t *testing.T) {
	f := newRoomFixture(t)
	room := f.createRoom(t)

	completed, err := f.service.Complete(context.Background(), room.ID, f.organizer)
	require.NoError(t, err)
	assert.Equal(t, entities.RoomStatusCompleted, completed.Status)

	_, err = f.service.Cancel(context.Background(), room.ID, f.organizer)
	assert.ErrorIs(t, err, entities.ErrInvalidTransition, "completed rooms never cancel")
}

func TestAutoComplete_Idempotent(t *testing.T) {
	f := newRoomFixture(t)
	room := f.createRoom(t)
	ctx := context.Background()

	first, changed, err := f.service.AutoComplete(ctx, room.ID.String(), "countdown_expiry")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, entities.RoomStatusCompleted, first.Status)

	// Racing triggers resolve by token or id; repeats are silent no-ops.
	second, changed, err := f.service.AutoComplete(ctx, room.Token, "result_submission")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, entities.RoomStatusCompleted, second.Status)

	_, _, err = f.service.AutoComplete(ctx, "missing-room", "countdown_expiry")
	assert.ErrorIs(t, err, entities.ErrRoomNotFound)
}

func TestAutoComplete_LeavesCancelledAlone(t *testing.T) {
	f := newRoomFixture(t)
	room := f.createRoom(t)
	ctx := context.Background()

	_, err := f.service.Cancel(ctx, room.ID, f.organizer)
	require.NoError(t, err)

	after, changed, err := f.service.AutoComplete(ctx, room.ID.String(), "countdown_expiry")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, entities.RoomStatusCancelled, after.Status, "expiry never resurrects a cancelled room")
}
