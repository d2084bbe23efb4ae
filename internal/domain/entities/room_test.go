package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRoom_Transitions(t *testing.T) {
	t.Run("cancel from scheduled", func(t *testing.T) {
		r := &InterviewRoom{Status: RoomStatusScheduled}
		assert.NoError(t, r.Cancel())
		assert.Equal(t, RoomStatusCancelled, r.Status)
	})

	t.Run("complete from scheduled", func(t *testing.T) {
		r := &InterviewRoom{Status: RoomStatusScheduled}
		assert.NoError(t, r.Complete())
		assert.Equal(t, RoomStatusCompleted, r.Status)
	})

	t.Run("terminal rooms reject transitions", func(t *testing.T) {
		for _, status := range []RoomStatus{RoomStatusCompleted, RoomStatusCancelled} {
			r := &InterviewRoom{Status: status}
			assert.ErrorIs(t, r.Cancel(), ErrInvalidTransition)
			assert.ErrorIs(t, r.Complete(), ErrInvalidTransition)
			assert.Equal(t, status, r.Status, "status must not move out of a terminal state")
		}
	})
}

func TestRoom_AutoComplete(t *testing.T) {
	r := &InterviewRoom{Status: RoomStatusScheduled}

	assert.True(t, r.AutoComplete())
	assert.Equal(t, RoomStatusCompleted, r.Status)

	// Racing expiry triggers fire more than once; repeats are silent no-ops.
	assert.False(t, r.AutoComplete())
	assert.Equal(t, RoomStatusCompleted, r.Status)

	cancelled := &InterviewRoom{Status: RoomStatusCancelled}
	assert.False(t, cancelled.AutoComplete())
	assert.Equal(t, RoomStatusCancelled, cancelled.Status)
}

func TestRoom_IsParty(t *testing.T) {
	organizer := uuid.New()
	candidate := uuid.New()
	r := &InterviewRoom{OrganizerID: organizer, CandidateID: candidate}

	assert.True(t, r.IsParty(organizer))
	assert.True(t, r.IsParty(candidate))
	assert.False(t, r.IsParty(uuid.New()))
}

func TestTooShort(t *testing.T) {
	assert.True(t, TooShort(""))
	assert.True(t, TooShort("short ans"))
	assert.True(t, TooShort("   padded    "), "whitespace does not count toward length")
	assert.True(t, TooShort("exactly 10"))
	assert.False(t, TooShort("this is a long enough answer"))

	// Multi-byte scripts are measured in characters, not bytes.
	assert.True(t, TooShort("面接の回答です"))
	assert.False(t, TooShort("これは十分に長い面接の回答です"))
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidJobRole(JobRoleSoftwareEngineer))
	assert.False(t, ValidJobRole("astronaut"))
	assert.True(t, ValidExperienceLevel(ExperienceLevelSenior))
	assert.False(t, ValidExperienceLevel("intern"))
}
