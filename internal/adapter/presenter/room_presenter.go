package presenter

import (
	roomDTO "github.com/prepwise/interview-assistant/internal/adapter/dto/room"
	"github.com/prepwise/interview-assistant/internal/domain/entities"
	"github.com/prepwise/interview-assistant/internal/usecase/schedule"
)

// ToRoomResponse converts a room entity to its API representation
func ToRoomResponse(r *entities.InterviewRoom) *roomDTO.RoomResponse {
	if r == nil {
		return nil
	}
	return &roomDTO.RoomResponse{
		ID:              r.ID,
		Token:           r.Token,
		Title:           r.Title,
		OrganizerID:     r.OrganizerID,
		CandidateID:     r.CandidateID,
		ScheduledFor:    r.ScheduledFor,
		DurationMinutes: r.DurationMinutes,
		JobRole:         string(r.JobRole),
		ExperienceLevel: string(r.ExperienceLevel),
		Status:          string(r.Status),
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
	}
}

// ToWindowResponse converts an admission window to its API representation
func ToWindowResponse(w schedule.Window) *roomDTO.WindowResponse {
	return &roomDTO.WindowResponse{
		Phase:            string(w.Phase),
		RemainingSeconds: w.RemainingSeconds,
	}
}

// ToRoomListResponse converts a page of rooms to its API representation
func ToRoomListResponse(rooms []*entities.InterviewRoom, total int64, page, pageSize int) *roomDTO.ListRoomsResponse {
	out := make([]*roomDTO.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, ToRoomResponse(r))
	}
	return &roomDTO.ListRoomsResponse{
		Rooms:    out,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
