package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/prepwise/interview-assistant/errors"
	roomDTO "github.com/prepwise/interview-assistant/internal/adapter/dto/room"
	"github.com/prepwise/interview-assistant/internal/adapter/presenter"
	"github.com/prepwise/interview-assistant/internal/domain/entities"
	"github.com/prepwise/interview-assistant/internal/infrastructure/http/middleware"
	roomUsecase "github.com/prepwise/interview-assistant/internal/usecase/room"
	"github.com/prepwise/interview-assistant/internal/usecase/schedule"
)

// Room handles interview room HTTP requests
type Room struct {
	roomService roomUsecase.Service
	logger      *zap.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService roomUsecase.Service, logger *zap.Logger) *Room {
	return &Room{
		roomService: roomService,
		logger:      logger,
	}
}

// CreateRoom handles POST /rooms
// @Summary      Schedule an interview room
// @Description  Creates a new scheduled interview room and issues its join token
// @Tags         Rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      room.CreateRoomRequest  true  "Room creation request"
// @Success      201      {object}  room.RoomResponse  "Room created"
// @Failure      400      {object}  map[string]interface{}  "Invalid request or validation failed"
// @Failure      401      {object}  map[string]interface{}  "User not authenticated"
// @Router       /rooms [post]
func (h *Room) CreateRoom(c echo.Context) error {
	var req roomDTO.CreateRoomRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	organizerID, ok := middleware.UserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	created, err := h.roomService.CreateRoom(c.Request().Context(), roomUsecase.CreateRoomInput{
		Title:           req.Title,
		OrganizerID:     organizerID,
		CandidateID:     req.CandidateID,
		ScheduledFor:    req.ScheduledFor,
		DurationMinutes: req.DurationMinutes,
		JobRole:         entities.JobRole(req.JobRole),
		ExperienceLevel: entities.ExperienceLevel(req.ExperienceLevel),
		Notes:           req.Notes,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToRoomResponse(created))
}

// ListRooms handles GET /rooms
// @Summary      List my interview rooms
// @Description  Lists rooms the authenticated user organizes or attends
// @Tags         Rooms
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200  {object}  room.ListRoomsResponse  "Room listing"
// @Router       /rooms [get]
func (h *Room) ListRooms(c echo.Context) error {
	var req roomDTO.ListRoomsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	rooms, total, err := h.roomService.ListRoomsForUser(c.Request().Context(), userID, req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToRoomListResponse(rooms, total, req.Page, req.PageSize))
}

// GetRoom handles GET /rooms/:id
// @Summary      Get room details
// @Description  Gets a room by persisted id or join token, with its current admission window
// @Tags         Rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Room ID or join token"
// @Success      200  {object}  room.RoomDetailResponse  "Room details"
// @Failure      404  {object}  map[string]interface{}  "Room not found"
// @Router       /rooms/{id} [get]
func (h *Room) GetRoom(c echo.Context) error {
	rm, resolvedBy, err := h.roomService.Resolve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.logger.Debug("room resolved",
		zap.String("room_id", rm.ID.String()),
		zap.String("resolved_by", string(resolvedBy)))

	window := schedule.Evaluate(time.Now(), rm.ScheduledFor, rm.DurationMinutes)

	return HandleSuccess(h.logger, c, http.StatusOK, &roomDTO.RoomDetailResponse{
		Room:   presenter.ToRoomResponse(rm),
		Window: presenter.ToWindowResponse(window),
	})
}

// CancelRoom handles PUT /rooms/:id/cancel
// @Summary      Cancel a scheduled room
// @Description  Transitions a scheduled room to cancelled; terminal rooms are rejected
// @Tags         Rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Room ID (UUID)"
// @Success      200  {object}  room.RoomResponse  "Cancelled room"
// @Failure      400  {object}  map[string]interface{}  "Room already terminal"
// @Router       /rooms/{id}/cancel [put]
func (h *Room) CancelRoom(c echo.Context) error {
	return h.transition(c, h.roomService.Cancel)
}

// CompleteRoom handles PUT /rooms/:id/complete
// @Summary      Complete a scheduled room
// @Description  Transitions a scheduled room to completed; terminal rooms are rejected
// @Tags         Rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Room ID (UUID)"
// @Success      200  {object}  room.RoomResponse  "Completed room"
// @Failure      400  {object}  map[string]interface{}  "Room already terminal"
// @Router       /rooms/{id}/complete [put]
func (h *Room) CompleteRoom(c echo.Context) error {
	return h.transition(c, h.roomService.Complete)
}

// AutoCompleteRoom handles PUT /rooms/auto-complete/:id
// @Summary      Auto-complete an expired room
// @Description  Marks a room completed once its window expires; already-terminal rooms are left untouched
// @Tags         Rooms
// @Produce      json
// @Param        id   path      string  true  "Room ID or join token"
// @Success      200  {object}  room.RoomResponse  "Room after auto-completion"
// @Failure      404  {object}  map[string]interface{}  "Room not found"
// @Router       /rooms/auto-complete/{id} [put]
func (h *Room) AutoCompleteRoom(c echo.Context) error {
	rm, changed, err := h.roomService.AutoComplete(c.Request().Context(), c.Param("id"), "countdown_expiry")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if !changed {
		h.logger.Debug("auto-complete no-op",
			zap.String("room_id", rm.ID.String()),
			zap.String("status", string(rm.Status)))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToRoomResponse(rm))
}

func (h *Room) transition(c echo.Context, apply func(ctx context.Context, roomID, callerID uuid.UUID) (*entities.InterviewRoom, error)) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("room ID must be a valid UUID"))
	}

	callerID, ok := middleware.UserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	rm, err := apply(c.Request().Context(), roomID, callerID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToRoomResponse(rm))
}
