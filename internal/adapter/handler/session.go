package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/prepwise/interview-assistant/errors"
	sessionDTO "github.com/prepwise/interview-assistant/internal/adapter/dto/session"
	"github.com/prepwise/interview-assistant/internal/domain/entities"
	"github.com/prepwise/interview-assistant/internal/infrastructure/http/middleware"
	roomUsecase "github.com/prepwise/interview-assistant/internal/usecase/room"
	"github.com/prepwise/interview-assistant/internal/usecase/session"
)

// Session handles interview session HTTP requests
type Session struct {
	manager     *session.Manager
	roomService roomUsecase.Service
	logger      *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(manager *session.Manager, roomService roomUsecase.Service, logger *zap.Logger) *Session {
	return &Session{
		manager:     manager,
		roomService: roomService,
		logger:      logger,
	}
}

// StartSession handles POST /sessions
// @Summary      Start or restart an interview session
// @Description  Begins a session; with an interview id it runs against the scheduled room, otherwise it is a practice run
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      session.StartSessionRequest  true  "Session start request"
// @Success      201      {object}  map[string]interface{}  "Session snapshot"
// @Failure      400      {object}  map[string]interface{}  "Invalid request"
// @Failure      404      {object}  map[string]interface{}  "Room or session not found"
// @Router       /sessions [post]
func (h *Session) StartSession(c echo.Context) error {
	var req sessionDTO.StartSessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	candidateID, ok := middleware.UserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	opts := session.StartOptions{
		SessionID:       req.SessionID,
		CandidateID:     candidateID,
		JobRole:         entities.JobRole(req.JobRole),
		ExperienceLevel: entities.ExperienceLevel(req.ExperienceLevel),
		DurationMinutes: req.DurationMinutes,
		Scheduled:       req.Scheduled,
	}

	if req.InterviewID != "" {
		rm, _, err := h.roomService.Resolve(c.Request().Context(), req.InterviewID)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		if !rm.IsParty(candidateID) {
			return HandleError(h.logger, c, errors.ErrRoomAccessDenied(rm.ID.String()))
		}
		window := rm.ScheduledFor
		opts.RoomID = &rm.ID
		opts.RoomKey = rm.ID.String()
		opts.ScheduledFor = &window
		if opts.DurationMinutes == 0 {
			opts.DurationMinutes = rm.DurationMinutes
		}
		if opts.JobRole == "" {
			opts.JobRole = rm.JobRole
		}
		if opts.ExperienceLevel == "" {
			opts.ExperienceLevel = rm.ExperienceLevel
		}
	}

	snap, err := h.manager.Start(c.Request().Context(), opts)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, snap)
}

// GetSession handles GET /sessions/:id
// @Summary      Get session state
// @Tags         Sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  map[string]interface{}  "Session snapshot"
// @Failure      404  {object}  map[string]interface{}  "Session not found"
// @Router       /sessions/{id} [get]
func (h *Session) GetSession(c echo.Context) error {
	id, err := h.sessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	snap, err := h.manager.Get(id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, snap)
}

// SubmitAnswer handles POST /sessions/:id/answers
// @Summary      Submit an answer
// @Description  Records and scores an answer for one question of a running session
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Session ID (UUID)"
// @Param        request  body      session.SubmitAnswerRequest  true  "Answer submission"
// @Success      200      {object}  map[string]interface{}  "Scored answer"
// @Failure      404      {object}  map[string]interface{}  "Session or question not found"
// @Router       /sessions/{id}/answers [post]
func (h *Session) SubmitAnswer(c echo.Context) error {
	id, err := h.sessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req sessionDTO.SubmitAnswerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	answer, err := h.manager.SubmitAnswer(c.Request().Context(), id, req.QuestionID, req.Text, req.AudioURL)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, answer)
}

// NextQuestion handles PUT /sessions/:id/next
// @Summary      Advance to the next question
// @Tags         Sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  map[string]interface{}  "Session snapshot"
// @Router       /sessions/{id}/next [put]
func (h *Session) NextQuestion(c echo.Context) error {
	return h.move(c, h.manager.Next)
}

// PreviousQuestion handles PUT /sessions/:id/previous
// @Summary      Return to the previous question
// @Tags         Sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  map[string]interface{}  "Session snapshot"
// @Router       /sessions/{id}/previous [put]
func (h *Session) PreviousQuestion(c echo.Context) error {
	return h.move(c, h.manager.Previous)
}

// FinishSession handles POST /sessions/:id/finish
// @Summary      Finish a session
// @Description  Releases media, aggregates the answers into a result and closes out the room
// @Tags         Sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  map[string]interface{}  "Final session snapshot"
// @Router       /sessions/{id}/finish [post]
func (h *Session) FinishSession(c echo.Context) error {
	id, err := h.sessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	start := time.Now()
	snap, err := h.manager.Finish(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.logger.Debug("session finish handled",
		zap.String("session_id", id.String()),
		zap.Duration("elapsed", time.Since(start)))

	return HandleSuccess(h.logger, c, http.StatusOK, snap)
}

func (h *Session) move(c echo.Context, apply func(sessionID uuid.UUID) (*session.Snapshot, error)) error {
	id, err := h.sessionID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	snap, err := apply(id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, snap)
}

func (h *Session) sessionID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("session ID must be a valid UUID")
	}
	return id, nil
}
