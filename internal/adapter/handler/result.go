package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/prepwise/interview-assistant/errors"
	resultDTO "github.com/prepwise/interview-assistant/internal/adapter/dto/result"
	"github.com/prepwise/interview-assistant/internal/adapter/presenter"
	"github.com/prepwise/interview-assistant/internal/domain/entities"
	"github.com/prepwise/interview-assistant/internal/infrastructure/http/middleware"
	resultUsecase "github.com/prepwise/interview-assistant/internal/usecase/result"
)

// Result handles interview result HTTP requests
type Result struct {
	resultService resultUsecase.Service
	logger        *zap.Logger
}

// NewResultHandler creates a new result handler
func NewResultHandler(resultService resultUsecase.Service, logger *zap.Logger) *Result {
	return &Result{
		resultService: resultService,
		logger:        logger,
	}
}

// SubmitResult handles POST /interview-results
// @Summary      Submit an interview result
// @Description  Stores a finished interview's aggregate result; a referenced room is completed in the background
// @Tags         Results
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      result.SubmitResultRequest  true  "Result submission"
// @Success      201      {object}  result.ResultResponse  "Stored result"
// @Failure      404      {object}  map[string]interface{}  "Referenced room not found"
// @Router       /interview-results [post]
func (h *Result) SubmitResult(c echo.Context) error {
	var req resultDTO.SubmitResultRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	candidateID, ok := middleware.UserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	answers := make([]entities.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, presenter.ToAnswerEntity(a))
	}

	res, err := h.resultService.Submit(c.Request().Context(), resultUsecase.SubmitInput{
		CandidateID:     candidateID,
		InterviewKey:    req.InterviewID,
		JobRole:         entities.JobRole(req.JobRole),
		ExperienceLevel: entities.ExperienceLevel(req.ExperienceLevel),
		TotalScore:      req.TotalScore,
		Feedback:        req.Feedback,
		Strengths:       req.Strengths,
		Improvements:    req.Improvements,
		Answers:         answers,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToResultResponse(res))
}

// GetRoomResult handles GET /interview-results/interview/:id
// @Summary      Get a room's latest result
// @Description  Returns the most recent result for a room; when none exists yet the 404 carries the room's current status
// @Tags         Results
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Room ID (UUID)"
// @Success      200  {object}  result.ResultResponse  "Latest result"
// @Failure      404  {object}  map[string]interface{}  "No result yet, or room not found"
// @Router       /interview-results/interview/{id} [get]
func (h *Result) GetRoomResult(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("room ID must be a valid UUID"))
	}

	res, rm, err := h.resultService.LatestForRoom(c.Request().Context(), roomID)
	if err != nil {
		if rm != nil {
			// Room exists but has no results yet; surface its status so
			// clients can tell "pending" from "gone".
			return HandleError(h.logger, c, errors.ErrResultNotFound(rm.ID.String(), string(rm.Status)))
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToResultResponse(res))
}

// ListMyResults handles GET /interview-results/me
// @Summary      List my results
// @Description  Lists the authenticated candidate's results, newest first
// @Tags         Results
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Max results"
// @Param        offset  query     int  false  "Offset"
// @Success      200  {array}  result.ResultResponse  "Result listing"
// @Router       /interview-results/me [get]
func (h *Result) ListMyResults(c echo.Context) error {
	var req resultDTO.ListResultsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Limit < 1 {
		req.Limit = 20
	}

	candidateID, ok := middleware.UserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	results, err := h.resultService.ListForCandidate(c.Request().Context(), candidateID, req.Limit, req.Offset)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToResultListResponse(results))
}
