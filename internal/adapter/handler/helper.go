package handler

import (
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/prepwise/interview-assistant/errors"
	"github.com/prepwise/interview-assistant/internal/domain/entities"
	"github.com/prepwise/interview-assistant/internal/infrastructure/external/evaluator"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleSuccess writes a standardized success response
func HandleSuccess(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging. Domain sentinels are
// mapped to their API errors; anything unrecognized becomes a 500.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	appErr, ok := asAppError(err)
	if !ok {
		appErr = errors.ErrInternal(err)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
		Details: appErr.Details,
	}

	return c.JSON(appErr.HTTPCode, body)
}

// asAppError normalizes an error into an AppError, translating domain
// sentinels that escaped the service layer unwrapped.
func asAppError(err error) (errors.AppError, bool) {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr, true
	}

	switch {
	case stdErrors.Is(err, entities.ErrRoomNotFound):
		return errors.ErrRoomNotFound(""), true
	case stdErrors.Is(err, entities.ErrResultNotFound):
		return errors.ErrResultNotFound("", ""), true
	case stdErrors.Is(err, entities.ErrSessionNotFound):
		return errors.ErrSessionNotFound(""), true
	case stdErrors.Is(err, entities.ErrQuestionNotFound):
		return errors.ErrQuestionNotFound(""), true
	case stdErrors.Is(err, entities.ErrUserNotFound):
		return errors.ErrInvalidArgument("candidate does not exist"), true
	case stdErrors.Is(err, entities.ErrAccessDenied):
		return errors.ErrRoomAccessDenied(""), true
	case stdErrors.Is(err, entities.ErrInvalidTransition):
		return errors.ErrInvalidTransition("", ""), true
	case stdErrors.Is(err, entities.ErrSessionNotRunning):
		return errors.ErrInvalidArgument("session is not in progress"), true
	case stdErrors.Is(err, entities.ErrInvalidToken), stdErrors.Is(err, entities.ErrInvalidRequest):
		return errors.ErrInvalidArgument(err.Error()), true
	}

	var gwErr *evaluator.GatewayError
	if stdErrors.As(err, &gwErr) {
		return errors.ErrGatewayFailed(gwErr.Operation, gwErr.Err), true
	}

	return errors.AppError{}, false
}

// bindAndValidate decodes and validates a request payload
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrValidationFailed(err)
	}
	return nil
}
