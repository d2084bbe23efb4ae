package entities

import "errors"

// Domain errors
var (
	// Room errors
	ErrRoomNotFound      = errors.New("room not found")
	ErrInvalidTransition = errors.New("invalid room status transition")
	ErrAccessDenied      = errors.New("caller is not a party to the room")

	// Result errors
	ErrResultNotFound = errors.New("interview result not found")

	// Session errors
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionNotRunning = errors.New("session is not in progress")
	ErrQuestionNotFound  = errors.New("question not found in session")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Generic errors
	ErrInvalidToken   = errors.New("invalid token")
	ErrInvalidRequest = errors.New("invalid request")
)
