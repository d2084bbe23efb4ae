package errors

// ErrorCode identifies the failure class carried by an AppError
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_PERMISSION_DENIED
	ErrorCode_UNAUTHENTICATED
	ErrorCode_VALIDATION_FAILED
	ErrorCode_INVALID_TRANSITION
	ErrorCode_GATEWAY_FAILED
	ErrorCode_SESSION_NOT_FOUND
	ErrorCode_HTTP_OK
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:            "UNKNOWN",
	ErrorCode_INTERNAL:           "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:   "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:          "NOT_FOUND",
	ErrorCode_PERMISSION_DENIED:  "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:    "UNAUTHENTICATED",
	ErrorCode_VALIDATION_FAILED:  "VALIDATION_FAILED",
	ErrorCode_INVALID_TRANSITION: "INVALID_TRANSITION",
	ErrorCode_GATEWAY_FAILED:     "GATEWAY_FAILED",
	ErrorCode_SESSION_NOT_FOUND:  "SESSION_NOT_FOUND",
	ErrorCode_HTTP_OK:            "OK",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
