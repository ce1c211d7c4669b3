package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPermission   ErrorCode = "PERMISSION"
	ErrUnavailable  ErrorCode = "UNAVAILABLE"
	ErrCancelled    ErrorCode = "CANCELLED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// State errors
	ErrStateLoad  ErrorCode = "STATE_LOAD"
	ErrStateWrite ErrorCode = "STATE_WRITE"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"

	// External command errors
	ErrCommandFailed ErrorCode = "COMMAND_FAILED"

	// Timer errors
	ErrNoTimer    ErrorCode = "NO_TIMER"
	ErrNotRunning ErrorCode = "NOT_RUNNING"
	ErrNotPaused  ErrorCode = "NOT_PAUSED"
)

// PolkaError represents a structured error with code and details
type PolkaError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PolkaError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PolkaError) Unwrap() error {
	return e.Wrapped
}

// Is matches any PolkaError carrying the same code
func (e *PolkaError) Is(target error) bool {
	var targetErr *PolkaError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

func build(code ErrorCode, message string, wrapped error) *PolkaError {
	return &PolkaError{Code: code, Message: message, Details: map[string]interface{}{}, Wrapped: wrapped}
}

// New creates an error with a code and message
func New(code ErrorCode, message string) *PolkaError {
	return build(code, message, nil)
}

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PolkaError {
	return build(code, fmt.Sprintf(format, args...), nil)
}

// Wrap attaches a code and message to err. A nil err gives a nil
// *PolkaError, so callers must check err before returning the result as
// an error.
func Wrap(err error, code ErrorCode, message string) *PolkaError {
	if err == nil {
		return nil
	}
	return build(code, message, err)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PolkaError {
	if err == nil {
		return nil
	}
	return build(code, fmt.Sprintf(format, args...), err)
}

// WithDetail adds a detail to the error
func (e *PolkaError) WithDetail(key string, value interface{}) *PolkaError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var polkaErr *PolkaError
	if errors.As(err, &polkaErr) {
		return polkaErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PolkaError
func GetErrorCode(err error) ErrorCode {
	var polkaErr *PolkaError
	if errors.As(err, &polkaErr) {
		return polkaErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PolkaError
func GetErrorDetails(err error) map[string]interface{} {
	var polkaErr *PolkaError
	if errors.As(err, &polkaErr) {
		return polkaErr.Details
	}
	return nil
}

// exitCodes lists the codes that do not exit 1
var exitCodes = map[ErrorCode]int{
	ErrCancelled: 0,
}

// ExitCode maps an error to the process exit status. Cancellation is a
// normal abort path and exits 0; every other failure exits 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := exitCodes[GetErrorCode(err)]; ok {
		return code
	}
	return 1
}
