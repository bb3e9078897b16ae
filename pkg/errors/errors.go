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

	// Structural errors, fatal to a run
	ErrMountInvalid ErrorCode = "MOUNT_INVALID"
	ErrStateLoad    ErrorCode = "STATE_LOAD"
	ErrStateSave    ErrorCode = "STATE_SAVE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Catalog errors
	ErrManifestNotFound ErrorCode = "MANIFEST_NOT_FOUND"
	ErrManifestParse    ErrorCode = "MANIFEST_PARSE"
	ErrPackageInvalid   ErrorCode = "PACKAGE_INVALID"
	ErrPackageNotFound  ErrorCode = "PACKAGE_NOT_FOUND"

	// Link errors
	ErrLinkConflict  ErrorCode = "LINK_CONFLICT"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrSymlinkRemove ErrorCode = "SYMLINK_REMOVE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrDirRemove     ErrorCode = "DIR_REMOVE"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
)

// ToolkitError represents a structured error with code and details
type ToolkitError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ToolkitError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ToolkitError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a ToolkitError carrying the same code.
func (e *ToolkitError) Is(target error) bool {
	var targetErr *ToolkitError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ToolkitError with the given code and message
func New(code ErrorCode, message string) *ToolkitError {
	return &ToolkitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ToolkitError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ToolkitError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *ToolkitError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ToolkitError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *ToolkitError) WithDetail(key string, value interface{}) *ToolkitError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var tkErr *ToolkitError
	if errors.As(err, &tkErr) {
		return tkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ToolkitError
func GetErrorCode(err error) ErrorCode {
	var tkErr *ToolkitError
	if errors.As(err, &tkErr) {
		return tkErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ToolkitError
func GetErrorDetails(err error) map[string]interface{} {
	var tkErr *ToolkitError
	if errors.As(err, &tkErr) {
		return tkErr.Details
	}
	return nil
}
