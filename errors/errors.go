package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type returned by pipelines.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Constructors ---

// InvalidArgument reports an argument outside the domain of a combinator.
func InvalidArgument(param, reason string) *AppError {
	details := make(map[string]any)
	if param != "" {
		details["param"] = param
	}
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid argument: %s", reason),
		Details: details,
	}
}

// InvalidConfig reports settings that failed validation.
func InvalidConfig(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: message}
}

// SourceConsumed reports a second pass over a single-pass source.
func SourceConsumed() *AppError {
	return &AppError{
		Code:    ErrCodeSourceConsumed,
		Message: "single-pass source has already been consumed",
	}
}

// SourceFailed wraps an error raised by the source while producing elements.
func SourceFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeSourceFailed, Message: "source failed to produce the next element",
		Cause: cause,
	}
}

// StageFailed wraps an error returned by the stage at index of the given kind.
func StageFailed(index int, kind string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeStageFailed, Message: fmt.Sprintf("%s stage %d failed", kind, index),
		Details: map[string]any{"stage": index, "kind": kind},
		Cause:   cause,
	}
}

// Internal wraps an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: "an unexpected error occurred", Cause: cause}
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
