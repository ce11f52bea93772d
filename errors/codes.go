package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Argument errors
const (
	// ErrCodeInvalidArgument indicates a combinator received an argument outside its domain.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeInvalidConfig indicates settings failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Source errors
const (
	// ErrCodeSourceConsumed indicates a single-pass source was opened a second time.
	ErrCodeSourceConsumed ErrorCode = "SOURCE_CONSUMED"
	// ErrCodeSourceFailed indicates the source itself returned an error while producing elements.
	ErrCodeSourceFailed ErrorCode = "SOURCE_FAILED"
)

// Evaluation errors
const (
	// ErrCodeStageFailed indicates a caller-supplied stage function returned an error.
	ErrCodeStageFailed ErrorCode = "STAGE_FAILED"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var callerCodes = map[ErrorCode]bool{
	ErrCodeInvalidArgument: true,
	ErrCodeInvalidConfig:   true,
	ErrCodeSourceConsumed:  true,
}

// IsCallerCode returns true if the code reports a misuse by the caller
// rather than a failure raised while evaluating.
func IsCallerCode(code ErrorCode) bool {
	return callerCodes[code]
}
