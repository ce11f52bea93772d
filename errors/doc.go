// Package errors provides the structured error type used across seqpipe.
//
// Every failure surfaced by a pipeline terminal operation is an [AppError]
// carrying a machine-readable [ErrorCode]. Caller-supplied stage functions
// that fail are wrapped, never replaced, so errors.Is and errors.As from the
// standard library still reach the caller's original error through Unwrap.
package errors
