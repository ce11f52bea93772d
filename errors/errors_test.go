package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeInternal, "boom")
	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if err.Message != "boom" {
		t.Errorf("expected message 'boom', got %q", err.Message)
	}
}

func TestAppError_InvalidArgument_Success(t *testing.T) {
	err := InvalidArgument("n", "must be >= 0")
	if err.Code != ErrCodeInvalidArgument {
		t.Errorf("expected INVALID_ARGUMENT, got %s", err.Code)
	}
	if err.Details["param"] != "n" {
		t.Errorf("expected param=n, got %v", err.Details["param"])
	}
	if !strings.Contains(err.Message, "must be >= 0") {
		t.Errorf("expected reason in message, got %q", err.Message)
	}
}

func TestAppError_InvalidArgument_EmptyParam(t *testing.T) {
	err := InvalidArgument("", "bad")
	if _, ok := err.Details["param"]; ok {
		t.Error("expected no 'param' key in details when param is empty")
	}
}

func TestAppError_StageFailed_Success(t *testing.T) {
	cause := fmt.Errorf("parse failure")
	err := StageFailed(2, "map", cause)
	if err.Code != ErrCodeStageFailed {
		t.Errorf("expected STAGE_FAILED, got %s", err.Code)
	}
	if err.Details["stage"] != 2 || err.Details["kind"] != "map" {
		t.Errorf("unexpected details %v", err.Details)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should reach the stage function's error")
	}
}

func TestAppError_SourceFailed_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk gone")
	err := SourceFailed(cause)
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
	if !strings.Contains(err.Error(), "disk gone") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}

	err2 := SourceConsumed()
	if err2.Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause")
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := InvalidArgument("n", "negative").WithDetails(map[string]any{
		"value": -1,
	})
	if err.Details["value"] != -1 {
		t.Errorf("expected value=-1 in details")
	}
	if err.Details["param"] != "n" {
		t.Error("expected original details to be preserved")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details == nil {
		t.Fatal("expected Details map to be initialized")
	}
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Internal(nil).WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set via WithCause")
	}
}

func TestAppError_Error_Format(t *testing.T) {
	s := SourceConsumed().Error()
	if !strings.Contains(s, "SOURCE_CONSUMED") {
		t.Errorf("expected error string to contain code, got %q", s)
	}
	if !strings.Contains(s, "already been consumed") {
		t.Errorf("expected error string to contain message, got %q", s)
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		caller bool
	}{
		{"InvalidArgument", InvalidArgument("n", "x"), ErrCodeInvalidArgument, true},
		{"InvalidConfig", InvalidConfig("x"), ErrCodeInvalidConfig, true},
		{"SourceConsumed", SourceConsumed(), ErrCodeSourceConsumed, true},
		{"SourceFailed", SourceFailed(nil), ErrCodeSourceFailed, false},
		{"StageFailed", StageFailed(0, "filter", nil), ErrCodeStageFailed, false},
		{"Internal", Internal(nil), ErrCodeInternal, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected %s, got %s", tc.code, tc.err.Code)
			}
			if IsCallerCode(tc.err.Code) != tc.caller {
				t.Errorf("IsCallerCode(%s) = %v, want %v", tc.code, !tc.caller, tc.caller)
			}
		})
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", SourceConsumed())
	if !IsAppError(wrapped) {
		t.Fatal("expected wrapped AppError to be detected")
	}
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != ErrCodeSourceConsumed {
		t.Errorf("AsAppError = %v, %v", appErr, ok)
	}
	if !HasCode(wrapped, ErrCodeSourceConsumed) {
		t.Error("HasCode should see through wrapping")
	}
	if HasCode(wrapped, ErrCodeStageFailed) {
		t.Error("HasCode should not match a different code")
	}
}

func TestAsAppError_Plain(t *testing.T) {
	if IsAppError(fmt.Errorf("plain")) {
		t.Error("plain error should not be an AppError")
	}
	if _, ok := AsAppError(nil); ok {
		t.Error("nil should not convert")
	}
}
