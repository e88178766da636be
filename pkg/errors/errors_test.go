package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidFrame, "test message: %s", "value")

	if err.Code != ErrCodeInvalidFrame {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFrame)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_FRAME: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidManifest, cause, "failed to load")

	if err.Code != ErrCodeInvalidManifest {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidManifest)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidFrame, "test"),
			code:     ErrCodeInvalidFrame,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidFrame, "test"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "wrapped structured error",
			err:      Wrap(ErrCodeUnsupportedMedia, errors.New("inner"), "outer"),
			code:     ErrCodeUnsupportedMedia,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsInfeasible(t *testing.T) {
	if !IsInfeasible(New(ErrCodeInfeasibleFloor, "lower bound rejected")) {
		t.Error("IsInfeasible should be true for INFEASIBLE_LOWER_BOUND")
	}
	if !IsInfeasible(New(ErrCodeInfeasibleCeil, "upper bound accepted")) {
		t.Error("IsInfeasible should be true for INFEASIBLE_UPPER_BOUND")
	}
	if IsInfeasible(New(ErrCodeUndefinedAspect, "zero height")) {
		t.Error("IsInfeasible should be false for element defects")
	}
	if IsInfeasible(errors.New("plain")) {
		t.Error("IsInfeasible should be false for plain errors")
	}
}

func TestGetCode(t *testing.T) {
	if code := GetCode(New(ErrCodeNotFound, "missing")); code != ErrCodeNotFound {
		t.Errorf("GetCode = %v, want %v", code, ErrCodeNotFound)
	}
	if code := GetCode(errors.New("plain")); code != "" {
		t.Errorf("GetCode for plain error = %v, want empty", code)
	}
}

func TestUserMessage(t *testing.T) {
	if msg := UserMessage(New(ErrCodeInvalidFrame, "width must be positive")); msg != "width must be positive" {
		t.Errorf("UserMessage = %q", msg)
	}
	if msg := UserMessage(errors.New("plain error")); msg != "plain error" {
		t.Errorf("UserMessage for plain error = %q", msg)
	}
}
