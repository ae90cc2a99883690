package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "test message: %s", "value")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_CONFIG: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeTick, cause, "tick failed")

	if err.Code != ErrCodeTick {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeTick)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

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
		{"matching code", New(ErrCodeInvalidConfig, "x"), ErrCodeInvalidConfig, true},
		{"non-matching code", New(ErrCodeInvalidConfig, "x"), ErrCodeTick, false},
		{"wrapped error", Wrap(ErrCodeTick, New(ErrCodeInvalidConfig, "inner"), "outer"), ErrCodeTick, true},
		{"non-Error type", errors.New("plain"), ErrCodeInvalidConfig, false},
		{"nil error", nil, ErrCodeInvalidConfig, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeSurfaceUnavailable, "x")); got != ErrCodeSurfaceUnavailable {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeSurfaceUnavailable)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidConfig, "bad weight")); got != "bad weight" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestIsRecoverable(t *testing.T) {
	if !IsRecoverable(New(ErrCodeSurfaceUnavailable, "zero size")) {
		t.Error("surface errors should be recoverable")
	}
	if IsRecoverable(New(ErrCodeTick, "boom")) {
		t.Error("tick errors should not be recoverable")
	}
}
