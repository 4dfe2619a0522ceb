package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidParameter, "radius must be >= 0, got %d", -1)

	if err.Code != ErrCodeInvalidParameter {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidParameter)
	}
	if !strings.Contains(err.Error(), "INVALID_PARAMETER") {
		t.Errorf("Error() should contain the code: %s", err.Error())
	}
	if !strings.Contains(err.Error(), "got -1") {
		t.Errorf("Error() should contain the formatted message: %s", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("underlying failure")
	err := Wrap(ErrCodeAlgorithmFailure, cause, "community detection failed")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeUnknownNode, "focus %q not in graph", "x")

	if !Is(err, ErrCodeUnknownNode) {
		t.Error("Is() should match the error's code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeUnknownNode) {
		t.Error("Is() should not match plain errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "missing")); got != ErrCodeNotFound {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %s, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidParameter, "in radius must be >= 0")
	if got := UserMessage(err); got != "in radius must be >= 0" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}

func TestValidateRadius(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"zero", 0, false},
		{"max", 5, false},
		{"negative", -1, true},
		{"over max", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRadius("out radius", tt.value, 5)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRadius(%d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidParameter) {
				t.Errorf("ValidateRadius error code = %s, want INVALID_PARAMETER", GetCode(err))
			}
		})
	}
}

func TestValidateGraphName(t *testing.T) {
	valid := []string{"default", "large_default_graph", "imports.v2"}
	for _, name := range valid {
		if err := ValidateGraphName(name); err != nil {
			t.Errorf("ValidateGraphName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "../etc/passwd", "a//b", "a\\b", strings.Repeat("x", 300)}
	for _, name := range invalid {
		if err := ValidateGraphName(name); err == nil {
			t.Errorf("ValidateGraphName(%q) = nil, want error", name)
		}
	}
}
