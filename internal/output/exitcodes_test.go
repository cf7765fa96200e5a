package output

import (
	"errors"
	"testing"
)

func TestExitCodeConstants(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitUserError", ExitUserError, 1},
		{"ExitSystemError", ExitSystemError, 2},
		{"ExitConflict", ExitConflict, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	tests := []struct {
		name         string
		err          *ExitError
		wantCode     int
		wantMessage  string
		wantErrorStr string
	}{
		{
			name:         "user error",
			err:          NewUserError("unknown marker \"bogus\""),
			wantCode:     ExitUserError,
			wantMessage:  "unknown marker \"bogus\"",
			wantErrorStr: "unknown marker \"bogus\"",
		},
		{
			name:         "system error",
			err:          NewSystemError("failed to write file"),
			wantCode:     ExitSystemError,
			wantMessage:  "failed to write file",
			wantErrorStr: "failed to write file",
		},
		{
			name:         "conflict error",
			err:          NewConflictError("settings file already exists"),
			wantCode:     ExitConflict,
			wantMessage:  "settings file already exists",
			wantErrorStr: "settings file already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMessage)
			}
			if tt.err.Error() != tt.wantErrorStr {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantErrorStr)
			}
		})
	}
}

func TestExitErrorWrapping(t *testing.T) {
	underlying := errors.New("permission denied")
	err := NewSystemErrorWithCause("failed to read vault", underlying)

	if err.Code != ExitSystemError {
		t.Errorf("Code = %d, want %d", err.Code, ExitSystemError)
	}

	// Test Unwrap
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}

	// Test that Error() includes the message
	if err.Error() != "failed to read vault" {
		t.Errorf("Error() = %q, want %q", err.Error(), "failed to read vault")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: ExitSuccess,
		},
		{
			name:     "ExitError user",
			err:      NewUserError("bad input"),
			expected: ExitUserError,
		},
		{
			name:     "ExitError system",
			err:      NewSystemError("rename failed"),
			expected: ExitSystemError,
		},
		{
			name:     "ExitError conflict",
			err:      NewConflictError("duplicate"),
			expected: ExitConflict,
		},
		{
			name:     "regular error defaults to user error",
			err:      errors.New("some error"),
			expected: ExitUserError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetExitCode(tt.err)
			if got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestNewUserErrorf(t *testing.T) {
	sentinel := errors.New("filename does not start with a date")

	err := NewUserErrorf("invalid selection %q: %w", "a:b", sentinel)
	if err.Code != ExitUserError {
		t.Errorf("Code = %d, want %d", err.Code, ExitUserError)
	}
	if want := `invalid selection "a:b": filename does not start with a date`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should find the wrapped operand")
	}

	plain := NewUserErrorf("--line must be 1 or more, got %d", 0)
	if plain.Cause != nil {
		t.Errorf("Cause = %v, want nil without %%w", plain.Cause)
	}
}

func TestAsUserError(t *testing.T) {
	if AsUserError(nil) != nil {
		t.Error("AsUserError(nil) should be nil")
	}

	base := errors.New("date format is empty")
	err := AsUserError(base)
	if err.Code != ExitUserError || err.Message != base.Error() || !errors.Is(err, base) {
		t.Errorf("AsUserError(plain) = %+v", err)
	}

	conflict := NewConflictError("settings file already exists")
	if got := AsUserError(conflict); got != conflict {
		t.Errorf("AsUserError(conflict) = %+v, want the same error", got)
	}
}
