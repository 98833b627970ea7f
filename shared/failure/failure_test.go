package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"staffdir/shared/failure"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "time conflict with an existing booking",
	}

	if f.Error() != "time conflict with an existing booking" {
		t.Errorf("expected error message to be preserved, got %s", f.Error())
	}
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected *failure.Failure
	}{
		{
			name:     "with error",
			input:    errors.New("failed to decode request body"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "failed to decode request body"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}

				return
			}

			f, ok := result.(*failure.Failure)
			if !ok {
				t.Fatalf("expected result to be *failure.Failure, got %T", result)
			}

			if f.Code != tt.expected.Code || f.Message != tt.expected.Message {
				t.Errorf("expected %+v, got %+v", tt.expected, f)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"bad request from string", failure.BadRequestFromString("end_time must be after start_time"), http.StatusBadRequest, "end_time must be after start_time"},
		{"not found", failure.NotFound("meeting room not found"), http.StatusNotFound, "meeting room not found"},
		{"unavailable", failure.Unavailable("storage unavailable"), http.StatusServiceUnavailable, "storage unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected *failure.Failure, got %T", tt.err)
			}

			if f.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, f.Code)
			}

			if f.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, f.Message)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("booking: %w", failure.NotFound("booking not found")),
			expected: http.StatusNotFound,
		},
		{
			name:     "unavailable",
			input:    failure.Unavailable("store busy"),
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestIsClientError(t *testing.T) {
	if !failure.IsClientError(failure.BadRequestFromString("x")) {
		t.Error("expected bad request to be a client error")
	}

	if failure.IsClientError(errors.New("connection refused")) {
		t.Error("expected plain error to be a server error")
	}

	if failure.IsClientError(failure.Unavailable("down")) {
		t.Error("expected unavailable to be a server error")
	}
}
