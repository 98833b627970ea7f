package validator_test

import (
	"staffdir/shared/validator"
	"strings"
	"testing"
)

type bookingPayload struct {
	EmployeeID string `json:"employee_id" validate:"required,notblank"`
	StartTime  string `json:"start_time"  validate:"required,iso8601"`
	EndTime    string `json:"end_time"    validate:"required,iso8601"`
	Remarks    string `json:"remarks"     validate:"omitempty,max=10"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        bookingPayload
		expectError bool
	}{
		{
			name: "valid struct",
			data: bookingPayload{
				EmployeeID: "E001",
				StartTime:  "2025-03-01T09:00:00Z",
				EndTime:    "2025-03-01T10:00:00Z",
			},
			expectError: false,
		},
		{
			name: "missing employee",
			data: bookingPayload{
				StartTime: "2025-03-01T09:00:00Z",
				EndTime:   "2025-03-01T10:00:00Z",
			},
			expectError: true,
		},
		{
			name: "blank employee",
			data: bookingPayload{
				EmployeeID: "   ",
				StartTime:  "2025-03-01T09:00:00Z",
				EndTime:    "2025-03-01T10:00:00Z",
			},
			expectError: true,
		},
		{
			name: "malformed timestamp",
			data: bookingPayload{
				EmployeeID: "E001",
				StartTime:  "01/03/2025 09:00",
				EndTime:    "2025-03-01T10:00:00Z",
			},
			expectError: true,
		},
		{
			name: "remarks too long",
			data: bookingPayload{
				EmployeeID: "E001",
				StartTime:  "2025-03-01T09:00:00Z",
				EndTime:    "2025-03-01T10:00:00Z",
				Remarks:    "far too long for the limit",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{name: "valid required string", field: "test", tag: "required", expectError: false},
		{name: "empty required string", field: "", tag: "required", expectError: true},
		{name: "valid instant", field: "2025-03-01T09:00:00Z", tag: "iso8601", expectError: false},
		{name: "invalid instant", field: "yesterday", tag: "iso8601", expectError: true},
		{name: "valid oneof", field: "vacant", tag: "oneof=vacant occupied", expectError: false},
		{name: "invalid oneof", field: "busy", tag: "oneof=vacant occupied", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"employee_id":"E001","start_time":"2025-03-01T09:00:00Z","end_time":"2025-03-01T10:00:00Z"}`,
			expectError: false,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"employee_id":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data bookingPayload
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	err := validator.ValidateStruct(&bookingPayload{
		EmployeeID: "E001",
		StartTime:  "not-a-time",
		EndTime:    "2025-03-01T10:00:00Z",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	if err.Error() != "start_time must be an ISO-8601 timestamp" {
		t.Errorf("expected json field name in message, got: %s", err.Error())
	}
}

func TestValidationMessages_AllFields(t *testing.T) {
	err := validator.ValidateStruct(&bookingPayload{StartTime: "2025-03-01T09:00:00Z"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	if err.Error() != "employee_id is required; end_time is required" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
