package dto

import (
	"fmt"
	"staffdir/internal/domains/booking/model"
	"staffdir/shared/failure"
	"staffdir/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

type BookRequest struct {
	EmployeeID string `example:"E001"                 json:"employee_id" validate:"required,notblank"`
	StartTime  string `example:"2025-03-01T09:00:00Z" json:"start_time"  validate:"required,iso8601"`
	EndTime    string `example:"2025-03-01T10:00:00Z" json:"end_time"    validate:"required,iso8601"`
	Remarks    string `example:"Sprint planning"      json:"remarks"     validate:"omitempty,max=500"`
}

// Interval parses both timestamps as UTC instants.
func (b *BookRequest) Interval() (start, end time.Time, err error) {
	start, err = timezone.ParseInstant(b.StartTime)
	if err != nil {
		return start, end, failure.BadRequestFromString(fmt.Sprintf("invalid start_time: %s", b.StartTime)) //nolint:wrapcheck
	}

	end, err = timezone.ParseInstant(b.EndTime)
	if err != nil {
		return start, end, failure.BadRequestFromString(fmt.Sprintf("invalid end_time: %s", b.EndTime)) //nolint:wrapcheck
	}

	return start, end, nil
}

func (b *BookRequest) ToModel(employeeName string, start, end, now time.Time) model.Booking {
	return model.Booking{
		ID:           uuid.NewString(),
		EmployeeID:   strings.TrimSpace(b.EmployeeID),
		EmployeeName: employeeName,
		StartTime:    start,
		EndTime:      end,
		Remarks:      b.Remarks,
		CreatedAt:    now.UTC(),
	}
}

type CancelCurrentResponse struct {
	Message   string  `json:"message"`
	BookingID *string `json:"booking_id"`
}

type ClearAllResponse struct {
	Message      string `json:"message"`
	RoomsUpdated int    `json:"rooms_updated"`
}
