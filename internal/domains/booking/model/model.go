package model

import (
	"time"
)

const (
	TableName  = "room_bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldRoomID       = "room_id"
	FieldEmployeeID   = "employee_id"
	FieldEmployeeName = "employee_name"
	FieldStartTime    = "start_time"
	FieldEndTime      = "end_time"
	FieldRemarks      = "remarks"
	FieldCreatedAt    = "created_at"
	FieldPosition     = "position"
)

// Booking is a reserved [StartTime, EndTime) interval on one room. The employee
// name is captured when the booking is made and never re-synced.
type Booking struct {
	ID           string    `bson:"id"`
	EmployeeID   string    `bson:"employee_id"`
	EmployeeName string    `bson:"employee_name"`
	StartTime    time.Time `bson:"start_time"`
	EndTime      time.Time `bson:"end_time"`
	Remarks      string    `bson:"remarks"`
	CreatedAt    time.Time `bson:"created_at"`
}

// Contains reports whether at falls inside [StartTime, EndTime).
func (b Booking) Contains(at time.Time) bool {
	return !at.Before(b.StartTime) && at.Before(b.EndTime)
}

// Overlaps reports whether [start, end) intersects the booking. Touching
// endpoints do not overlap.
func (b Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndTime) && b.StartTime.Before(end)
}
