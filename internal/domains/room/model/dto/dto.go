package dto

import (
	bookingModel "staffdir/internal/domains/booking/model"
	"staffdir/internal/domains/room/model"
	"staffdir/internal/domains/room/schedule"
	"staffdir/shared/timezone"
	"time"
)

type BookingResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Remarks      string `json:"remarks"`
	CreatedAt    string `json:"created_at"`
}

func (b *BookingResponse) FromModel(model bookingModel.Booking) {
	b.ID = model.ID
	b.EmployeeID = model.EmployeeID
	b.EmployeeName = model.EmployeeName
	b.StartTime = timezone.FormatInstant(model.StartTime)
	b.EndTime = timezone.FormatInstant(model.EndTime)
	b.Remarks = model.Remarks
	b.CreatedAt = timezone.FormatInstant(model.CreatedAt)
}

type RoomResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Location       string            `json:"location"`
	Floor          string            `json:"floor"`
	Capacity       int               `json:"capacity"`
	Equipment      []string          `json:"equipment"`
	Status         string            `json:"status"          enums:"vacant,occupied"`
	CurrentBooking *BookingResponse  `json:"current_booking"`
	Bookings       []BookingResponse `json:"bookings"`
}

// FromModel fills the response and derives status and current booking at now.
func (r *RoomResponse) FromModel(room model.Room, now time.Time) {
	r.ID = room.ID
	r.Name = room.Name
	r.Location = room.Location
	r.Floor = room.Floor
	r.Capacity = room.Capacity

	r.Equipment = append([]string{}, room.Equipment...)

	r.Bookings = make([]BookingResponse, len(room.Bookings))
	for i, booking := range room.Bookings {
		r.Bookings[i].FromModel(booking)
	}

	state := schedule.Derive(room, now)
	r.Status = state.Status
	r.CurrentBooking = nil

	if state.Current != nil {
		current := BookingResponse{}
		current.FromModel(*state.Current)
		r.CurrentBooking = &current
	}
}

func FromModels(rooms []model.Room, now time.Time) []RoomResponse {
	res := make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		res[i].FromModel(room, now)
	}

	return res
}
