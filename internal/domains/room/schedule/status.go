package schedule

import (
	bookingModel "staffdir/internal/domains/booking/model"
	"staffdir/internal/domains/room/model"
	"time"
)

type State struct {
	Status  string
	Current *bookingModel.Booking
}

// Derive projects the room's status at now. Stored bookings are never touched.
func Derive(room model.Room, now time.Time) State {
	current, ok := FindActive(room.Bookings, now)
	if !ok {
		return State{Status: model.StatusVacant}
	}

	return State{Status: model.StatusOccupied, Current: &current}
}
