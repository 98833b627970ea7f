// Package schedule decides whether intervals collide and what a room looks like
// at a given instant. Everything here is pure and safe for concurrent use.
package schedule

import (
	"staffdir/internal/domains/booking/model"
	"time"
)

// Conflicts reports whether [start, end) overlaps any of existing.
func Conflicts(existing []model.Booking, start, end time.Time) bool {
	_, found := FindConflict(existing, start, end)

	return found
}

// FindConflict returns the first booking overlapping [start, end).
func FindConflict(existing []model.Booking, start, end time.Time) (model.Booking, bool) {
	for _, booking := range existing {
		if booking.Overlaps(start, end) {
			return booking, true
		}
	}

	return model.Booking{}, false
}

// FindActive returns the booking whose interval contains at.
func FindActive(existing []model.Booking, at time.Time) (model.Booking, bool) {
	for _, booking := range existing {
		if booking.Contains(at) {
			return booking, true
		}
	}

	return model.Booking{}, false
}
