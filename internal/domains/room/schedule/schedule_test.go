package schedule_test

import (
	bookingModel "staffdir/internal/domains/booking/model"
	"staffdir/internal/domains/room/model"
	"staffdir/internal/domains/room/schedule"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 1, hour, minute, 0, 0, time.UTC)
}

func booking(id string, start, end time.Time) bookingModel.Booking {
	return bookingModel.Booking{ID: id, StartTime: start, EndTime: end}
}

func TestConflicts(t *testing.T) {
	existing := []bookingModel.Booking{
		booking("a", at(10, 0), at(11, 0)),
		booking("b", at(11, 0), at(12, 0)),
		booking("c", at(12, 0), at(13, 0)),
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{name: "ends when first starts", start: at(9, 0), end: at(10, 0), want: false},
		{name: "starts when last ends", start: at(13, 0), end: at(14, 0), want: false},
		{name: "straddles two bookings", start: at(10, 30), end: at(11, 30), want: true},
		{name: "inside one booking", start: at(12, 15), end: at(12, 45), want: true},
		{name: "covers everything", start: at(8, 0), end: at(15, 0), want: true},
		{name: "identical interval", start: at(11, 0), end: at(12, 0), want: true},
		{name: "before all", start: at(7, 0), end: at(8, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.Conflicts(existing, tt.start, tt.end))
		})
	}
}

func TestConflicts_Empty(t *testing.T) {
	assert.False(t, schedule.Conflicts(nil, at(9, 0), at(10, 0)))
}

func TestFindConflict_ReturnsFirstOverlap(t *testing.T) {
	existing := []bookingModel.Booking{
		booking("a", at(10, 0), at(11, 0)),
		booking("b", at(11, 0), at(12, 0)),
	}

	found, ok := schedule.FindConflict(existing, at(10, 30), at(11, 30))
	require.True(t, ok)
	assert.Equal(t, "a", found.ID)
}

func TestDerive(t *testing.T) {
	past := booking("past", at(7, 0), at(8, 0))
	active := booking("active", at(9, 0), at(10, 0))
	future := booking("future", at(11, 0), at(12, 0))

	tests := []struct {
		name        string
		bookings    []bookingModel.Booking
		now         time.Time
		wantStatus  string
		wantCurrent string
	}{
		{name: "no bookings", now: at(9, 30), wantStatus: model.StatusVacant},
		{name: "only past", bookings: []bookingModel.Booking{past}, now: at(9, 30), wantStatus: model.StatusVacant},
		{name: "only future", bookings: []bookingModel.Booking{future}, now: at(9, 30), wantStatus: model.StatusVacant},
		{
			name:        "covering now",
			bookings:    []bookingModel.Booking{past, active, future},
			now:         at(9, 30),
			wantStatus:  model.StatusOccupied,
			wantCurrent: "active",
		},
		{
			name:        "at start instant",
			bookings:    []bookingModel.Booking{active},
			now:         at(9, 0),
			wantStatus:  model.StatusOccupied,
			wantCurrent: "active",
		},
		{name: "at end instant", bookings: []bookingModel.Booking{active}, now: at(10, 0), wantStatus: model.StatusVacant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := model.Room{ID: "R-1", Bookings: tt.bookings}

			state := schedule.Derive(room, tt.now)

			assert.Equal(t, tt.wantStatus, state.Status)

			if tt.wantCurrent == "" {
				assert.Nil(t, state.Current)

				return
			}

			require.NotNil(t, state.Current)
			assert.Equal(t, tt.wantCurrent, state.Current.ID)
		})
	}
}

func TestDerive_DoesNotMutate(t *testing.T) {
	room := model.Room{ID: "R-1", Bookings: []bookingModel.Booking{booking("old", at(1, 0), at(2, 0))}}

	schedule.Derive(room, at(12, 0))

	assert.Len(t, room.Bookings, 1)
}
