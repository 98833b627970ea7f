package model

import (
	bookingModel "staffdir/internal/domains/booking/model"
)

const (
	TableName  = "meeting_rooms"
	EntityName = "room"

	FieldID        = "id"
	FieldName      = "name"
	FieldLocation  = "location"
	FieldFloor     = "floor"
	FieldCapacity  = "capacity"
	FieldEquipment = "equipment"
	FieldBookings  = "bookings"
	FieldPosition  = "position"
	FieldVersion   = "version"
)

const (
	StatusVacant   = "vacant"
	StatusOccupied = "occupied"
)

// Room is a bookable space. Everything except Bookings is fixed at seed time.
type Room struct {
	ID        string                 `bson:"_id"       json:"id"`
	Name      string                 `bson:"name"      json:"name"`
	Location  string                 `bson:"location"  json:"location"`
	Floor     string                 `bson:"floor"     json:"floor"`
	Capacity  int                    `bson:"capacity"  json:"capacity"`
	Equipment []string               `bson:"equipment" json:"equipment"`
	Bookings  []bookingModel.Booking `bson:"bookings"  json:"bookings"`
}

// Clone returns a copy whose slices can be mutated without touching r.
func (r Room) Clone() Room {
	out := r
	out.Equipment = make([]string, len(r.Equipment))
	copy(out.Equipment, r.Equipment)
	out.Bookings = make([]bookingModel.Booking, len(r.Bookings))
	copy(out.Bookings, r.Bookings)

	return out
}

// Filter holds equality predicates for listing rooms; empty fields match all.
type Filter struct {
	Location string
	Floor    string
	Status   string
}

// Match reports whether the stored fields of r satisfy the filter. Status is
// derived and checked separately.
func (f Filter) Match(r Room) bool {
	if f.Location != "" && r.Location != f.Location {
		return false
	}

	if f.Floor != "" && r.Floor != f.Floor {
		return false
	}

	return true
}
