package model

import (
	"staffdir/shared/failure"
)

var (
	ErrInvalidInterval  = failure.BadRequestFromString("invalid interval: end_time must be after start_time")
	ErrPastStart        = failure.BadRequestFromString("start_time must not be in the past")
	ErrTimeConflict     = failure.BadRequestFromString("time conflict with an existing booking")
	ErrRoomNotFound     = failure.NotFound("room not found")
	ErrBookingNotFound  = failure.NotFound("booking not found")
	ErrEmployeeNotFound = failure.NotFound("employee not found")
)
