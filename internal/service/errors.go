package service

import "errors"

var (
	// ErrMissingDate is returned when a request has no booking date.
	ErrMissingDate = errors.New("date is required")

	// ErrInvalidDate is returned when the date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date format; expected YYYY-MM-DD")

	// ErrOutsideHours is returned when the requested range leaves the
	// operating window.
	ErrOutsideHours = errors.New("requested time is outside operating hours")

	// ErrInvalidRange is returned when the end does not follow the start
	// by at least one slot step.
	ErrInvalidRange = errors.New("end time must be after start time by at least one slot")

	// ErrRoomNotFound is returned for an unknown room id.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomInactive is returned when the room does not accept bookings.
	ErrRoomInactive = errors.New("room is not accepting bookings")
)
