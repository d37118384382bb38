// Package model holds the domain records shared by storage, service and API.
package model

import "time"

// BookingStatus tracks the booking lifecycle:
// payment_pending -> pending -> approved | rejected, with cancellation
// possible at any point before a manager decision is final.
type BookingStatus string

const (
	StatusPaymentPending BookingStatus = "payment_pending"
	StatusPending        BookingStatus = "pending"
	StatusApproved       BookingStatus = "approved"
	StatusRejected       BookingStatus = "rejected"
	StatusCancelled      BookingStatus = "cancelled"
)

// Blocks reports whether a booking in this status holds its time slot.
// Rejected and cancelled bookings free the slot; the filter is applied at
// the data-fetch boundary, never inside the slot engine.
func (s BookingStatus) Blocks() bool {
	switch s {
	case StatusPaymentPending, StatusPending, StatusApproved:
		return true
	}
	return false
}

// BlockingStatuses lists the statuses that count toward overlap, in the
// order storage queries bind them.
func BlockingStatuses() []BookingStatus {
	return []BookingStatus{StatusPaymentPending, StatusPending, StatusApproved}
}

// statusTransitions defines the allowed lifecycle moves.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPaymentPending: {StatusPending, StatusCancelled},
	StatusPending:        {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:       {StatusCancelled},
	StatusRejected:       {},
	StatusCancelled:      {},
}

// CanTransition checks if a status transition is allowed.
func CanTransition(from, to BookingStatus) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Booking represents one day-use room reservation. Start and end times are
// stored as "HH:MM" wall-clock strings within Date; the interval is
// half-open [start, end).
type Booking struct {
	ID             string        `json:"id"`
	RoomID         int64         `json:"room_id"`
	UserID         int64         `json:"user_id"`
	ClientName     string        `json:"client_name"`
	ClientPhone    string        `json:"client_phone"`
	Date           string        `json:"date"`       // YYYY-MM-DD
	StartTime      string        `json:"start_time"` // HH:MM
	EndTime        string        `json:"end_time"`   // HH:MM
	Status         BookingStatus `json:"status"`
	Comment        string        `json:"comment,omitempty"`
	ManagerComment string        `json:"manager_comment,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
