package service

import (
	"context"

	"dayroom/internal/model"
)

// Store is the persistence surface the booking service depends on.
type Store interface {
	GetRoom(ctx context.Context, id int64) (*model.Room, error)
	ListActiveRooms(ctx context.Context) ([]model.Room, error)

	ListBlockingBookings(ctx context.Context, roomID int64, date string) ([]model.Booking, error)
	ListBookingsForRoomDate(ctx context.Context, roomID int64, date string) ([]model.Booking, error)
	ListBookingsByUser(ctx context.Context, userID int64) ([]model.Booking, error)
	ListBookingsByDateRange(ctx context.Context, from, to string) ([]model.Booking, error)

	CreateBooking(ctx context.Context, b *model.Booking) error
	RescheduleBooking(ctx context.Context, id, date, startTime, endTime string) (*model.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, to model.BookingStatus, managerComment string) (*model.Booking, error)
	GetBooking(ctx context.Context, id string) (*model.Booking, error)
}

// Availability caches day availability snapshots. Implementations must be
// advisory: a miss or failure only costs a recompute.
type Availability interface {
	GetDay(ctx context.Context, roomID int64, date string, out any) bool
	SetDay(ctx context.Context, roomID int64, date string, val any)
	Invalidate(ctx context.Context, roomID int64, date string)
}
