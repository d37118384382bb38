package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"dayroom/internal/model"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := NewDB(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })
	return database
}

func newTestRoom(t *testing.T, database *DB) int64 {
	t.Helper()
	id, err := database.CreateRoom(context.Background(), &model.Room{Name: uuid.NewString(), IsActive: true})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	return id
}

func testBooking(roomID int64, date, start, end string) *model.Booking {
	return &model.Booking{
		ID:         uuid.NewString(),
		RoomID:     roomID,
		UserID:     42,
		ClientName: "Test Client",
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Status:     model.StatusPending,
	}
}

func TestCreateBooking(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	roomID := newTestRoom(t, database)

	first := testBooking(roomID, "2026-09-10", "10:00", "12:00")
	if err := database.CreateBooking(ctx, first); err != nil {
		t.Fatalf("create first booking: %v", err)
	}

	tests := []struct {
		name         string
		start, end   string
		wantConflict bool
	}{
		{"overlapping range rejected", "11:00", "13:00", true},
		{"contained range rejected", "10:30", "11:30", true},
		{"spanning range rejected", "09:00", "13:00", true},
		{"identical range rejected", "10:00", "12:00", true},
		{"back to back after is allowed", "12:00", "13:00", false},
		{"back to back before is allowed", "09:00", "10:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := database.CreateBooking(ctx, testBooking(roomID, "2026-09-10", tt.start, tt.end))
			if tt.wantConflict {
				if !errors.Is(err, ErrSlotConflict) {
					t.Errorf("expected ErrSlotConflict, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	t.Run("same range on another date is allowed", func(t *testing.T) {
		if err := database.CreateBooking(ctx, testBooking(roomID, "2026-09-11", "10:00", "12:00")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("same range in another room is allowed", func(t *testing.T) {
		otherRoom := newTestRoom(t, database)
		if err := database.CreateBooking(ctx, testBooking(otherRoom, "2026-09-10", "10:00", "12:00")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestRejectedBookingFreesSlot(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	roomID := newTestRoom(t, database)

	first := testBooking(roomID, "2026-09-10", "10:00", "12:00")
	if err := database.CreateBooking(ctx, first); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if _, err := database.UpdateBookingStatus(ctx, first.ID, model.StatusRejected, "no staff"); err != nil {
		t.Fatalf("reject booking: %v", err)
	}

	// The slot is free again once the holder was rejected.
	if err := database.CreateBooking(ctx, testBooking(roomID, "2026-09-10", "10:00", "12:00")); err != nil {
		t.Errorf("expected slot to be free after rejection, got %v", err)
	}
}

func TestRescheduleBooking(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	roomID := newTestRoom(t, database)

	b := testBooking(roomID, "2026-09-10", "10:00", "12:00")
	if err := database.CreateBooking(ctx, b); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	other := testBooking(roomID, "2026-09-10", "14:00", "15:00")
	if err := database.CreateBooking(ctx, other); err != nil {
		t.Fatalf("create other booking: %v", err)
	}

	t.Run("shifting within own range does not conflict with itself", func(t *testing.T) {
		updated, err := database.RescheduleBooking(ctx, b.ID, "2026-09-10", "10:30", "12:30")
		if err != nil {
			t.Fatalf("reschedule: %v", err)
		}
		if updated.StartTime != "10:30" || updated.EndTime != "12:30" {
			t.Errorf("unexpected times: %s-%s", updated.StartTime, updated.EndTime)
		}
	})

	t.Run("moving onto another booking conflicts", func(t *testing.T) {
		_, err := database.RescheduleBooking(ctx, b.ID, "2026-09-10", "13:30", "14:30")
		if !errors.Is(err, ErrSlotConflict) {
			t.Errorf("expected ErrSlotConflict, got %v", err)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := database.RescheduleBooking(ctx, "missing", "2026-09-10", "08:00", "09:00")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	roomID := newTestRoom(t, database)

	b := testBooking(roomID, "2026-09-10", "10:00", "11:00")
	b.Status = model.StatusPaymentPending
	if err := database.CreateBooking(ctx, b); err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if _, err := database.UpdateBookingStatus(ctx, b.ID, model.StatusApproved, ""); !errors.Is(err, ErrBadTransition) {
		t.Errorf("payment_pending -> approved: expected ErrBadTransition, got %v", err)
	}

	updated, err := database.UpdateBookingStatus(ctx, b.ID, model.StatusPending, "")
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if updated.Status != model.StatusPending {
		t.Errorf("expected pending, got %s", updated.Status)
	}

	updated, err = database.UpdateBookingStatus(ctx, b.ID, model.StatusApproved, "confirmed by phone")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.ManagerComment != "confirmed by phone" {
		t.Errorf("expected manager comment to be stored, got %q", updated.ManagerComment)
	}

	if _, err := database.UpdateBookingStatus(ctx, b.ID, model.StatusRejected, ""); !errors.Is(err, ErrBadTransition) {
		t.Errorf("approved -> rejected: expected ErrBadTransition, got %v", err)
	}
}

func TestListBlockingBookings(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	roomID := newTestRoom(t, database)

	kept := testBooking(roomID, "2026-09-10", "09:00", "10:00")
	if err := database.CreateBooking(ctx, kept); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	cancelled := testBooking(roomID, "2026-09-10", "11:00", "12:00")
	if err := database.CreateBooking(ctx, cancelled); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if _, err := database.UpdateBookingStatus(ctx, cancelled.ID, model.StatusCancelled, ""); err != nil {
		t.Fatalf("cancel booking: %v", err)
	}

	blocking, err := database.ListBlockingBookings(ctx, roomID, "2026-09-10")
	if err != nil {
		t.Fatalf("list blocking: %v", err)
	}
	if len(blocking) != 1 {
		t.Fatalf("expected 1 blocking booking, got %d", len(blocking))
	}
	if blocking[0].ID != kept.ID {
		t.Errorf("expected %s, got %s", kept.ID, blocking[0].ID)
	}

	all, err := database.ListBookingsForRoomDate(ctx, roomID, "2026-09-10")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 bookings in display list, got %d", len(all))
	}
}

func TestListBookingsByDateRange(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	roomID := newTestRoom(t, database)

	for _, date := range []string{"2026-09-08", "2026-09-10", "2026-09-12"} {
		if err := database.CreateBooking(ctx, testBooking(roomID, date, "10:00", "11:00")); err != nil {
			t.Fatalf("create booking on %s: %v", date, err)
		}
	}

	got, err := database.ListBookingsByDateRange(ctx, "2026-09-09", "2026-09-11")
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 booking in range, got %d", len(got))
	}
	if got[0].Date != "2026-09-10" {
		t.Errorf("expected 2026-09-10, got %s", got[0].Date)
	}
}
