package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dayroom/internal/model"
	"dayroom/internal/timeslot"
)

const bookingColumns = `id, room_id, user_id, COALESCE(client_name, ''), COALESCE(client_phone, ''),
	date, start_time, end_time, status, COALESCE(comment, ''), COALESCE(manager_comment, ''),
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID, &b.RoomID, &b.UserID, &b.ClientName, &b.ClientPhone,
		&b.Date, &b.StartTime, &b.EndTime, &b.Status, &b.Comment, &b.ManagerComment,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// listBlocking returns the bookings that hold a slot for room+date: the
// scoped row set the slot engine consumes. Rejected and cancelled bookings
// are filtered out here, at the data-fetch boundary, so they free the slot.
func listBlocking(ctx context.Context, q querier, roomID int64, date string) ([]model.Booking, error) {
	statuses := model.BlockingStatuses()
	args := []any{roomID, date}
	placeholders := ""
	for i, s := range statuses {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
		args = append(args, string(s))
	}

	rows, err := q.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE room_id = ? AND date = ? AND status IN (%s)
		ORDER BY start_time`, bookingColumns, placeholders),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// ListBlockingBookings returns the slot-holding bookings for a room and date.
func (db *DB) ListBlockingBookings(ctx context.Context, roomID int64, date string) ([]model.Booking, error) {
	return listBlocking(ctx, db.DB, roomID, date)
}

// BookingIntervals converts bookings to the engine's interval form, dropping
// the booking identified by excludeID.
func BookingIntervals(bookings []model.Booking, excludeID string) []timeslot.Interval {
	rows := make([]timeslot.BookingTimes, len(bookings))
	for i, b := range bookings {
		rows[i] = timeslot.BookingTimes{ID: b.ID, StartTime: b.StartTime, EndTime: b.EndTime}
	}
	return timeslot.BookingsToIntervals(rows, excludeID)
}

// CreateBooking inserts a booking after re-checking availability against
// freshly read rows inside the same transaction. Returns ErrSlotConflict if
// the range overlaps another booking that holds its slot. This re-check,
// not the option lists rendered earlier, is what closes the window between
// two concurrent submissions for the same slot.
func (db *DB) CreateBooking(ctx context.Context, b *model.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	existing, err := listBlocking(ctx, tx, b.RoomID, b.Date)
	if err != nil {
		return fmt.Errorf("list bookings: %w", err)
	}

	start := timeslot.ParseTimeToMinutes(b.StartTime)
	end := timeslot.ParseTimeToMinutes(b.EndTime)
	if timeslot.RangeOverlapsAny(start, end, BookingIntervals(existing, "")) {
		return ErrSlotConflict
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO bookings
			(id, room_id, user_id, client_name, client_phone, date, start_time, end_time, status, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.RoomID, b.UserID, b.ClientName, b.ClientPhone,
		b.Date, b.StartTime, b.EndTime, string(b.Status), b.Comment, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	b.CreatedAt = now
	b.UpdatedAt = now

	return tx.Commit()
}

// RescheduleBooking moves a booking to a new date and range, excluding the
// booking itself from the overlap re-check.
func (db *DB) RescheduleBooking(ctx context.Context, id, date, startTime, endTime string) (*model.Booking, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	b, err := scanBooking(tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM bookings WHERE id = ?`, bookingColumns), id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !b.Status.Blocks() {
		// Rejected and cancelled bookings are terminal; nothing to move.
		return nil, ErrBadTransition
	}

	existing, err := listBlocking(ctx, tx, b.RoomID, date)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	start := timeslot.ParseTimeToMinutes(startTime)
	end := timeslot.ParseTimeToMinutes(endTime)
	if timeslot.RangeOverlapsAny(start, end, BookingIntervals(existing, id)) {
		return nil, ErrSlotConflict
	}

	now := time.Now()
	if _, err := tx.ExecContext(ctx, `
		UPDATE bookings SET date = ?, start_time = ?, end_time = ?, updated_at = ?
		WHERE id = ?`,
		date, startTime, endTime, now, id,
	); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	b.Date = date
	b.StartTime = startTime
	b.EndTime = endTime
	b.UpdatedAt = now
	return b, nil
}

// UpdateBookingStatus moves a booking through its lifecycle. The transition
// is validated against the current status read in the same transaction.
func (db *DB) UpdateBookingStatus(ctx context.Context, id string, to model.BookingStatus, managerComment string) (*model.Booking, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	b, err := scanBooking(tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM bookings WHERE id = ?`, bookingColumns), id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !model.CanTransition(b.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrBadTransition, b.Status, to)
	}

	now := time.Now()
	if _, err := tx.ExecContext(ctx, `
		UPDATE bookings SET status = ?, manager_comment = ?, updated_at = ?
		WHERE id = ?`,
		string(to), managerComment, now, id,
	); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	b.Status = to
	if managerComment != "" {
		b.ManagerComment = managerComment
	}
	b.UpdatedAt = now
	return b, nil
}

// GetBooking returns a booking by id.
func (db *DB) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	b, err := scanBooking(db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM bookings WHERE id = ?`, bookingColumns), id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookingsForRoomDate returns all bookings for a room and date,
// regardless of status. Display lists use this; availability uses
// ListBlockingBookings.
func (db *DB) ListBookingsForRoomDate(ctx context.Context, roomID int64, date string) ([]model.Booking, error) {
	return db.listBookings(ctx, fmt.Sprintf(`
		SELECT %s FROM bookings WHERE room_id = ? AND date = ? ORDER BY start_time`, bookingColumns),
		roomID, date)
}

// ListBookingsByUser returns a user's bookings, most recent date first.
func (db *DB) ListBookingsByUser(ctx context.Context, userID int64) ([]model.Booking, error) {
	return db.listBookings(ctx, fmt.Sprintf(`
		SELECT %s FROM bookings WHERE user_id = ? ORDER BY date DESC, start_time`, bookingColumns),
		userID)
}

// ListBookingsByDateRange returns bookings with date in [from, to],
// ordered for reporting.
func (db *DB) ListBookingsByDateRange(ctx context.Context, from, to string) ([]model.Booking, error) {
	return db.listBookings(ctx, fmt.Sprintf(`
		SELECT %s FROM bookings WHERE date >= ? AND date <= ?
		ORDER BY date, room_id, start_time`, bookingColumns),
		from, to)
}

func (db *DB) listBookings(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
