// Package service wires the slot engine to storage, caching and metrics.
// The engine stays pure; everything stateful happens here or below.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"dayroom/internal/db"
	"dayroom/internal/metrics"
	"dayroom/internal/model"
	"dayroom/internal/timeslot"
)

// BookingService exposes the booking operations used by the HTTP API.
type BookingService struct {
	store  Store
	avail  Availability
	window timeslot.Window
	step   int
	log    zerolog.Logger
}

// New creates a booking service. avail may be nil to disable caching.
func New(store Store, avail Availability, window timeslot.Window, step int, logger *zerolog.Logger) *BookingService {
	if step < timeslot.MinStep {
		step = timeslot.MinStep
	}
	return &BookingService{
		store:  store,
		avail:  avail,
		window: window,
		step:   step,
		log:    logger.With().Str("component", "booking_service").Logger(),
	}
}

// Window returns the platform operating window.
func (s *BookingService) Window() timeslot.Window { return s.window }

// Step returns the slot step in minutes.
func (s *BookingService) Step() int { return s.step }

// CreateRequest carries a new booking submission.
type CreateRequest struct {
	RoomID      int64  `json:"room_id"`
	UserID      int64  `json:"user_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Comment     string `json:"comment,omitempty"`
}

// SlotAvailability is one grid cell of a day availability snapshot.
type SlotAvailability struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

func validDate(date string) error {
	if date == "" {
		return ErrMissingDate
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// validateRange applies the hard submission-boundary checks the total
// parser deliberately skips: window bounds and minimum duration.
func (s *BookingService) validateRange(startTime, endTime string) (start, end int, err error) {
	start = timeslot.ParseTimeToMinutes(startTime)
	end = timeslot.ParseTimeToMinutes(endTime)
	if start < s.window.Start || end > s.window.End {
		return 0, 0, ErrOutsideHours
	}
	if end-start < s.step {
		return 0, 0, ErrInvalidRange
	}
	return start, end, nil
}

func (s *BookingService) activeRoom(ctx context.Context, roomID int64) (*model.Room, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrRoomInactive
	}
	return room, nil
}

func (s *BookingService) blockingIntervals(ctx context.Context, roomID int64, date, excludeID string) ([]timeslot.Interval, error) {
	bookings, err := s.store.ListBlockingBookings(ctx, roomID, date)
	if err != nil {
		return nil, err
	}
	return db.BookingIntervals(bookings, excludeID), nil
}

// StartOptions returns the selectable start times for a room and date.
// A start is disabled when it lands inside a booked interval or when no
// end would yield a non-overlapping range.
func (s *BookingService) StartOptions(ctx context.Context, roomID int64, date string) ([]timeslot.SlotOption, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	if _, err := s.activeRoom(ctx, roomID); err != nil {
		return nil, err
	}
	intervals, err := s.blockingIntervals(ctx, roomID, date, "")
	if err != nil {
		return nil, err
	}

	disabled := timeslot.DisabledTimeSlots(intervals, s.step)
	options := timeslot.StartCandidates(s.window, s.step)
	for i := range options {
		m := options[i].Minutes
		if disabled[m] || !timeslot.StartHasAnyValidEnd(m, m+s.step, s.window.End, s.step, intervals) {
			options[i].Disabled = true
		}
	}
	return options, nil
}

// EndOptions returns the selectable end times for a chosen start. Ends whose
// range would cross a booked slot are disabled. excludeID drops the booking
// being edited from consideration.
func (s *BookingService) EndOptions(ctx context.Context, roomID int64, date, startTime, excludeID string) ([]timeslot.SlotOption, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	if _, err := s.activeRoom(ctx, roomID); err != nil {
		return nil, err
	}
	intervals, err := s.blockingIntervals(ctx, roomID, date, excludeID)
	if err != nil {
		return nil, err
	}

	start := timeslot.ParseTimeToMinutes(startTime)
	candidates := timeslot.EndCandidates(s.window, start, s.step)
	disabled := timeslot.DisabledTimeSlots(intervals, s.step)
	return timeslot.MarkEndOptions(start, candidates, s.step, disabled), nil
}

// DayAvailability returns the per-slot availability grid for a room+date,
// served from the cache when possible.
func (s *BookingService) DayAvailability(ctx context.Context, roomID int64, date string) ([]SlotAvailability, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	if _, err := s.activeRoom(ctx, roomID); err != nil {
		return nil, err
	}

	var cached []SlotAvailability
	if s.avail != nil && s.avail.GetDay(ctx, roomID, date, &cached) {
		return cached, nil
	}

	intervals, err := s.blockingIntervals(ctx, roomID, date, "")
	if err != nil {
		return nil, err
	}

	var grid []SlotAvailability
	for m := s.window.Start; m+s.step <= s.window.End; m += s.step {
		grid = append(grid, SlotAvailability{
			Start:     timeslot.MinutesToTimeValue(m),
			End:       timeslot.MinutesToTimeValue(m + s.step),
			Available: !timeslot.RangeOverlapsAny(m, m+s.step, intervals),
		})
	}

	if s.avail != nil {
		s.avail.SetDay(ctx, roomID, date, grid)
	}
	return grid, nil
}

// Create validates and persists a new booking. The storage layer re-checks
// overlap transactionally; a conflict surfaces as db.ErrSlotConflict.
func (s *BookingService) Create(ctx context.Context, req CreateRequest) (*model.Booking, error) {
	if err := validDate(req.Date); err != nil {
		return nil, err
	}
	if _, _, err := s.validateRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if _, err := s.activeRoom(ctx, req.RoomID); err != nil {
		return nil, err
	}

	b := &model.Booking{
		ID:          uuid.NewString(),
		RoomID:      req.RoomID,
		UserID:      req.UserID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      model.StatusPaymentPending,
		Comment:     req.Comment,
	}

	if err := s.store.CreateBooking(ctx, b); err != nil {
		if errors.Is(err, db.ErrSlotConflict) {
			metrics.IncBookingConflict()
			s.log.Info().
				Int64("room_id", req.RoomID).
				Str("date", req.Date).
				Str("range", req.StartTime+"-"+req.EndTime).
				Msg("booking rejected: slot conflict")
		}
		return nil, err
	}

	metrics.IncBookingCreated(string(b.Status))
	s.invalidate(ctx, b.RoomID, b.Date)
	s.log.Info().
		Str("booking_id", b.ID).
		Int64("room_id", b.RoomID).
		Str("date", b.Date).
		Str("range", b.StartTime+"-"+b.EndTime).
		Msg("booking created")
	return b, nil
}

// Reschedule moves an existing booking, excluding it from its own overlap
// check.
func (s *BookingService) Reschedule(ctx context.Context, id, date, startTime, endTime string) (*model.Booking, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	if _, _, err := s.validateRange(startTime, endTime); err != nil {
		return nil, err
	}

	prev, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	b, err := s.store.RescheduleBooking(ctx, id, date, startTime, endTime)
	if err != nil {
		if errors.Is(err, db.ErrSlotConflict) {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	s.invalidate(ctx, prev.RoomID, prev.Date)
	s.invalidate(ctx, b.RoomID, b.Date)
	s.log.Info().
		Str("booking_id", b.ID).
		Str("date", b.Date).
		Str("range", b.StartTime+"-"+b.EndTime).
		Msg("booking rescheduled")
	return b, nil
}

// MarkPaid advances a booking from payment_pending to pending once the
// payment callback lands.
func (s *BookingService) MarkPaid(ctx context.Context, id string) (*model.Booking, error) {
	return s.store.UpdateBookingStatus(ctx, id, model.StatusPending, "")
}

// Decide applies a manager decision. Rejection frees the slot, so the
// availability snapshot is invalidated.
func (s *BookingService) Decide(ctx context.Context, id string, approve bool, managerComment string) (*model.Booking, error) {
	to := model.StatusApproved
	decision := "approve"
	if !approve {
		to = model.StatusRejected
		decision = "reject"
	}

	b, err := s.store.UpdateBookingStatus(ctx, id, to, managerComment)
	if err != nil {
		return nil, err
	}

	metrics.IncManagerDecision(decision)
	if !approve {
		s.invalidate(ctx, b.RoomID, b.Date)
	}
	s.log.Info().
		Str("booking_id", b.ID).
		Str("decision", decision).
		Msg("manager decision applied")
	return b, nil
}

// Cancel cancels a booking and frees its slot.
func (s *BookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	b, err := s.store.UpdateBookingStatus(ctx, id, model.StatusCancelled, "")
	if err != nil {
		return nil, err
	}
	metrics.IncBookingCancelled()
	s.invalidate(ctx, b.RoomID, b.Date)
	return b, nil
}

// Rooms lists the rooms open for booking.
func (s *BookingService) Rooms(ctx context.Context) ([]model.Room, error) {
	return s.store.ListActiveRooms(ctx)
}

// Booking returns one booking by id.
func (s *BookingService) Booking(ctx context.Context, id string) (*model.Booking, error) {
	return s.store.GetBooking(ctx, id)
}

// RoomDayBookings lists every booking for a room+date, all statuses.
func (s *BookingService) RoomDayBookings(ctx context.Context, roomID int64, date string) ([]model.Booking, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	return s.store.ListBookingsForRoomDate(ctx, roomID, date)
}

// UserBookings lists a user's bookings.
func (s *BookingService) UserBookings(ctx context.Context, userID int64) ([]model.Booking, error) {
	return s.store.ListBookingsByUser(ctx, userID)
}

// BookingsInRange lists bookings between two dates for reporting.
func (s *BookingService) BookingsInRange(ctx context.Context, from, to string) ([]model.Booking, error) {
	if err := validDate(from); err != nil {
		return nil, err
	}
	if err := validDate(to); err != nil {
		return nil, err
	}
	return s.store.ListBookingsByDateRange(ctx, from, to)
}

func (s *BookingService) invalidate(ctx context.Context, roomID int64, date string) {
	if s.avail != nil {
		s.avail.Invalidate(ctx, roomID, date)
	}
}
