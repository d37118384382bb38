package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dayroom/internal/export"
	"dayroom/internal/metrics"
	"dayroom/internal/service"
)

// RescheduleRequest is the body for PATCH /api/bookings/{id}.
type RescheduleRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// DecisionRequest is the body for POST /api/bookings/{id}/decision.
type DecisionRequest struct {
	Approve        bool   `json:"approve"`
	ManagerComment string `json:"manager_comment,omitempty"`
}

// handleBookings lists or creates bookings.
// GET  /api/bookings?room_id=N&date=YYYY-MM-DD
// GET  /api/bookings?user_id=N
// POST /api/bookings
func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListBookings(w, r)
	case http.MethodPost:
		s.handleCreateBooking(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleListBookings(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("list_bookings")
	q := r.URL.Query()

	if userStr := q.Get("user_id"); userStr != "" {
		userID, err := strconv.ParseInt(userStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user_id")
			return
		}
		bookings, err := s.svc.UserBookings(r.Context(), userID)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
		return
	}

	roomID, err := strconv.ParseInt(q.Get("room_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "room_id or user_id is required")
		return
	}
	bookings, err := s.svc.RoomDayBookings(r.Context(), roomID, q.Get("date"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("create_booking")

	var req service.CreateRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, err := s.svc.Create(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

// handleBookingResource dispatches /api/bookings/{id}[/decision|/payment].
func (s *HTTPServer) handleBookingResource(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/bookings/")
	parts := strings.Split(rest, "/")
	if parts[0] == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	id := parts[0]

	switch {
	case len(parts) == 1:
		s.handleBooking(w, r, id)
	case len(parts) == 2 && parts[1] == "decision":
		s.handleDecision(w, r, id)
	case len(parts) == 2 && parts[1] == "payment":
		s.handlePayment(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *HTTPServer) handleBooking(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		metrics.IncHTTP("get_booking")
		booking, err := s.svc.Booking(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)

	case http.MethodPatch:
		metrics.IncHTTP("reschedule_booking")
		var req RescheduleRequest
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		booking, err := s.svc.Reschedule(r.Context(), id, req.Date, req.StartTime, req.EndTime)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)

	case http.MethodDelete:
		metrics.IncHTTP("cancel_booking")
		booking, err := s.svc.Cancel(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, booking)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleDecision applies a manager approve/reject.
// POST /api/bookings/{id}/decision
func (s *HTTPServer) handleDecision(w http.ResponseWriter, r *http.Request, id string) {
	metrics.IncHTTP("booking_decision")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req DecisionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, err := s.svc.Decide(r.Context(), id, req.Approve, req.ManagerComment)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// handlePayment marks the booking's payment as completed.
// POST /api/bookings/{id}/payment
func (s *HTTPServer) handlePayment(w http.ResponseWriter, r *http.Request, id string) {
	metrics.IncHTTP("booking_payment")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	booking, err := s.svc.MarkPaid(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// handleExport streams an xlsx report of bookings in a date range.
// GET /api/admin/bookings/export?from=YYYY-MM-DD&to=YYYY-MM-DD
func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("export_bookings")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	bookings, err := s.svc.BookingsInRange(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=bookings_%s_%s.xlsx", q.Get("from"), q.Get("to")))
	if err := export.WriteBookingsReport(w, bookings); err != nil {
		s.log.Error().Err(err).Msg("failed to write bookings report")
	}
}
