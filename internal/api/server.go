// Package api exposes the booking service over HTTP/JSON.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"dayroom/internal/db"
	"dayroom/internal/service"
)

// HTTPServer handles the booking API endpoints.
type HTTPServer struct {
	svc *service.BookingService
	log zerolog.Logger
}

// NewHTTPServer creates the API server around a booking service.
func NewHTTPServer(svc *service.BookingService, logger *zerolog.Logger) *HTTPServer {
	return &HTTPServer{
		svc: svc,
		log: logger.With().Str("component", "api").Logger(),
	}
}

// Handler builds the route table with logging and optional rate limiting.
func (s *HTTPServer) Handler(rl *RateLimiter) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/rooms", s.handleRooms)
	mux.HandleFunc("/api/rooms/", s.handleRoomResource)
	mux.HandleFunc("/api/bookings", s.handleBookings)
	mux.HandleFunc("/api/bookings/", s.handleBookingResource)
	mux.HandleFunc("/api/admin/bookings/export", s.handleExport)

	var h http.Handler = mux
	if rl != nil {
		h = rl.Middleware(h)
	}
	return s.logRequests(h)
}

// ErrorResponse is the error body. Kind distinguishes a slot conflict from
// plain validation failures, so clients can prompt a re-pick instead of a
// blind retry.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeServiceError maps service and storage errors to HTTP responses.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrSlotConflict):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error(), Kind: "conflict"})
	case errors.Is(err, db.ErrBadTransition):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error(), Kind: "status"})
	case errors.Is(err, db.ErrNotFound), errors.Is(err, service.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMissingDate),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrOutsideHours),
		errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrRoomInactive):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
