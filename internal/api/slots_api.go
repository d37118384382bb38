package api

import (
	"net/http"
	"strconv"
	"strings"

	"dayroom/internal/metrics"
)

// handleRooms returns the rooms open for booking.
// GET /api/rooms
func (s *HTTPServer) handleRooms(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("rooms")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rooms, err := s.svc.Rooms(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

// handleRoomResource dispatches /api/rooms/{id}/{action}.
func (s *HTTPServer) handleRoomResource(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/rooms/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	roomID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	switch parts[1] {
	case "start-options":
		s.handleStartOptions(w, r, roomID)
	case "end-options":
		s.handleEndOptions(w, r, roomID)
	case "availability":
		s.handleAvailability(w, r, roomID)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

// handleStartOptions returns selectable start times for a room and date.
// GET /api/rooms/{id}/start-options?date=YYYY-MM-DD
func (s *HTTPServer) handleStartOptions(w http.ResponseWriter, r *http.Request, roomID int64) {
	metrics.IncHTTP("start_options")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	options, err := s.svc.StartOptions(r.Context(), roomID, r.URL.Query().Get("date"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"options": options})
}

// handleEndOptions returns selectable end times for a chosen start.
// GET /api/rooms/{id}/end-options?date=YYYY-MM-DD&start=HH:MM[&exclude=bookingID]
func (s *HTTPServer) handleEndOptions(w http.ResponseWriter, r *http.Request, roomID int64) {
	metrics.IncHTTP("end_options")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	if q.Get("start") == "" {
		writeError(w, http.StatusBadRequest, "start is required")
		return
	}

	options, err := s.svc.EndOptions(r.Context(), roomID, q.Get("date"), q.Get("start"), q.Get("exclude"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"options": options})
}

// handleAvailability returns the day availability grid for a room.
// GET /api/rooms/{id}/availability?date=YYYY-MM-DD
func (s *HTTPServer) handleAvailability(w http.ResponseWriter, r *http.Request, roomID int64) {
	metrics.IncHTTP("availability")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	date := r.URL.Query().Get("date")
	grid, err := s.svc.DayAvailability(r.Context(), roomID, date)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "slots": grid})
}
