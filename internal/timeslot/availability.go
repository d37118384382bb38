package timeslot

// Interval is a confirmed reservation's [Start, End) span for one room and
// date, with an opaque identifier.
type Interval struct {
	Start int
	End   int
	ID    string
}

// BookingTimes is the raw row shape the availability functions accept from
// any store: textual start/end times plus an opaque id.
type BookingTimes struct {
	ID        string
	StartTime string
	EndTime   string
}

// RangesOverlap reports whether the half-open ranges [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching boundaries do not overlap, so
// back-to-back bookings are always allowed.
func RangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// BookingsToIntervals maps raw booking rows to intervals. The row matching
// excludeID is dropped, so a booking being edited never conflicts with
// itself. Malformed rows where end <= start are dropped as well.
func BookingsToIntervals(rows []BookingTimes, excludeID string) []Interval {
	intervals := make([]Interval, 0, len(rows))
	for _, r := range rows {
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		start := ParseTimeToMinutes(r.StartTime)
		end := ParseTimeToMinutes(r.EndTime)
		if end <= start {
			continue
		}
		intervals = append(intervals, Interval{Start: start, End: end, ID: r.ID})
	}
	return intervals
}

// RangeOverlapsAny reports whether [start,end) intersects at least one of
// the intervals. This is the accept/reject check; the write path must re-run
// it against freshly read rows inside the same transaction that persists
// the booking.
func RangeOverlapsAny(start, end int, intervals []Interval) bool {
	for _, iv := range intervals {
		if RangesOverlap(start, end, iv.Start, iv.End) {
			return true
		}
	}
	return false
}

// DisabledTimeSlots marks every step-aligned time point inside each booked
// interval. The result decorates start option lists directly: a start
// landing inside a booked interval is disabled.
func DisabledTimeSlots(intervals []Interval, step int) map[int]bool {
	if step < MinStep {
		step = MinStep
	}
	disabled := make(map[int]bool)
	for _, iv := range intervals {
		for t := iv.Start; t < iv.End; t += step {
			disabled[t] = true
		}
	}
	return disabled
}

// MarkEndOptions flags each candidate end whose range [start, end) would
// pass through a disabled slot. The scan walks step by step from start and
// short-circuits on the first disabled point.
func MarkEndOptions(start int, candidates []SlotOption, step int, disabled map[int]bool) []SlotOption {
	if step < MinStep {
		step = MinStep
	}
	out := make([]SlotOption, len(candidates))
	for i, c := range candidates {
		opt := c
		for t := start; t < c.Minutes; t += step {
			if disabled[t] {
				opt.Disabled = true
				break
			}
		}
		out[i] = opt
	}
	return out
}

// StartHasAnyValidEnd reports whether at least one candidate end in
// [max(minEnd, start+step), maxEnd] yields a range that overlaps no
// interval. A start with no valid end is unbookable and should be hidden
// or disabled upstream.
func StartHasAnyValidEnd(start, minEnd, maxEnd, step int, intervals []Interval) bool {
	if step < MinStep {
		step = MinStep
	}
	first := start + step
	if minEnd > first {
		first = minEnd
	}
	for end := first; end <= maxEnd; end += step {
		if !RangeOverlapsAny(start, end, intervals) {
			return true
		}
	}
	return false
}
