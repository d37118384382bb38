// Package timeslot implements the slot and overlap arithmetic shared by the
// booking form endpoints and the storage write path. All functions are pure
// and total: they take their inputs explicitly, hold no state and never fail,
// so the same code can run for any number of concurrent requests.
package timeslot

import (
	"fmt"
	"strconv"
	"strings"
)

// MinStep is the smallest allowed slot step in minutes. Smaller values are
// treated as misconfiguration and clamped up.
const MinStep = 5

// ParseTimeToMinutes converts an "HH:MM" (or "H:M") string to minutes since
// midnight. It never fails: a non-numeric part counts as 0 and hour/minute
// are clamped to [0,23] and [0,59] independently, without carrying overflow,
// so "23:75" becomes 23:59 rather than rolling into the next day. Malformed
// input degrades to 00:00 instead of propagating a parse error.
func ParseTimeToMinutes(s string) int {
	parts := strings.Split(s, ":")
	hour := 0
	minute := 0
	if len(parts) > 0 {
		if v, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
			hour = v
		}
	}
	if len(parts) > 1 {
		if v, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			minute = v
		}
	}
	hour = clamp(hour, 0, 23)
	minute = clamp(minute, 0, 59)
	return hour*60 + minute
}

// MinutesToTimeValue formats minutes since midnight as a zero-padded
// 24-hour "HH:MM" string.
func MinutesToTimeValue(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// MinutesToLabel formats minutes since midnight as a 12-hour display label,
// e.g. "8:30 AM". Hours 0 and 12 both map to "12".
func MinutesToLabel(m int) string {
	hour24 := m / 60
	hour12 := (hour24+11)%12 + 1
	suffix := "AM"
	if hour24 >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour12, m%60, suffix)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
