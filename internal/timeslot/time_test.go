package timeslot

import "testing"

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"08:00", 480},
		{"8:0", 480},
		{"17:00", 1020},
		{"00:00", 0},
		{"23:59", 1439},
		// Clamping, not carrying: "23:75" pins the minute to 59.
		{"23:75", 1439},
		{"25:00", 1380},
		{"-1:30", 30},
		{"12:-5", 720},
		// Malformed input degrades to start of day.
		{"", 0},
		{"abc", 0},
		{"ab:cd", 0},
		{":30", 30},
		{"9:", 540},
		{"9", 540},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseTimeToMinutes(tt.input)
			if got != tt.expected {
				t.Errorf("ParseTimeToMinutes(%q): expected %d, got %d", tt.input, tt.expected, got)
			}
		})
	}
}

func TestMinutesToTimeValue(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
	}{
		{0, "00:00"},
		{480, "08:00"},
		{510, "08:30"},
		{1020, "17:00"},
		{1439, "23:59"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := MinutesToTimeValue(tt.minutes)
			if got != tt.expected {
				t.Errorf("MinutesToTimeValue(%d): expected %q, got %q", tt.minutes, tt.expected, got)
			}
		})
	}
}

func TestMinutesToLabel(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
	}{
		{0, "12:00 AM"},
		{30, "12:30 AM"},
		{510, "8:30 AM"},
		{720, "12:00 PM"},
		{750, "12:30 PM"},
		{1020, "5:00 PM"},
		{1439, "11:59 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := MinutesToLabel(tt.minutes)
			if got != tt.expected {
				t.Errorf("MinutesToLabel(%d): expected %q, got %q", tt.minutes, tt.expected, got)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for m := 0; m < 1440; m++ {
		if got := ParseTimeToMinutes(MinutesToTimeValue(m)); got != m {
			t.Fatalf("round trip failed for %d: got %d", m, got)
		}
	}
}
