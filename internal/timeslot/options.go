package timeslot

// Window is the daily operating window, in minutes since midnight.
// Invariant: Start < End.
type Window struct {
	Start int
	End   int
}

// SlotOption is one selectable time point in a picker.
type SlotOption struct {
	Value    string `json:"value"`   // "HH:MM"
	Label    string `json:"label"`   // "H:MM AM/PM"
	Minutes  int    `json:"minutes"` // minutes since midnight
	Disabled bool   `json:"disabled"`
}

// NewSlotOption builds the option for a minute value with Disabled unset.
func NewSlotOption(m int) SlotOption {
	return SlotOption{
		Value:   MinutesToTimeValue(m),
		Label:   MinutesToLabel(m),
		Minutes: m,
	}
}

// BuildTimeOptions enumerates the selectable time points from w.Start to
// w.End inclusive at the given step. The list includes w.End itself when it
// lands exactly on a step boundary. Step is clamped to MinStep.
func BuildTimeOptions(w Window, step int) []SlotOption {
	if step < MinStep {
		step = MinStep
	}
	var opts []SlotOption
	for cur := w.Start; cur <= w.End; cur += step {
		opts = append(opts, NewSlotOption(cur))
	}
	return opts
}

// StartCandidates returns the valid start options for a window. The last
// allowed start is End-step, so a minimum-duration booking always fits.
func StartCandidates(w Window, step int) []SlotOption {
	if step < MinStep {
		step = MinStep
	}
	return BuildTimeOptions(Window{Start: w.Start, End: w.End - step}, step)
}

// EndCandidates returns the end options for a chosen start. The first
// allowed end is start+step, which rules out zero-length and negative
// ranges before any overlap check runs.
func EndCandidates(w Window, start, step int) []SlotOption {
	if step < MinStep {
		step = MinStep
	}
	return BuildTimeOptions(Window{Start: start + step, End: w.End}, step)
}
