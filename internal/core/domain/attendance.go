package domain

import "time"

// PunchType is one attendance clock event.
type PunchType string

const (
	PunchIn         PunchType = "in"
	PunchOut        PunchType = "out"
	PunchBreakStart PunchType = "break_start"
	PunchBreakEnd   PunchType = "break_end"
)

// validPunches defines which punch may follow the last recorded one. The
// empty key is the start of a day.
var validPunches = map[PunchType][]PunchType{
	"":              {PunchIn},
	PunchIn:         {PunchOut, PunchBreakStart},
	PunchBreakStart: {PunchBreakEnd},
	PunchBreakEnd:   {PunchOut, PunchBreakStart},
	PunchOut:        {PunchIn},
}

// CanFollow reports whether next is a valid punch after p.
func (p PunchType) CanFollow(next PunchType) bool {
	for _, allowed := range validPunches[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Known reports whether p is one of the defined punch types.
func (p PunchType) Known() bool {
	switch p {
	case PunchIn, PunchOut, PunchBreakStart, PunchBreakEnd:
		return true
	}
	return false
}

// PunchEntry is one recorded clock event.
type PunchEntry struct {
	Type PunchType `json:"type"`
	At   time.Time `json:"at"`
}

// AttendanceStatus summarizes the worker's current day.
type AttendanceStatus struct {
	ClockedIn bool         `json:"clocked_in"`
	OnBreak   bool         `json:"on_break"`
	Entries   []PunchEntry `json:"entries"`
}
