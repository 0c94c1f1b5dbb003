// Package schedule holds a doctor's published schedule entries and the
// slot-allocation rules that decide whether an entry can still take a booking.
package schedule

import "strings"

// Status is the lifecycle state of a schedule entry. Backend labels are mapped
// onto this enumeration at the API boundary; decision logic never sees raw strings.
type Status int

const (
	StatusUnknown Status = iota
	StatusActive
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ParseStatus maps a backend status label onto the closed enumeration.
// Unrecognized labels map to StatusUnknown, which is never bookable.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active", "open":
		return StatusActive
	case "closed", "inactive", "full":
		return StatusClosed
	default:
		return StatusUnknown
	}
}

// Entry is one doctor-shift offering: a date, a shift time window and a patient
// capacity. Entries are authored by the backend; the client holds short-lived,
// non-authoritative copies and never mutates BookedPatients locally.
type Entry struct {
	ID             int64
	DoctorID       int64
	Date           string // calendar date, YYYY-MM-DD, no time component
	Shift          string // backend label, e.g. morning/afternoon/evening
	StartTime      string // local wall clock, HH:MM
	EndTime        string // local wall clock, HH:MM
	Location       string
	MaxPatients    int
	BookedPatients int
	Status         Status
	RawStatus      string // backend label as received, for display only
}
