package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded means the entry has no remaining capacity.
	ErrCapacityExceeded = errors.New("schedule capacity exceeded")
	// ErrScheduleClosed means the entry is not accepting bookings.
	ErrScheduleClosed = errors.New("schedule is closed")
)

// IntegrityError reports a booked count outside [0, MaxPatients]. It indicates
// backend/client desync and must be surfaced, never clamped; the entry is
// treated as not bookable regardless of its nominal status.
type IntegrityError struct {
	EntryID int64
	Booked  int
	Max     int
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("schedule entry %d: booked count %d outside capacity [0, %d]", e.EntryID, e.Booked, e.Max)
}

// IsIntegrity reports whether err is (or wraps) an IntegrityError.
func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}

// RemainingCapacity returns MaxPatients - BookedPatients. A booked count below
// zero or above capacity yields an IntegrityError alongside the raw value.
func RemainingCapacity(e Entry) (int, error) {
	remaining := e.MaxPatients - e.BookedPatients
	if e.BookedPatients < 0 || e.BookedPatients > e.MaxPatients {
		return remaining, &IntegrityError{EntryID: e.ID, Booked: e.BookedPatients, Max: e.MaxPatients}
	}
	return remaining, nil
}

// Bookable reports whether e is active and has remaining capacity. Entries with
// integrity faults are never bookable.
func Bookable(e Entry) bool {
	return ValidateBooking(e) == nil
}

// ValidateBooking is the advisory pre-flight check for a booking attempt.
// It is purely local: the backend remains the final arbiter, and a backend
// conflict after a passing validation must be handled the same way as a local
// failure. The allocator never mutates the entry; capacity accounting belongs
// to the backend, and a snapshot is stale after any mutating call.
func ValidateBooking(e Entry) error {
	remaining, err := RemainingCapacity(e)
	if err != nil {
		return err
	}
	if e.Status != StatusActive {
		return ErrScheduleClosed
	}
	if remaining <= 0 {
		return ErrCapacityExceeded
	}
	return nil
}
