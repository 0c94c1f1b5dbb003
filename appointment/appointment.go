package appointment

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotCancelable means the appointment's status does not permit cancellation.
	ErrNotCancelable = errors.New("appointment is not cancelable")
	// ErrEmptyReason means the cancellation reason is empty or whitespace-only.
	ErrEmptyReason = errors.New("cancellation reason is required")
)

// Appointment is the backend-owned record returned after a successful booking.
// The client only ever reflects remote state; status transitions happen on the
// backend and show up in the next fetch.
type Appointment struct {
	ID              int64
	PatientID       int64
	PatientName     string
	DoctorID        int64
	DoctorName      string
	ScheduleEntryID int64
	RoomName        string
	Date            string // YYYY-MM-DD
	Time            string // HH:MM, may be empty until the clinic assigns one
	Status          Status
	RawStatus       string // backend label as received, for display only
	CancelReason    string
	CanceledAt      *time.Time
	CreatedAt       time.Time
}

// Cancelable reports whether the appointment is still awaiting confirmation.
func (a Appointment) Cancelable() bool {
	return a.Status == StatusPending
}

// ValidateCancellation is the advisory pre-flight check for a cancellation
// attempt. Like booking validation it is local only; the backend will also
// reject cancellation of a non-pending appointment.
func ValidateCancellation(a Appointment) error {
	if !a.Cancelable() {
		return ErrNotCancelable
	}
	return nil
}

// ValidateCancelReason rejects empty and whitespace-only reasons before any
// request is sent.
func ValidateCancelReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrEmptyReason
	}
	return nil
}
