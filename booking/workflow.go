// Package booking drives the patient-side booking flow: load doctor, patient
// and schedule snapshots, walk date and schedule selection, then submit the
// booking to the backend, which has the final word on capacity.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/md-rashed-zaman/clinicbook/appointment"
	"github.com/md-rashed-zaman/clinicbook/clinic"
	"github.com/md-rashed-zaman/clinicbook/schedule"
)

// State is the workflow position. StateSucceeded and StateFailed are terminal.
type State int

const (
	StateSelectingDoctor State = iota
	StateSelectingDate
	StateSelectingSchedule
	StateConfirming
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSelectingDoctor:
		return "selecting-doctor"
	case StateSelectingDate:
		return "selecting-date"
	case StateSelectingSchedule:
		return "selecting-schedule"
	case StateConfirming:
		return "confirming"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrLoadFailed marks an entry-fetch failure, as opposed to a booking failure.
	ErrLoadFailed = errors.New("booking: initial load failed")
	// ErrInvalidTransition means the call does not apply to the current state.
	ErrInvalidTransition = errors.New("booking: operation not valid in current state")
	// ErrUnknownDate means the date is not in the doctor's schedule catalog.
	ErrUnknownDate = errors.New("booking: date not offered by this doctor")
	// ErrUnknownSchedule means the entry ID is not in the loaded snapshot.
	ErrUnknownSchedule = errors.New("booking: unknown schedule entry")
	// ErrSubmissionInFlight rejects overlapping Confirm calls on one instance.
	ErrSubmissionInFlight = errors.New("booking: submission already in flight")
)

// Backend is the slice of the clinic client the workflow needs.
type Backend interface {
	Doctor(ctx context.Context, doctorID int64) (clinic.Doctor, error)
	PatientByUserID(ctx context.Context, userID int64) (clinic.Patient, error)
	SchedulesForDoctor(ctx context.Context, doctorID int64) ([]schedule.Entry, error)
	CreateAppointment(ctx context.Context, req clinic.CreateAppointmentRequest) (appointment.Appointment, error)
}

// Invalidator drops cached snapshots after a confirmed mutation. Snapshots are
// never patched in place.
type Invalidator interface {
	InvalidateSchedules(ctx context.Context, doctorID int64) error
	InvalidateAppointments(ctx context.Context, patientID int64) error
}

// Workflow is a single-session booking flow. One instance serves one screen;
// instances share nothing.
type Workflow struct {
	backend Backend
	inv     Invalidator
	logger  *slog.Logger

	mu           sync.Mutex
	state        State
	userID       int64
	doctorID     int64
	doctor       clinic.Doctor
	patient      clinic.Patient
	entries      []schedule.Entry
	selectedDate string
	selected     *schedule.Entry
	inFlight     bool
	failure      error
	result       appointment.Appointment
}

type Option func(*Workflow)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) { w.logger = logger }
}

// WithInvalidator wires a snapshot cache to be dropped on successful mutation.
func WithInvalidator(inv Invalidator) Option {
	return func(w *Workflow) { w.inv = inv }
}

// New starts a workflow for the given doctor on behalf of the session user.
// The user identity comes in explicitly; the workflow reads no ambient state.
func New(backend Backend, userID, doctorID int64, opts ...Option) *Workflow {
	w := &Workflow{
		backend:  backend,
		logger:   slog.New(slog.DiscardHandler),
		state:    StateSelectingDoctor,
		userID:   userID,
		doctorID: doctorID,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start fetches the doctor detail, the patient record and the schedule catalog
// as three concurrent reads and advances to date selection once all resolve.
// Any failure moves the workflow to StateFailed with a load error.
func (w *Workflow) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.state != StateSelectingDoctor {
		w.mu.Unlock()
		return ErrInvalidTransition
	}
	w.mu.Unlock()

	var (
		doctor  clinic.Doctor
		patient clinic.Patient
		entries []schedule.Entry
	)
	errc := make(chan error, 3)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		doctor, err = w.backend.Doctor(ctx, w.doctorID)
		errc <- err
	}()
	go func() {
		defer wg.Done()
		var err error
		patient, err = w.backend.PatientByUserID(ctx, w.userID)
		errc <- err
	}()
	go func() {
		defer wg.Done()
		var err error
		entries, err = w.backend.SchedulesForDoctor(ctx, w.doctorID)
		errc <- err
	}()
	wg.Wait()
	close(errc)

	for err := range errc {
		if err != nil {
			loadErr := fmt.Errorf("%w: %w", ErrLoadFailed, err)
			w.mu.Lock()
			w.state = StateFailed
			w.failure = loadErr
			w.mu.Unlock()
			w.logger.Warn("booking load failed", "doctor_id", w.doctorID, "err", err)
			return loadErr
		}
	}

	w.mu.Lock()
	w.doctor = doctor
	w.patient = patient
	w.entries = entries
	w.state = StateSelectingDate
	// Default-select the first entry so the UI has a starting point. The
	// selection is still validated on SelectSchedule/Confirm.
	if len(entries) > 0 {
		w.selected = &entries[0]
	}
	w.mu.Unlock()

	w.logger.Info("booking started",
		"doctor_id", w.doctorID,
		"patient_id", patient.ID,
		"schedule_entries", len(entries),
	)
	return nil
}

// Dates lists the distinct dates offered by the doctor, in catalog order.
func (w *Workflow) Dates() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return schedule.UniqueDates(w.entries)
}

// EntriesForDate lists the entries for one date, in catalog order.
func (w *Workflow) EntriesForDate(date string) []schedule.Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return schedule.EntriesForDate(w.entries, date)
}

func (w *Workflow) Doctor() clinic.Doctor {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doctor
}

func (w *Workflow) Patient() clinic.Patient {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.patient
}

// SelectDate picks one of the offered dates and pre-selects the first entry
// for it. Re-selecting a date while choosing a schedule is allowed.
func (w *Workflow) SelectDate(date string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateSelectingDate && w.state != StateSelectingSchedule {
		return ErrInvalidTransition
	}
	forDate := schedule.EntriesForDate(w.entries, date)
	if len(forDate) == 0 {
		return ErrUnknownDate
	}
	w.selectedDate = date
	w.selected = &forDate[0]
	w.state = StateSelectingSchedule
	return nil
}

// SelectSchedule picks a specific entry. A non-bookable entry is rejected with
// the allocator's error and the workflow stays in schedule selection.
func (w *Workflow) SelectSchedule(entryID int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateSelectingSchedule && w.state != StateConfirming {
		return ErrInvalidTransition
	}
	var entry *schedule.Entry
	for i := range w.entries {
		if w.entries[i].ID == entryID {
			entry = &w.entries[i]
			break
		}
	}
	if entry == nil {
		return ErrUnknownSchedule
	}
	if err := schedule.ValidateBooking(*entry); err != nil {
		w.logger.Info("schedule selection rejected", "entry_id", entryID, "err", err)
		return err
	}
	w.selected = entry
	w.selectedDate = entry.Date
	w.state = StateConfirming
	return nil
}

// Selected returns the currently selected entry, if any.
func (w *Workflow) Selected() (schedule.Entry, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.selected == nil {
		return schedule.Entry{}, false
	}
	return *w.selected, true
}

// Confirm re-validates the selection and submits the booking. A local
// validation failure keeps the workflow in Confirming. A backend conflict
// (the slot filled in a race) fails the submission and returns the workflow
// to schedule selection with the snapshot invalidated; any other backend
// failure is terminal. The result is never assumed locally: only the
// backend's response transitions the workflow to success.
func (w *Workflow) Confirm(ctx context.Context) (appointment.Appointment, error) {
	w.mu.Lock()
	if w.state != StateConfirming {
		w.mu.Unlock()
		return appointment.Appointment{}, ErrInvalidTransition
	}
	if w.inFlight {
		w.mu.Unlock()
		return appointment.Appointment{}, ErrSubmissionInFlight
	}
	entry := *w.selected
	if err := schedule.ValidateBooking(entry); err != nil {
		w.mu.Unlock()
		return appointment.Appointment{}, err
	}
	w.inFlight = true
	req := clinic.CreateAppointmentRequest{
		PatientID:        w.patient.ID,
		DoctorID:         w.doctorID,
		DoctorScheduleID: entry.ID,
		AppointmentTime:  entry.StartTime,
	}
	w.mu.Unlock()

	appt, err := w.backend.CreateAppointment(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false

	if err != nil {
		if clinic.IsConflict(err) {
			// Race lost: someone took the last slot after our local check.
			// The snapshot is stale, so drop it and let the user pick again.
			w.state = StateSelectingSchedule
			w.selected = nil
			w.invalidate(ctx)
			w.logger.Info("booking conflict", "entry_id", entry.ID, "err", err)
			return appointment.Appointment{}, fmt.Errorf("slot no longer available: %w", err)
		}
		w.state = StateFailed
		w.failure = err
		w.logger.Warn("booking failed", "entry_id", entry.ID, "err", err)
		return appointment.Appointment{}, err
	}

	w.state = StateSucceeded
	w.result = appt
	w.invalidate(ctx)
	w.logger.Info("booking confirmed", "appointment_id", appt.ID, "entry_id", entry.ID)
	return appt, nil
}

// RefreshSchedules re-fetches the doctor's catalog, e.g. after a conflict.
func (w *Workflow) RefreshSchedules(ctx context.Context) error {
	w.mu.Lock()
	if w.state != StateSelectingDate && w.state != StateSelectingSchedule {
		w.mu.Unlock()
		return ErrInvalidTransition
	}
	w.mu.Unlock()

	entries, err := w.backend.SchedulesForDoctor(ctx, w.doctorID)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = entries
	if w.selectedDate != "" && len(schedule.EntriesForDate(entries, w.selectedDate)) == 0 {
		w.selectedDate = ""
		w.selected = nil
		w.state = StateSelectingDate
	}
	return nil
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Err returns the terminal failure reason, if the workflow failed.
func (w *Workflow) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failure
}

// Result returns the confirmed appointment once the workflow succeeded.
func (w *Workflow) Result() (appointment.Appointment, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateSucceeded {
		return appointment.Appointment{}, false
	}
	return w.result, true
}

// invalidate drops cached snapshots after a mutation. Best effort: a cache
// miss later just re-fetches. Caller holds w.mu.
func (w *Workflow) invalidate(ctx context.Context) {
	if w.inv == nil {
		return
	}
	if err := w.inv.InvalidateSchedules(ctx, w.doctorID); err != nil {
		w.logger.Warn("schedule cache invalidation failed", "doctor_id", w.doctorID, "err", err)
	}
	if err := w.inv.InvalidateAppointments(ctx, w.patient.ID); err != nil {
		w.logger.Warn("appointment cache invalidation failed", "patient_id", w.patient.ID, "err", err)
	}
}
