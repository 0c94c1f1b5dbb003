// Package cancel drives the patient-side cancellation flow: a pending
// appointment, a mandatory reason, one submission. Capacity release happens on
// the backend; the workflow only invalidates local snapshots afterwards.
package cancel

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/md-rashed-zaman/clinicbook/appointment"
	"github.com/md-rashed-zaman/clinicbook/clinic"
)

type State int

const (
	StateViewing State = iota
	StateReasonEntry
	StateConfirming
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateViewing:
		return "viewing"
	case StateReasonEntry:
		return "reason-entry"
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
	ErrInvalidTransition  = errors.New("cancel: operation not valid in current state")
	ErrSubmissionInFlight = errors.New("cancel: submission already in flight")
)

// Backend is the slice of the clinic client the workflow needs.
type Backend interface {
	CancelAppointment(ctx context.Context, req clinic.CancelAppointmentRequest) (appointment.Appointment, error)
}

// Invalidator drops cached snapshots after a confirmed cancellation, since the
// freed capacity changes the doctor's schedule.
type Invalidator interface {
	InvalidateSchedules(ctx context.Context, doctorID int64) error
	InvalidateAppointments(ctx context.Context, patientID int64) error
}

// Workflow is a single-session cancellation flow over one appointment.
type Workflow struct {
	backend Backend
	inv     Invalidator
	logger  *slog.Logger

	mu       sync.Mutex
	state    State
	appt     appointment.Appointment
	actorID  int64
	reason   string
	inFlight bool
	failure  error
	result   appointment.Appointment
}

type Option func(*Workflow)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) { w.logger = logger }
}

func WithInvalidator(inv Invalidator) Option {
	return func(w *Workflow) { w.inv = inv }
}

// New views an appointment on behalf of the acting user.
func New(backend Backend, appt appointment.Appointment, actorID int64, opts ...Option) *Workflow {
	w := &Workflow{
		backend: backend,
		logger:  slog.New(slog.DiscardHandler),
		state:   StateViewing,
		appt:    appt,
		actorID: actorID,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CanCancel reports whether the cancel affordance should be offered at all.
// This is a UI gate, not a hard block: the backend re-checks on submission.
func (w *Workflow) CanCancel() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.appt.Cancelable()
}

// RequestCancel moves from viewing to reason entry. Non-cancelable
// appointments are rejected with ErrNotCancelable.
func (w *Workflow) RequestCancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateViewing {
		return ErrInvalidTransition
	}
	if err := appointment.ValidateCancellation(w.appt); err != nil {
		return err
	}
	w.state = StateReasonEntry
	return nil
}

// SetReason records the cancellation reason. An empty or whitespace-only
// reason keeps the workflow in reason entry with confirmation disabled.
func (w *Workflow) SetReason(reason string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateReasonEntry && w.state != StateConfirming {
		return ErrInvalidTransition
	}
	if err := appointment.ValidateCancelReason(reason); err != nil {
		w.state = StateReasonEntry
		return err
	}
	w.reason = reason
	w.state = StateConfirming
	return nil
}

// Confirm submits the cancellation. Success invalidates cached schedule and
// appointment snapshots rather than patching them; failure is terminal with
// the backend's reason and no retry.
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
	if err := appointment.ValidateCancelReason(w.reason); err != nil {
		w.mu.Unlock()
		return appointment.Appointment{}, err
	}
	w.inFlight = true
	req := clinic.CancelAppointmentRequest{
		AppointmentID:   w.appt.ID,
		Reason:          w.reason,
		UpdatedByUserID: w.actorID,
	}
	w.mu.Unlock()

	appt, err := w.backend.CancelAppointment(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false

	if err != nil {
		w.state = StateFailed
		w.failure = err
		w.logger.Warn("cancellation failed", "appointment_id", w.appt.ID, "err", err)
		return appointment.Appointment{}, err
	}

	w.state = StateSucceeded
	w.result = appt
	if w.inv != nil {
		if err := w.inv.InvalidateSchedules(ctx, w.appt.DoctorID); err != nil {
			w.logger.Warn("schedule cache invalidation failed", "doctor_id", w.appt.DoctorID, "err", err)
		}
		if err := w.inv.InvalidateAppointments(ctx, w.appt.PatientID); err != nil {
			w.logger.Warn("appointment cache invalidation failed", "patient_id", w.appt.PatientID, "err", err)
		}
	}
	w.logger.Info("appointment canceled", "appointment_id", w.appt.ID)
	return appt, nil
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

// Result returns the canceled appointment once the workflow succeeded.
func (w *Workflow) Result() (appointment.Appointment, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateSucceeded {
		return appointment.Appointment{}, false
	}
	return w.result, true
}
