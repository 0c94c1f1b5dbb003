package cache

import (
	"context"

	"github.com/md-rashed-zaman/clinicbook/appointment"
	"github.com/md-rashed-zaman/clinicbook/clinic"
	"github.com/md-rashed-zaman/clinicbook/schedule"
)

// Backend wraps a clinic client with read-through snapshot caching. Reads that
// miss go to the backend and populate the store; mutations always go to the
// backend and drop the affected snapshots. It satisfies the workflow Backend
// and Invalidator interfaces.
type Backend struct {
	client *clinic.Client
	store  Store
}

func NewBackend(client *clinic.Client, store Store) *Backend {
	return &Backend{client: client, store: store}
}

func (b *Backend) Doctor(ctx context.Context, doctorID int64) (clinic.Doctor, error) {
	return b.client.Doctor(ctx, doctorID)
}

func (b *Backend) PatientByUserID(ctx context.Context, userID int64) (clinic.Patient, error) {
	return b.client.PatientByUserID(ctx, userID)
}

func (b *Backend) SchedulesForDoctor(ctx context.Context, doctorID int64) ([]schedule.Entry, error) {
	if entries, ok, err := b.store.Schedules(ctx, doctorID); err == nil && ok {
		return entries, nil
	}
	entries, err := b.client.SchedulesForDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	_ = b.store.SetSchedules(ctx, doctorID, entries)
	return entries, nil
}

func (b *Backend) AppointmentsForPatient(ctx context.Context, patientID int64) ([]appointment.Appointment, error) {
	if appts, ok, err := b.store.Appointments(ctx, patientID); err == nil && ok {
		return appts, nil
	}
	appts, err := b.client.AppointmentsForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	_ = b.store.SetAppointments(ctx, patientID, appts)
	return appts, nil
}

func (b *Backend) CreateAppointment(ctx context.Context, req clinic.CreateAppointmentRequest) (appointment.Appointment, error) {
	appt, err := b.client.CreateAppointment(ctx, req)
	if err != nil {
		return appointment.Appointment{}, err
	}
	// Capacity changed on the backend; the snapshots are stale now.
	_ = b.store.InvalidateSchedules(ctx, req.DoctorID)
	_ = b.store.InvalidateAppointments(ctx, req.PatientID)
	return appt, nil
}

func (b *Backend) CancelAppointment(ctx context.Context, req clinic.CancelAppointmentRequest) (appointment.Appointment, error) {
	appt, err := b.client.CancelAppointment(ctx, req)
	if err != nil {
		return appointment.Appointment{}, err
	}
	_ = b.store.InvalidateSchedules(ctx, appt.DoctorID)
	_ = b.store.InvalidateAppointments(ctx, appt.PatientID)
	return appt, nil
}

func (b *Backend) InvalidateSchedules(ctx context.Context, doctorID int64) error {
	return b.store.InvalidateSchedules(ctx, doctorID)
}

func (b *Backend) InvalidateAppointments(ctx context.Context, patientID int64) error {
	return b.store.InvalidateAppointments(ctx, patientID)
}
