package clinic

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/md-rashed-zaman/clinicbook/appointment"
)

type appointmentDTO struct {
	ID               int64  `json:"id"`
	PatientID        int64  `json:"patientId"`
	PatientName      string `json:"patientName"`
	DoctorID         int64  `json:"doctorId"`
	DoctorName       string `json:"doctorName"`
	DoctorScheduleID int64  `json:"doctorScheduleId"`
	RoomName         string `json:"roomName"`
	AppointmentDate  string `json:"appointmentDate"`
	AppointmentTime  string `json:"appointmentTime"`
	Status           string `json:"status"`
	CancelReason     string `json:"cancelReason"`
	CreatedAt        string `json:"createdAt"`
}

func (d appointmentDTO) toAppointment() appointment.Appointment {
	appt := appointment.Appointment{
		ID:              d.ID,
		PatientID:       d.PatientID,
		PatientName:     d.PatientName,
		DoctorID:        d.DoctorID,
		DoctorName:      d.DoctorName,
		ScheduleEntryID: d.DoctorScheduleID,
		RoomName:        d.RoomName,
		Date:            d.AppointmentDate,
		Time:            d.AppointmentTime,
		Status:          appointment.ParseStatus(d.Status),
		RawStatus:       d.Status,
		CancelReason:    d.CancelReason,
	}
	if t, err := time.Parse(time.RFC3339, d.CreatedAt); err == nil {
		appt.CreatedAt = t
	}
	return appt
}

// CreateAppointmentRequest is the booking intent: one unit of capacity on one
// schedule entry for one patient with one doctor. It exists only for the
// duration of the call.
type CreateAppointmentRequest struct {
	PatientID        int64  `json:"patientId"`
	DoctorID         int64  `json:"doctorId"`
	DoctorScheduleID int64  `json:"doctorScheduleId"`
	AppointmentTime  string `json:"appointmentTime"`
	RequestedAt      string `json:"requestedAt"`
}

// CreateAppointment submits a booking. The backend is the final arbiter of
// capacity: a 409 means the slot filled between the local check and now, and
// callers recognize it with IsConflict. Each submission carries an
// Idempotency-Key so a retried request cannot double-book.
func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (appointment.Appointment, error) {
	if req.RequestedAt == "" {
		req.RequestedAt = time.Now().UTC().Format(time.RFC3339)
	}
	header := http.Header{"Idempotency-Key": []string{uuid.NewString()}}

	var dto appointmentDTO
	if err := c.post(ctx, "/appointments", req, &dto, header); err != nil {
		return appointment.Appointment{}, err
	}
	return dto.toAppointment(), nil
}

// CancelAppointmentRequest carries the mandatory reason and the acting user.
type CancelAppointmentRequest struct {
	AppointmentID   int64  `json:"appointmentId"`
	Reason          string `json:"reason"`
	UpdatedByUserID int64  `json:"updatedByUserId"`
}

type setAppointmentStatusRequest struct {
	AppointmentID   int64  `json:"appointmentId"`
	Status          string `json:"status"`
	Reason          string `json:"reason"`
	UpdatedByUserID int64  `json:"updatedByUserId"`
}

// CancelAppointment asks the backend to move the appointment to canceled.
// Capacity release happens on the backend; local snapshots are stale afterwards.
func (c *Client) CancelAppointment(ctx context.Context, req CancelAppointmentRequest) (appointment.Appointment, error) {
	body := setAppointmentStatusRequest{
		AppointmentID:   req.AppointmentID,
		Status:          "canceled",
		Reason:          req.Reason,
		UpdatedByUserID: req.UpdatedByUserID,
	}
	var dto appointmentDTO
	if err := c.post(ctx, "/appointments/status", body, &dto, nil); err != nil {
		return appointment.Appointment{}, err
	}
	return dto.toAppointment(), nil
}

func (c *Client) AppointmentsForPatient(ctx context.Context, patientID int64) ([]appointment.Appointment, error) {
	var dtos []appointmentDTO
	if err := c.get(ctx, fmt.Sprintf("/appointments/patient/%d", patientID), &dtos); err != nil {
		return nil, err
	}
	appts := make([]appointment.Appointment, 0, len(dtos))
	for _, d := range dtos {
		appts = append(appts, d.toAppointment())
	}
	return appts, nil
}
