package clinic

import (
	"context"
	"fmt"

	"github.com/md-rashed-zaman/clinicbook/schedule"
)

// scheduleDTO mirrors the backend's wire shape, which mixes camelCase and
// snake_case field names.
type scheduleDTO struct {
	ID             int64  `json:"id"`
	DoctorID       int64  `json:"doctorId"`
	Date           string `json:"date"`
	Shift          string `json:"shift"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Location       string `json:"location"`
	MaxPatients    int    `json:"maxPatients"`
	BookedPatients int    `json:"bookedPatients"`
	Status         string `json:"status"`
}

func (d scheduleDTO) toEntry() schedule.Entry {
	// The backend omits the status field on published entries; absence means
	// the entry is open for booking.
	status := schedule.StatusActive
	if d.Status != "" {
		status = schedule.ParseStatus(d.Status)
	}
	return schedule.Entry{
		ID:             d.ID,
		DoctorID:       d.DoctorID,
		Date:           d.Date,
		Shift:          d.Shift,
		StartTime:      d.StartTime,
		EndTime:        d.EndTime,
		Location:       d.Location,
		MaxPatients:    d.MaxPatients,
		BookedPatients: d.BookedPatients,
		Status:         status,
		RawStatus:      d.Status,
	}
}

// SchedulesForDoctor fetches the doctor's published schedule entries. The
// result is a point-in-time snapshot; it is stale after any booking or
// cancellation and must be re-fetched rather than patched.
func (c *Client) SchedulesForDoctor(ctx context.Context, doctorID int64) ([]schedule.Entry, error) {
	var dtos []scheduleDTO
	if err := c.get(ctx, fmt.Sprintf("/doctors/%d/schedules", doctorID), &dtos); err != nil {
		return nil, err
	}
	entries := make([]schedule.Entry, 0, len(dtos))
	for _, d := range dtos {
		entries = append(entries, d.toEntry())
	}
	return entries, nil
}
