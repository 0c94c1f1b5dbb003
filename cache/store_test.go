package cache

import (
	"context"
	"testing"
	"time"

	"github.com/md-rashed-zaman/clinicbook/appointment"
	"github.com/md-rashed-zaman/clinicbook/schedule"
)

func TestMemory_SchedulesRoundTripAndInvalidate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	if _, ok, _ := m.Schedules(ctx, 7); ok {
		t.Fatal("expected miss on empty store")
	}

	entries := []schedule.Entry{{ID: 1, DoctorID: 7, Date: "2024-06-01"}}
	if err := m.SetSchedules(ctx, 7, entries); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := m.Schedules(ctx, 7)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected entries %+v", got)
	}

	if err := m.InvalidateSchedules(ctx, 7); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, ok, _ := m.Schedules(ctx, 7); ok {
		t.Fatal("expected miss after invalidation")
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)
	now := time.Now()
	m.now = func() time.Time { return now }

	if err := m.SetAppointments(ctx, 5, []appointment.Appointment{{ID: 99}}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, _ := m.Appointments(ctx, 5); !ok {
		t.Fatal("expected hit before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := m.Appointments(ctx, 5); ok {
		t.Fatal("expected miss after expiry")
	}
}

func TestMemory_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	_ = m.SetSchedules(ctx, 7, []schedule.Entry{{ID: 1}})
	_ = m.SetSchedules(ctx, 8, []schedule.Entry{{ID: 2}})
	_ = m.InvalidateSchedules(ctx, 7)

	if _, ok, _ := m.Schedules(ctx, 7); ok {
		t.Fatal("doctor 7 must be invalidated")
	}
	if _, ok, _ := m.Schedules(ctx, 8); !ok {
		t.Fatal("doctor 8 must be untouched")
	}
}
