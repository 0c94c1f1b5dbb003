// Package cache holds short-lived, non-authoritative snapshots of backend
// data. Snapshots are dropped, never patched, after any mutating call, so
// capacity counters can only come from a fresh fetch.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/md-rashed-zaman/clinicbook/appointment"
	"github.com/md-rashed-zaman/clinicbook/schedule"
)

// DefaultTTL bounds how stale a snapshot can get even without a mutation.
const DefaultTTL = 30 * time.Second

// Store is a snapshot cache keyed per doctor (schedules) and per patient
// (appointments). The bool result reports a hit.
type Store interface {
	Schedules(ctx context.Context, doctorID int64) ([]schedule.Entry, bool, error)
	SetSchedules(ctx context.Context, doctorID int64, entries []schedule.Entry) error
	InvalidateSchedules(ctx context.Context, doctorID int64) error

	Appointments(ctx context.Context, patientID int64) ([]appointment.Appointment, bool, error)
	SetAppointments(ctx context.Context, patientID int64, appts []appointment.Appointment) error
	InvalidateAppointments(ctx context.Context, patientID int64) error
}

type memoryEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// Memory is a single-process Store with per-entry TTL.
type Memory struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	schedules map[int64]memoryEntry[[]schedule.Entry]
	appts     map[int64]memoryEntry[[]appointment.Appointment]
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		ttl:       ttl,
		now:       time.Now,
		schedules: make(map[int64]memoryEntry[[]schedule.Entry]),
		appts:     make(map[int64]memoryEntry[[]appointment.Appointment]),
	}
}

func (m *Memory) Schedules(_ context.Context, doctorID int64) ([]schedule.Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.schedules[doctorID]
	if !ok || m.now().After(e.expiresAt) {
		delete(m.schedules, doctorID)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *Memory) SetSchedules(_ context.Context, doctorID int64, entries []schedule.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[doctorID] = memoryEntry[[]schedule.Entry]{value: entries, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) InvalidateSchedules(_ context.Context, doctorID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.schedules, doctorID)
	return nil
}

func (m *Memory) Appointments(_ context.Context, patientID int64) ([]appointment.Appointment, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.appts[patientID]
	if !ok || m.now().After(e.expiresAt) {
		delete(m.appts, patientID)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *Memory) SetAppointments(_ context.Context, patientID int64, appts []appointment.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appts[patientID] = memoryEntry[[]appointment.Appointment]{value: appts, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) InvalidateAppointments(_ context.Context, patientID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.appts, patientID)
	return nil
}
