package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/md-rashed-zaman/clinicbook/appointment"
	"github.com/md-rashed-zaman/clinicbook/schedule"
)

// Redis is a Store for deployments where the SDK runs inside a multi-instance
// BFF and instances should share snapshots. Entries are JSON with a TTL.
type Redis struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedis(rdb *redis.Client, ttl time.Duration, prefix string) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if prefix == "" {
		prefix = "clinicbook"
	}
	return &Redis{rdb: rdb, ttl: ttl, prefix: prefix}
}

func (r *Redis) scheduleKey(doctorID int64) string {
	return fmt.Sprintf("%s:schedules:%d", r.prefix, doctorID)
}

func (r *Redis) appointmentKey(patientID int64) string {
	return fmt.Sprintf("%s:appointments:%d", r.prefix, patientID)
}

func (r *Redis) Schedules(ctx context.Context, doctorID int64) ([]schedule.Entry, bool, error) {
	var entries []schedule.Entry
	ok, err := r.get(ctx, r.scheduleKey(doctorID), &entries)
	return entries, ok, err
}

func (r *Redis) SetSchedules(ctx context.Context, doctorID int64, entries []schedule.Entry) error {
	return r.set(ctx, r.scheduleKey(doctorID), entries)
}

func (r *Redis) InvalidateSchedules(ctx context.Context, doctorID int64) error {
	return r.rdb.Del(ctx, r.scheduleKey(doctorID)).Err()
}

func (r *Redis) Appointments(ctx context.Context, patientID int64) ([]appointment.Appointment, bool, error) {
	var appts []appointment.Appointment
	ok, err := r.get(ctx, r.appointmentKey(patientID), &appts)
	return appts, ok, err
}

func (r *Redis) SetAppointments(ctx context.Context, patientID int64, appts []appointment.Appointment) error {
	return r.set(ctx, r.appointmentKey(patientID), appts)
}

func (r *Redis) InvalidateAppointments(ctx context.Context, patientID int64) error {
	return r.rdb.Del(ctx, r.appointmentKey(patientID)).Err()
}

func (r *Redis) get(ctx context.Context, key string, out any) (bool, error) {
	raw, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// A corrupt snapshot behaves like a miss; the next Set overwrites it.
		return false, nil
	}
	return true, nil
}

func (r *Redis) set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, key, raw, r.ttl).Err()
}
