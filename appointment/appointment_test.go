package appointment

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"pending":               StatusPending,
		"Pending-Confirmation":  StatusPending,
		"awaiting confirmation": StatusPending,
		"confirmed":             StatusConfirmed,
		"canceled":              StatusCanceled,
		"cancelled":             StatusCanceled,
		"rejected":              StatusRejected,
		"no-show":               StatusUnknown,
		"":                      StatusUnknown,
	}
	for raw, want := range cases {
		if got := ParseStatus(raw); got != want {
			t.Fatalf("ParseStatus(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestValidateCancellation(t *testing.T) {
	if err := ValidateCancellation(Appointment{Status: StatusPending}); err != nil {
		t.Fatalf("pending appointment must be cancelable: %v", err)
	}
	for _, s := range []Status{StatusConfirmed, StatusCanceled, StatusRejected, StatusUnknown} {
		if err := ValidateCancellation(Appointment{Status: s}); !errors.Is(err, ErrNotCancelable) {
			t.Fatalf("status %v: expected ErrNotCancelable, got %v", s, err)
		}
	}
}

func TestValidateCancelReason(t *testing.T) {
	if err := ValidateCancelReason(""); !errors.Is(err, ErrEmptyReason) {
		t.Fatalf("empty reason: expected ErrEmptyReason, got %v", err)
	}
	if err := ValidateCancelReason("  "); !errors.Is(err, ErrEmptyReason) {
		t.Fatalf("whitespace reason: expected ErrEmptyReason, got %v", err)
	}
	if err := ValidateCancelReason("schedule conflict"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
