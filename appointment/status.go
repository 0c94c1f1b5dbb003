// Package appointment models the backend's confirmed appointment records and
// the rules for when a patient may cancel one.
package appointment

import "strings"

// Status is the closed enumeration of appointment states. The backend reports
// free-text labels; ParseStatus maps them at the boundary so that raw strings
// never reach cancellation decision logic.
type Status int

const (
	StatusUnknown Status = iota
	// StatusPending is "awaiting confirmation", the only cancelable state.
	StatusPending
	StatusConfirmed
	StatusCanceled
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	case StatusCanceled:
		return "canceled"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ParseStatus maps a backend status label onto the enumeration. Matching is
// case- and whitespace-insensitive.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "pending-confirmation", "awaiting confirmation", "unconfirmed":
		return StatusPending
	case "confirmed", "approved":
		return StatusConfirmed
	case "canceled", "cancelled":
		return StatusCanceled
	case "rejected", "declined":
		return StatusRejected
	default:
		return StatusUnknown
	}
}
