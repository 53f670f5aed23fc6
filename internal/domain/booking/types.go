package booking

import "errors"

var ErrInvalidStatus = errors.New("invalid booking status")

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusConfirmed Status = "confirmed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusCompleted, StatusCancelled, StatusConfirmed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the booking can never change again.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsPinned reports whether the status was fixed by an explicit action
// and is exempt from time derivation. Terminal statuses are pinned;
// confirmed is pinned but not terminal.
func (s Status) IsPinned() bool {
	return s.IsTerminal() || s == StatusConfirmed
}
