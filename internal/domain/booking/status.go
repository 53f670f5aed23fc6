package booking

import (
	"time"

	"github.com/google/uuid"
)

// EffectiveStatus derives the status a booking presents at now. Pinned
// statuses win unconditionally; everything else follows the clock:
// before the period it is upcoming, inside it active, past it completed.
// Boundaries are inclusive on both ends.
func EffectiveStatus(stored Status, start, end, now time.Time) Status {
	if stored.IsPinned() {
		return stored
	}
	switch {
	case now.Before(start):
		return StatusUpcoming
	case now.After(end):
		return StatusCompleted
	default:
		return StatusActive
	}
}

// StatusUpdate describes a stored status that drifted from the
// effective one. Readers hand these to a recorder; the write is
// advisory and the next read regenerates it if it never lands.
type StatusUpdate struct {
	BookingID uuid.UUID
	From      Status
	To        Status
}
