package booking

import (
	"boxrent/internal/domain/box"
	"boxrent/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clock clock.Clock) *Factory {
	return &Factory{Clock: clock}
}

func (f *Factory) NewBooking(bx *box.Box, userID uuid.UUID, period Period) (*Booking, error) {
	now := f.Clock.Now()
	if !bx.IsRentable() {
		return nil, box.ErrBoxNotRentable
	}
	if period.Start().Before(now) {
		return nil, ErrStartInPast
	}

	// A booking starting exactly now is already active; store the
	// status the period derives rather than a blanket upcoming.
	return &Booking{
		id:     uuid.New(),
		boxID:  bx.ID(),
		userID: userID,
		period: period,
		status: EffectiveStatus(StatusUpcoming, period.Start(), period.End(), now),
	}, nil
}
