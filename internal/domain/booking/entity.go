package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrStartInPast       = errors.New("booking cannot start in the past")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrAlreadyCompleted  = errors.New("booking is already completed")
	ErrNotConfirmable    = errors.New("booking cannot be confirmed")
	ErrNotExtendable     = errors.New("booking cannot be extended")
	ErrInvalidNewEnd     = errors.New("new end must be after current end")
	ErrZeroExtensionCost = errors.New("extension cost must be positive")
)

// Booking is a time-bounded rental of one box by one user. The stored
// status is advisory; EffectiveStatusAt is the source of truth.
type Booking struct {
	id                  uuid.UUID
	boxID               uuid.UUID
	userID              uuid.UUID
	period              Period
	status              Status
	extensionCount      int32
	extendedAmountCents Money
	paymentID           *uuid.UUID
	createdAt           time.Time
	updatedAt           time.Time
}

func ReconstructBooking(
	id, boxID, userID uuid.UUID,
	period Period,
	status Status,
	extensionCount int32,
	extendedAmountCents Money,
	paymentID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                  id,
		boxID:               boxID,
		userID:              userID,
		period:              period,
		status:              status,
		extensionCount:      extensionCount,
		extendedAmountCents: extendedAmountCents,
		paymentID:           paymentID,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

func (b *Booking) EffectiveStatusAt(now time.Time) Status {
	return EffectiveStatus(b.status, b.period.Start(), b.period.End(), now)
}

// Cancel marks the booking cancelled. Terminal bookings reject: a
// completed rental cannot be cancelled after the fact.
func (b *Booking) Cancel(now time.Time) error {
	switch b.EffectiveStatusAt(now) {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrAlreadyCompleted
	}
	b.status = StatusCancelled
	return nil
}

// Confirm pins the status so time derivation no longer applies.
// Confirming twice is a no-op.
func (b *Booking) Confirm(now time.Time) error {
	switch b.EffectiveStatusAt(now) {
	case StatusConfirmed:
		return nil
	case StatusCancelled, StatusCompleted:
		return ErrNotConfirmable
	}
	b.status = StatusConfirmed
	return nil
}

// CanExtendAt guards extension: only bookings that are still running or
// yet to run may grow.
func (b *Booking) CanExtendAt(now time.Time) error {
	if b.EffectiveStatusAt(now).IsTerminal() {
		return ErrNotExtendable
	}
	return nil
}

// ExtendTo moves the end of the booking forward and records the paid
// amount. Callers settle payment and conflict resolution first; this
// only mutates the aggregate.
func (b *Booking) ExtendTo(newEnd time.Time, cost Money, paymentID uuid.UUID, now time.Time) error {
	if err := b.CanExtendAt(now); err != nil {
		return err
	}
	if !newEnd.After(b.period.End()) {
		return ErrInvalidNewEnd
	}
	if cost.IsZero() {
		return ErrZeroExtensionCost
	}

	period, err := NewPeriod(b.period.Start(), newEnd)
	if err != nil {
		return err
	}
	b.period = period
	b.extensionCount++
	b.extendedAmountCents = b.extendedAmountCents.Add(cost)
	id := paymentID
	b.paymentID = &id
	return nil
}

// MoveToBox reassigns the booking to a sibling box. Validity of the
// target (same stand, same model, free over the period) is the
// resolver's responsibility.
func (b *Booking) MoveToBox(boxID uuid.UUID) {
	b.boxID = boxID
}

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) BoxID() uuid.UUID           { return b.boxID }
func (b *Booking) UserID() uuid.UUID          { return b.userID }
func (b *Booking) Period() Period             { return b.period }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) ExtensionCount() int32      { return b.extensionCount }
func (b *Booking) ExtendedAmountCents() Money { return b.extendedAmountCents }
func (b *Booking) PaymentID() *uuid.UUID      { return b.paymentID }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }
