package repository

import (
	"context"
	"time"

	"boxrent/internal/domain/booking"
	"boxrent/internal/infra"
	"boxrent/internal/infra/db"

	"github.com/google/uuid"
)

// BookingRepository is the write side of the bookings table. The
// bookings_no_overlap exclusion constraint turns any double-placement
// into a CONFLICT-kind error, whether from Create, MoveToBox or
// ExtendPeriod.
type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO bookings (id, box_id, user_id, starts_at, ends_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, b.ID(), b.BoxID(), b.UserID(), b.Period().Start(), b.Period().End(), b.Status().String()).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) ExtendPeriod(ctx context.Context, tx db.DBTX, id uuid.UUID, newEnd time.Time, addedCents int64, paymentID uuid.UUID) error {
	tag, err := tx.Exec(ctx, `
		UPDATE bookings
		SET ends_at = $2,
			extension_count = extension_count + 1,
			extended_amount_cents = extended_amount_cents + $3,
			payment_id = $4,
			updated_at = now()
		WHERE id = $1
	`, id, newEnd, addedCents, paymentID)
	if err != nil {
		return infra.WrapRepoErr("failed to extend booking period", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) MoveToBox(ctx context.Context, tx db.DBTX, id, toBoxID uuid.UUID) error {
	tag, err := tx.Exec(ctx, `
		UPDATE bookings
		SET box_id = $2, updated_at = now()
		WHERE id = $1
	`, id, toBoxID)
	if err != nil {
		return infra.WrapRepoErr("failed to move booking to box", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, to booking.Status) error {
	tag, err := tx.Exec(ctx, `
		UPDATE bookings
		SET status = $2, updated_at = now()
		WHERE id = $1
	`, id, to.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// CompareAndSetStatus is the guarded write-back used by status
// reconciliation: it only lands when the stored status still matches
// what the reader derived from. A zero row count means the row moved
// on and the update is stale, not an error.
func (r *BookingRepository) CompareAndSetStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, from, to booking.Status) (int64, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE bookings
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
	`, id, from.String(), to.String())
	if err != nil {
		return 0, infra.WrapRepoErr("failed to reconcile booking status", err)
	}
	return tag.RowsAffected(), nil
}
