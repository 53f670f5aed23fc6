package readstore

import (
	"context"
	"time"

	"boxrent/internal/infra"
	"boxrent/internal/infra/db"
	"boxrent/internal/pkg/pgconv"
	"boxrent/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// SnapshotReadStore serves the command side: minimal rows the write
// paths validate against, read through the same connection (and so the
// same transaction) as the writes they guard.
type SnapshotReadStore struct {
	db db.DBTX
}

func NewSnapshotReadStore(dbtx db.DBTX) *SnapshotReadStore {
	return &SnapshotReadStore{db: dbtx}
}

func (r *SnapshotReadStore) BoxByID(ctx context.Context, id uuid.UUID) (*shared.BoxSnapshot, error) {
	var snap shared.BoxSnapshot
	err := r.db.QueryRow(ctx, `
		SELECT b.id, b.stand_id, s.location_id, b.model, b.status, b.score, b.daily_rate_cents
		FROM boxes b
		JOIN stands s ON s.id = b.stand_id
		WHERE b.id = $1
	`, id).Scan(&snap.ID, &snap.StandID, &snap.LocationID, &snap.Model, &snap.Status, &snap.Score, &snap.DailyRateCents)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("box not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load box snapshot", err)
	}
	return &snap, nil
}

func (r *SnapshotReadStore) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	return r.bookingByID(ctx, id, false)
}

// BookingByIDForUpdate row-locks the booking for the duration of the
// surrounding transaction. The extension commit uses it so two
// concurrent extensions of the same booking serialize instead of both
// pricing against the same stale end.
func (r *SnapshotReadStore) BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	return r.bookingByID(ctx, id, true)
}

func (r *SnapshotReadStore) bookingByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*shared.BookingSnapshot, error) {
	query := `
		SELECT id, box_id, user_id, starts_at, ends_at, status,
			extension_count, extended_amount_cents, payment_id
		FROM bookings
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var snap shared.BookingSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.BoxID, &snap.UserID, &snap.StartsAt, &snap.EndsAt, &snap.Status,
		&snap.ExtensionCount, &snap.ExtendedAmountCents, &snap.PaymentID,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load booking snapshot", err)
	}
	return &snap, nil
}

func (r *SnapshotReadStore) ActiveSiblings(ctx context.Context, standID uuid.UUID, model string, excludeBoxID uuid.UUID) ([]*shared.BoxSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.stand_id, s.location_id, b.model, b.status, b.score, b.daily_rate_cents
		FROM boxes b
		JOIN stands s ON s.id = b.stand_id
		WHERE b.stand_id = $1
			AND b.model = $2
			AND b.status = 'active'
			AND b.id <> $3
		ORDER BY b.score, b.id
	`, standID, model, excludeBoxID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load sibling boxes", err)
	}
	defer rows.Close()

	var result []*shared.BoxSnapshot
	for rows.Next() {
		var snap shared.BoxSnapshot
		if err := rows.Scan(&snap.ID, &snap.StandID, &snap.LocationID, &snap.Model, &snap.Status, &snap.Score, &snap.DailyRateCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan sibling box", err)
		}
		result = append(result, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate sibling boxes", err)
	}
	return result, nil
}

func (r *SnapshotReadStore) OverlappingBookings(ctx context.Context, boxID uuid.UUID, from, to time.Time, excludeBookingID uuid.UUID) ([]*shared.BookingSnapshot, error) {
	exclude := pgtype.UUID{}
	if excludeBookingID != uuid.Nil {
		exclude = pgconv.UUIDToPgtype(excludeBookingID)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, box_id, user_id, starts_at, ends_at, status,
			extension_count, extended_amount_cents, payment_id
		FROM bookings
		WHERE box_id = $1
			AND status NOT IN ('cancelled', 'completed')
			AND starts_at <= $3 AND ends_at >= $2
			AND ($4::uuid IS NULL OR id <> $4)
		ORDER BY starts_at
	`, boxID, from, to, exclude)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load overlapping bookings", err)
	}
	return scanBookingSnapshots(rows)
}

func (r *SnapshotReadStore) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var rec shared.IdempotencyRecord
	err := r.db.QueryRow(ctx, `
		SELECT key, user_id, status, request_hash, result_booking_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND user_id = $2
	`, key, userID).Scan(&rec.Key, &rec.UserID, &rec.Status, &rec.RequestHash, &rec.ResultBookingID, &rec.ExpiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load idempotency key", err)
	}
	return &rec, nil
}

func (r *SnapshotReadStore) PaymentByProviderRef(ctx context.Context, providerRef string) (*shared.PaymentSnapshot, error) {
	var snap shared.PaymentSnapshot
	err := r.db.QueryRow(ctx, `
		SELECT id, booking_id, provider_ref, kind, amount_cents, currency, status
		FROM payments
		WHERE provider_ref = $1
	`, providerRef).Scan(&snap.ID, &snap.BookingID, &snap.ProviderRef, &snap.Kind, &snap.AmountCents, &snap.Currency, &snap.Status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load payment snapshot", err)
	}
	return &snap, nil
}

func scanBookingSnapshots(rows pgx.Rows) ([]*shared.BookingSnapshot, error) {
	defer rows.Close()

	var result []*shared.BookingSnapshot
	for rows.Next() {
		var snap shared.BookingSnapshot
		if err := rows.Scan(
			&snap.ID, &snap.BoxID, &snap.UserID, &snap.StartsAt, &snap.EndsAt, &snap.Status,
			&snap.ExtensionCount, &snap.ExtendedAmountCents, &snap.PaymentID,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking snapshot", err)
		}
		result = append(result, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking snapshots", err)
	}
	return result, nil
}
