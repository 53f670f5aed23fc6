package readstore

import (
	"context"
	"time"

	"boxrent/internal/infra"
	"boxrent/internal/infra/db"
	"boxrent/internal/pkg/pgconv"
	"boxrent/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var v queries.BookingView
	err := r.db.QueryRow(ctx, `
		SELECT bk.id, bk.box_id, b.model, s.name, l.name,
			bk.user_id, u.email,
			bk.starts_at, bk.ends_at, bk.status,
			bk.extension_count, bk.extended_amount_cents,
			bk.created_at, bk.updated_at
		FROM bookings bk
		JOIN boxes b ON b.id = bk.box_id
		JOIN stands s ON s.id = b.stand_id
		JOIN locations l ON l.id = s.location_id
		JOIN users u ON u.id = bk.user_id
		WHERE bk.id = $1
	`, id).Scan(
		&v.ID, &v.BoxID, &v.BoxModel, &v.StandName, &v.LocationName,
		&v.UserID, &v.UserEmail,
		&v.StartsAt, &v.EndsAt, &v.Status,
		&v.ExtensionCount, &v.ExtendedAmountCents,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return &v, nil
}

func (r *BookingReadStore) ListByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT bk.id, bk.box_id, b.model, bk.starts_at, bk.ends_at, bk.status, bk.created_at
		FROM bookings bk
		JOIN boxes b ON b.id = bk.box_id
		WHERE bk.user_id = $1
		ORDER BY bk.created_at DESC, bk.id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings first page", err)
	}
	return scanBookingListItems(rows)
}

func (r *BookingReadStore) ListByUserKeyset(ctx context.Context, userID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT bk.id, bk.box_id, b.model, bk.starts_at, bk.ends_at, bk.status, bk.created_at
		FROM bookings bk
		JOIN boxes b ON b.id = bk.box_id
		WHERE bk.user_id = $1
			AND (bk.created_at, bk.id) < ($2, $3)
		ORDER BY bk.created_at DESC, bk.id DESC
		LIMIT $4
	`, userID, afterCreatedAt, afterID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings keyset", err)
	}
	return scanBookingListItems(rows)
}

func scanBookingListItems(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		var it queries.BookingListItem
		if err := rows.Scan(&it.ID, &it.BoxID, &it.BoxModel, &it.StartsAt, &it.EndsAt, &it.Status, &it.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		result = append(result, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking list", err)
	}
	return result, nil
}
