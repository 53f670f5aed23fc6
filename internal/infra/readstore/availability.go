package readstore

import (
	"context"
	"time"

	"boxrent/internal/infra"
	"boxrent/internal/infra/db"
	"boxrent/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AvailabilityReadStore serves the window rows the availability
// calculator works on. Stored-terminal bookings are excluded in SQL;
// the caller re-derives effective status for the rest, so a booking
// whose stored status lags the clock never slips through.
type AvailabilityReadStore struct {
	db      db.DBTX
	catalog *CatalogReadStore
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{
		db:      dbtx,
		catalog: NewCatalogReadStore(dbtx),
	}
}

func (r *AvailabilityReadStore) FindBox(ctx context.Context, id uuid.UUID) (*queries.BoxView, error) {
	return r.catalog.FindBox(ctx, id)
}

func (r *AvailabilityReadStore) FindLocation(ctx context.Context, id uuid.UUID) (*queries.LocationView, error) {
	return r.catalog.FindLocation(ctx, id)
}

func (r *AvailabilityReadStore) BookingWindows(ctx context.Context, boxID uuid.UUID) ([]queries.BookingWindow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, status, starts_at, ends_at
		FROM bookings
		WHERE box_id = $1
			AND status NOT IN ('cancelled', 'completed')
		ORDER BY starts_at
	`, boxID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking windows", err)
	}
	return scanWindows(rows)
}

func (r *AvailabilityReadStore) OverlappingWindows(ctx context.Context, boxID uuid.UUID, from, to time.Time) ([]queries.BookingWindow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, status, starts_at, ends_at
		FROM bookings
		WHERE box_id = $1
			AND status NOT IN ('cancelled', 'completed')
			AND starts_at <= $3 AND ends_at >= $2
		ORDER BY starts_at
	`, boxID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load overlapping windows", err)
	}
	return scanWindows(rows)
}

func (r *AvailabilityReadStore) ModelWindows(ctx context.Context, locationID uuid.UUID, model string) ([]queries.BookingWindow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT bk.id, bk.status, bk.starts_at, bk.ends_at
		FROM bookings bk
		JOIN boxes b ON b.id = bk.box_id
		JOIN stands s ON s.id = b.stand_id
		WHERE s.location_id = $1
			AND b.model = $2
			AND b.status = 'active'
			AND bk.status NOT IN ('cancelled', 'completed')
		ORDER BY bk.starts_at
	`, locationID, model)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load model windows", err)
	}
	return scanWindows(rows)
}

func scanWindows(rows pgx.Rows) ([]queries.BookingWindow, error) {
	defer rows.Close()

	var result []queries.BookingWindow
	for rows.Next() {
		var w queries.BookingWindow
		if err := rows.Scan(&w.BookingID, &w.Status, &w.StartsAt, &w.EndsAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking window", err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking windows", err)
	}
	return result, nil
}
