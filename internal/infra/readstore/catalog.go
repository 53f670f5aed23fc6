package readstore

import (
	"context"

	"boxrent/internal/infra"
	"boxrent/internal/infra/db"
	"boxrent/internal/pkg/pgconv"
	"boxrent/internal/usecase/queries"

	"github.com/google/uuid"
)

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

func (r *CatalogReadStore) ListLocations(ctx context.Context) ([]*queries.LocationView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, created_at, updated_at
		FROM locations
		ORDER BY name
	`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list locations", err)
	}
	defer rows.Close()

	var result []*queries.LocationView
	for rows.Next() {
		var v queries.LocationView
		if err := rows.Scan(&v.ID, &v.Name, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan location", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate locations", err)
	}
	return result, nil
}

func (r *CatalogReadStore) FindLocation(ctx context.Context, id uuid.UUID) (*queries.LocationView, error) {
	var v queries.LocationView
	err := r.db.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at
		FROM locations
		WHERE id = $1
	`, id).Scan(&v.ID, &v.Name, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("location not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find location", err)
	}
	return &v, nil
}

func (r *CatalogReadStore) ListStands(ctx context.Context, locationID uuid.UUID) ([]*queries.StandView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.location_id, s.name,
			(SELECT count(*) FROM boxes b WHERE b.stand_id = s.id AND b.status = 'active')
		FROM stands s
		WHERE s.location_id = $1
		ORDER BY s.name
	`, locationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stands", err)
	}
	defer rows.Close()

	var result []*queries.StandView
	for rows.Next() {
		var v queries.StandView
		if err := rows.Scan(&v.ID, &v.LocationID, &v.Name, &v.BoxCount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan stand", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate stands", err)
	}
	return result, nil
}

func (r *CatalogReadStore) ListBoxes(ctx context.Context, locationID uuid.UUID, model *string) ([]*queries.BoxView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.stand_id, s.location_id, b.model, b.status, b.score, b.daily_rate_cents
		FROM boxes b
		JOIN stands s ON s.id = b.stand_id
		WHERE s.location_id = $1
			AND ($2::text IS NULL OR b.model = $2)
		ORDER BY b.score, b.id
	`, locationID, model)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list boxes", err)
	}
	defer rows.Close()

	var result []*queries.BoxView
	for rows.Next() {
		var v queries.BoxView
		if err := rows.Scan(&v.ID, &v.StandID, &v.LocationID, &v.Model, &v.Status, &v.Score, &v.DailyRateCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan box", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate boxes", err)
	}
	return result, nil
}

func (r *CatalogReadStore) FindBox(ctx context.Context, id uuid.UUID) (*queries.BoxView, error) {
	var v queries.BoxView
	err := r.db.QueryRow(ctx, `
		SELECT b.id, b.stand_id, s.location_id, b.model, b.status, b.score, b.daily_rate_cents
		FROM boxes b
		JOIN stands s ON s.id = b.stand_id
		WHERE b.id = $1
	`, id).Scan(&v.ID, &v.StandID, &v.LocationID, &v.Model, &v.Status, &v.Score, &v.DailyRateCents)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("box not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find box", err)
	}
	return &v, nil
}
