package queries

import (
	"context"

	"boxrent/internal/infra"
	"boxrent/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrCatalogQueryFailed = errs.New("catalog query failed")

type CatalogQueries interface {
	ListLocations(ctx context.Context) ([]*LocationView, error)
	GetLocation(ctx context.Context, id uuid.UUID) (*LocationView, error)
	ListStands(ctx context.Context, locationID uuid.UUID) ([]*StandView, error)
	ListBoxes(ctx context.Context, locationID uuid.UUID, model *string) ([]*BoxView, error)
	GetBox(ctx context.Context, id uuid.UUID) (*BoxView, error)
}

type CatalogReadStore interface {
	ListLocations(ctx context.Context) ([]*LocationView, error)
	FindLocation(ctx context.Context, id uuid.UUID) (*LocationView, error)
	ListStands(ctx context.Context, locationID uuid.UUID) ([]*StandView, error)
	ListBoxes(ctx context.Context, locationID uuid.UUID, model *string) ([]*BoxView, error)
	FindBox(ctx context.Context, id uuid.UUID) (*BoxView, error)
}

type catalogQueriesImpl struct {
	readStore CatalogReadStore
}

func NewCatalogQueries(readStore CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{readStore: readStore}
}

func (q *catalogQueriesImpl) ListLocations(ctx context.Context) ([]*LocationView, error) {
	locations, err := q.readStore.ListLocations(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrCatalogQueryFailed)
	}
	return locations, nil
}

func (q *catalogQueriesImpl) GetLocation(ctx context.Context, id uuid.UUID) (*LocationView, error) {
	location, err := q.readStore.FindLocation(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, errs.Mark(err, ErrCatalogQueryFailed)
	}
	return location, nil
}

func (q *catalogQueriesImpl) ListStands(ctx context.Context, locationID uuid.UUID) ([]*StandView, error) {
	if _, err := q.GetLocation(ctx, locationID); err != nil {
		return nil, err
	}
	stands, err := q.readStore.ListStands(ctx, locationID)
	if err != nil {
		return nil, errs.Mark(err, ErrCatalogQueryFailed)
	}
	return stands, nil
}

func (q *catalogQueriesImpl) ListBoxes(ctx context.Context, locationID uuid.UUID, model *string) ([]*BoxView, error) {
	if _, err := q.GetLocation(ctx, locationID); err != nil {
		return nil, err
	}
	boxes, err := q.readStore.ListBoxes(ctx, locationID, model)
	if err != nil {
		return nil, errs.Mark(err, ErrCatalogQueryFailed)
	}
	return boxes, nil
}

func (q *catalogQueriesImpl) GetBox(ctx context.Context, id uuid.UUID) (*BoxView, error) {
	bx, err := q.readStore.FindBox(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBoxNotFound
		}
		return nil, errs.Mark(err, ErrCatalogQueryFailed)
	}
	return bx, nil
}
