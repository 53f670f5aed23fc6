package box

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyStandName    = errors.New("stand name cannot be empty")
	ErrEmptyLocationName = errors.New("location name cannot be empty")
)

// Stand groups the boxes mounted on one physical rack at a location.
// Reassignment never crosses stand boundaries.
type Stand struct {
	id         uuid.UUID
	locationID uuid.UUID
	name       string
	createdAt  time.Time
	updatedAt  time.Time
}

func NewStand(locationID uuid.UUID, name string) (*Stand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyStandName
	}
	return &Stand{
		id:         uuid.New(),
		locationID: locationID,
		name:       name,
	}, nil
}

func ReconstructStand(id, locationID uuid.UUID, name string, createdAt, updatedAt time.Time) *Stand {
	return &Stand{
		id:         id,
		locationID: locationID,
		name:       name,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (s *Stand) ID() uuid.UUID         { return s.id }
func (s *Stand) LocationID() uuid.UUID { return s.locationID }
func (s *Stand) Name() string          { return s.name }
func (s *Stand) CreatedAt() time.Time  { return s.createdAt }
func (s *Stand) UpdatedAt() time.Time  { return s.updatedAt }

type Location struct {
	id        uuid.UUID
	name      string
	createdAt time.Time
	updatedAt time.Time
}

func NewLocation(name string) (*Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyLocationName
	}
	return &Location{
		id:   uuid.New(),
		name: name,
	}, nil
}

func ReconstructLocation(id uuid.UUID, name string, createdAt, updatedAt time.Time) *Location {
	return &Location{
		id:        id,
		name:      name,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (l *Location) ID() uuid.UUID        { return l.id }
func (l *Location) Name() string         { return l.name }
func (l *Location) CreatedAt() time.Time { return l.createdAt }
func (l *Location) UpdatedAt() time.Time { return l.updatedAt }
