package box

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativeScore  = errors.New("score cannot be negative")
	ErrInvalidRate    = errors.New("daily rate must be positive")
	ErrBoxNotRentable = errors.New("box is not rentable")
)

// Box is a physical storage box mounted on a stand. Score orders boxes
// within a stand when one has to be picked over another: lower wins.
type Box struct {
	id             uuid.UUID
	standID        uuid.UUID
	model          Model
	status         Status
	score          int
	dailyRateCents int64
	createdAt      time.Time
	updatedAt      time.Time
}

func NewBox(standID uuid.UUID, model Model, score int, dailyRateCents int64) (*Box, error) {
	if score < 0 {
		return nil, ErrNegativeScore
	}
	if dailyRateCents <= 0 {
		return nil, ErrInvalidRate
	}

	return &Box{
		id:             uuid.New(),
		standID:        standID,
		model:          model,
		status:         StatusActive,
		score:          score,
		dailyRateCents: dailyRateCents,
	}, nil
}

func ReconstructBox(
	id, standID uuid.UUID,
	model Model,
	status Status,
	score int,
	dailyRateCents int64,
	createdAt, updatedAt time.Time,
) *Box {
	return &Box{
		id:             id,
		standID:        standID,
		model:          model,
		status:         status,
		score:          score,
		dailyRateCents: dailyRateCents,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (b *Box) IsRentable() bool {
	return b.status == StatusActive
}

// SameFleet reports whether other can stand in for b: same stand, same
// model, and not the same physical box.
func (b *Box) SameFleet(other *Box) bool {
	return b.id != other.id && b.standID == other.standID && b.model == other.model
}

func (b *Box) ID() uuid.UUID         { return b.id }
func (b *Box) StandID() uuid.UUID    { return b.standID }
func (b *Box) Model() Model          { return b.model }
func (b *Box) Status() Status        { return b.status }
func (b *Box) Score() int            { return b.score }
func (b *Box) DailyRateCents() int64 { return b.dailyRateCents }
func (b *Box) CreatedAt() time.Time  { return b.createdAt }
func (b *Box) UpdatedAt() time.Time  { return b.updatedAt }
