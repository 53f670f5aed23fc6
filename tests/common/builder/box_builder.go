//go:build unit || e2e

package builder

import (
	"time"

	dombox "boxrent/internal/domain/box"
	"boxrent/internal/usecase/queries"
	"boxrent/internal/usecase/shared"

	"github.com/google/uuid"
)

type BoxBuilder struct {
	ID             uuid.UUID
	StandID        uuid.UUID
	LocationID     uuid.UUID
	Model          string
	Status         string
	Score          int
	DailyRateCents int64
}

func NewBoxBuilder() *BoxBuilder {
	return &BoxBuilder{
		ID:             uuid.New(),
		StandID:        uuid.New(),
		LocationID:     uuid.New(),
		Model:          "classic-320",
		Status:         "active",
		Score:          100,
		DailyRateCents: 12000,
	}
}

func (b *BoxBuilder) With(mutate func(*BoxBuilder)) *BoxBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BoxBuilder) BuildDomain() (*dombox.Box, error) {
	model, err := dombox.NewModel(b.Model)
	if err != nil {
		return nil, err
	}

	status, err := dombox.NewStatus(b.Status)
	if err != nil {
		return nil, err
	}

	return dombox.ReconstructBox(b.ID, b.StandID, model, status, b.Score, b.DailyRateCents, time.Time{}, time.Time{}), nil
}

func (b *BoxBuilder) BuildSnapshot() *shared.BoxSnapshot {
	return &shared.BoxSnapshot{
		ID:             b.ID,
		StandID:        b.StandID,
		LocationID:     b.LocationID,
		Model:          b.Model,
		Status:         b.Status,
		Score:          int32(b.Score),
		DailyRateCents: b.DailyRateCents,
	}
}

func (b *BoxBuilder) BuildView() *queries.BoxView {
	return &queries.BoxView{
		ID:             b.ID,
		StandID:        b.StandID,
		LocationID:     b.LocationID,
		Model:          b.Model,
		Status:         b.Status,
		Score:          int32(b.Score),
		DailyRateCents: b.DailyRateCents,
	}
}

// Fluent builder methods
func (b *BoxBuilder) WithID(id uuid.UUID) *BoxBuilder {
	b.ID = id
	return b
}

func (b *BoxBuilder) WithStandID(standID uuid.UUID) *BoxBuilder {
	b.StandID = standID
	return b
}

func (b *BoxBuilder) WithModel(model string) *BoxBuilder {
	b.Model = model
	return b
}

func (b *BoxBuilder) WithStatus(status string) *BoxBuilder {
	b.Status = status
	return b
}

func (b *BoxBuilder) WithScore(score int) *BoxBuilder {
	b.Score = score
	return b
}

func (b *BoxBuilder) WithDailyRateCents(cents int64) *BoxBuilder {
	b.DailyRateCents = cents
	return b
}
