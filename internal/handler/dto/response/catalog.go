package response

import (
	"time"

	"boxrent/internal/usecase/queries"

	"github.com/google/uuid"
)

type LocationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type StandResponse struct {
	ID         uuid.UUID `json:"id"`
	LocationID uuid.UUID `json:"locationId"`
	Name       string    `json:"name"`
	BoxCount   int32     `json:"boxCount"`
}

type BoxResponse struct {
	ID             uuid.UUID `json:"id"`
	StandID        uuid.UUID `json:"standId"`
	LocationID     uuid.UUID `json:"locationId"`
	Model          string    `json:"model"`
	Status         string    `json:"status"`
	Score          int32     `json:"score"`
	DailyRateCents int64     `json:"dailyRateCents"`
}

func FromLocationView(v *queries.LocationView) *LocationResponse {
	return &LocationResponse{
		ID:        v.ID,
		Name:      v.Name,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func FromStandView(v *queries.StandView) *StandResponse {
	return &StandResponse{
		ID:         v.ID,
		LocationID: v.LocationID,
		Name:       v.Name,
		BoxCount:   v.BoxCount,
	}
}

func FromBoxView(v *queries.BoxView) *BoxResponse {
	return &BoxResponse{
		ID:             v.ID,
		StandID:        v.StandID,
		LocationID:     v.LocationID,
		Model:          v.Model,
		Status:         v.Status,
		Score:          v.Score,
		DailyRateCents: v.DailyRateCents,
	}
}
