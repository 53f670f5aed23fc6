package response

import (
	"time"

	"boxrent/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilityResponse struct {
	BoxID         uuid.UUID  `json:"boxId"`
	Available     bool       `json:"available"`
	NextFreeAt    *time.Time `json:"nextFreeAt,omitempty"`
	ConflictCount int        `json:"conflictCount"`
}

type DateRangeResponse struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type BlockedRangesResponse struct {
	LocationID uuid.UUID           `json:"locationId"`
	Model      string              `json:"model"`
	Ranges     []DateRangeResponse `json:"ranges"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	return &AvailabilityResponse{
		BoxID:         v.BoxID,
		Available:     v.Available,
		NextFreeAt:    v.NextFreeAt,
		ConflictCount: v.ConflictCount,
	}
}

func FromBlockedRangesView(v *queries.BlockedRangesView) *BlockedRangesResponse {
	ranges := make([]DateRangeResponse, len(v.Ranges))
	for i, r := range v.Ranges {
		ranges[i] = DateRangeResponse{From: r.From, To: r.To}
	}
	return &BlockedRangesResponse{
		LocationID: v.LocationID,
		Model:      v.Model,
		Ranges:     ranges,
	}
}
