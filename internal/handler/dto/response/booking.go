package response

import (
	"time"

	"boxrent/internal/pkg/ptr"
	"boxrent/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                  uuid.UUID `json:"id"`
	BoxID               uuid.UUID `json:"boxId"`
	BoxModel            string    `json:"boxModel"`
	StandName           string    `json:"standName"`
	LocationName        string    `json:"locationName"`
	UserID              uuid.UUID `json:"userId"`
	UserEmail           string    `json:"userEmail"`
	StartsAt            time.Time `json:"startsAt"`
	EndsAt              time.Time `json:"endsAt"`
	Status              string    `json:"status"`
	ExtensionCount      int32     `json:"extensionCount"`
	ExtendedAmountCents int64     `json:"extendedAmountCents"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type BookingListItemResponse struct {
	ID        uuid.UUID `json:"id"`
	BoxID     uuid.UUID `json:"boxId"`
	BoxModel  string    `json:"boxModel"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type BookingListResponse struct {
	Items      []*BookingListItemResponse `json:"items"`
	NextCursor *string                    `json:"nextCursor,omitempty"`
}

type CreateBookingResponse struct {
	BookingID  uuid.UUID `json:"bookingId"`
	IsReplayed bool      `json:"isReplayed"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:                  v.ID,
		BoxID:               v.BoxID,
		BoxModel:            v.BoxModel,
		StandName:           v.StandName,
		LocationName:        v.LocationName,
		UserID:              v.UserID,
		UserEmail:           v.UserEmail,
		StartsAt:            v.StartsAt,
		EndsAt:              v.EndsAt,
		Status:              v.Status,
		ExtensionCount:      v.ExtensionCount,
		ExtendedAmountCents: v.ExtendedAmountCents,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
}

func FromBookingListItem(v *queries.BookingListItem) *BookingListItemResponse {
	return &BookingListItemResponse{
		ID:        v.ID,
		BoxID:     v.BoxID,
		BoxModel:  v.BoxModel,
		StartsAt:  v.StartsAt,
		EndsAt:    v.EndsAt,
		Status:    v.Status,
		CreatedAt: v.CreatedAt,
	}
}

func FromBookingList(items []*queries.BookingListItem, next *queries.Cursor) *BookingListResponse {
	out := make([]*BookingListItemResponse, len(items))
	for i, it := range items {
		out[i] = FromBookingListItem(it)
	}
	resp := &BookingListResponse{Items: out}
	if next != nil {
		resp.NextCursor = ptr.To(next.After)
	}
	return resp
}
