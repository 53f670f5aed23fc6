package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	BoxID    uuid.UUID `json:"box_id" binding:"required"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
}
