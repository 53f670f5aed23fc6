package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type BookingView struct {
	ID                  uuid.UUID `json:"id"`
	BoxID               uuid.UUID `json:"box_id"`
	BoxModel            string    `json:"box_model"`
	StandName           string    `json:"stand_name"`
	LocationName        string    `json:"location_name"`
	UserID              uuid.UUID `json:"user_id"`
	UserEmail           string    `json:"user_email"`
	StartsAt            time.Time `json:"starts_at"`
	EndsAt              time.Time `json:"ends_at"`
	Status              string    `json:"status"`
	ExtensionCount      int32     `json:"extension_count"`
	ExtendedAmountCents int64     `json:"extended_amount_cents"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID        uuid.UUID `json:"id"`
	BoxID     uuid.UUID `json:"box_id"`
	BoxModel  string    `json:"box_model"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type BoxView struct {
	ID             uuid.UUID `json:"id"`
	StandID        uuid.UUID `json:"stand_id"`
	LocationID     uuid.UUID `json:"location_id"`
	Model          string    `json:"model"`
	Status         string    `json:"status"`
	Score          int32     `json:"score"`
	DailyRateCents int64     `json:"daily_rate_cents"`
}

type StandView struct {
	ID         uuid.UUID `json:"id"`
	LocationID uuid.UUID `json:"location_id"`
	Name       string    `json:"name"`
	BoxCount   int32     `json:"box_count"`
}

type LocationView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AvailabilityView struct {
	BoxID         uuid.UUID  `json:"box_id"`
	Available     bool       `json:"available"`
	NextFreeAt    *time.Time `json:"next_free_at,omitempty"`
	ConflictCount int        `json:"conflict_count"`
}

type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type BlockedRangesView struct {
	LocationID uuid.UUID   `json:"location_id"`
	Model      string      `json:"model"`
	Ranges     []DateRange `json:"ranges"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

// BookingWindow is the minimal row availability computations work on.
type BookingWindow struct {
	BookingID uuid.UUID
	Status    string
	StartsAt  time.Time
	EndsAt    time.Time
}
