package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command read operations.

type BoxSnapshot struct {
	ID             uuid.UUID
	StandID        uuid.UUID
	LocationID     uuid.UUID
	Model          string
	Status         string
	Score          int32
	DailyRateCents int64
}

type BookingSnapshot struct {
	ID                  uuid.UUID
	BoxID               uuid.UUID
	UserID              uuid.UUID
	StartsAt            time.Time
	EndsAt              time.Time
	Status              string
	ExtensionCount      int32
	ExtendedAmountCents int64
	PaymentID           *uuid.UUID
}

type PaymentSnapshot struct {
	ID          uuid.UUID
	BookingID   uuid.UUID
	ProviderRef string
	Kind        string
	AmountCents int64
	Currency    string
	Status      string
}

// NewPayment carries the fields of a payment row to be inserted. ProviderRef
// is the external charge id the uniqueness guarantee hangs on.
type NewPayment struct {
	BookingID   uuid.UUID
	ProviderRef string
	Kind        string
	AmountCents int64
	Currency    string
	Status      string
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}
