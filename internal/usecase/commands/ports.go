package commands

import (
	"context"

	"github.com/google/uuid"
)

// Metadata keys attached to every extension payment intent. Complete uses
// them to tie the settled charge back to the booking.
const (
	IntentMetaBookingID = "booking_id"
	IntentMetaNewEnd    = "new_end"
	IntentMetaKind      = "kind"

	IntentKindExtension = "booking_extension"

	IntentStatusSucceeded = "succeeded"
)

// PaymentIntent mirrors the provider-side charge state the commands care
// about. Amounts are minor units.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountCents  int64
	Currency     string
	Metadata     map[string]string
}

type ExtensionIntentRequest struct {
	BookingID   uuid.UUID
	NewEnd      string
	AmountCents int64
	Currency    string
}

// PaymentGateway abstracts the payment provider. The infra side talks to
// Stripe; tests substitute a fake.
type PaymentGateway interface {
	CreateExtensionIntent(ctx context.Context, req ExtensionIntentRequest) (*PaymentIntent, error)
	GetIntent(ctx context.Context, id string) (*PaymentIntent, error)
}
