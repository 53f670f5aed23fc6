package response

import (
	"time"

	"boxrent/internal/usecase/commands"

	"github.com/google/uuid"
)

type ExtensionQuoteResponse struct {
	BookingID      uuid.UUID `json:"bookingId"`
	CurrentEnd     time.Time `json:"currentEnd"`
	NewEnd         time.Time `json:"newEnd"`
	AdditionalDays int       `json:"additionalDays"`
	AmountCents    int64     `json:"amountCents"`
	Currency       string    `json:"currency"`
}

type InitiateExtensionResponse struct {
	Quote           *ExtensionQuoteResponse `json:"quote"`
	PaymentIntentID string                  `json:"paymentIntentId"`
	ClientSecret    string                  `json:"clientSecret"`
}

type BoxReassignmentResponse struct {
	BookingID uuid.UUID `json:"bookingId"`
	FromBoxID uuid.UUID `json:"fromBoxId"`
	ToBoxID   uuid.UUID `json:"toBoxId"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
}

type CompleteExtensionResponse struct {
	BookingID     uuid.UUID                  `json:"bookingId"`
	NewEnd        time.Time                  `json:"newEnd"`
	AmountCents   int64                      `json:"amountCents"`
	PaymentID     uuid.UUID                  `json:"paymentId"`
	Reassignments []*BoxReassignmentResponse `json:"reassignments"`
	IsReplayed    bool                       `json:"isReplayed"`
}

func FromExtensionQuote(q *commands.ExtensionQuote) *ExtensionQuoteResponse {
	return &ExtensionQuoteResponse{
		BookingID:      q.BookingID,
		CurrentEnd:     q.CurrentEnd,
		NewEnd:         q.NewEnd,
		AdditionalDays: q.AdditionalDays,
		AmountCents:    q.AmountCents,
		Currency:       q.Currency,
	}
}

func FromInitiateExtensionResult(r *commands.InitiateExtensionResult) *InitiateExtensionResponse {
	return &InitiateExtensionResponse{
		Quote:           FromExtensionQuote(r.Quote),
		PaymentIntentID: r.PaymentIntentID,
		ClientSecret:    r.ClientSecret,
	}
}

func FromExtensionResult(r *commands.ExtensionResult) *CompleteExtensionResponse {
	moves := make([]*BoxReassignmentResponse, len(r.Reassignments))
	for i, m := range r.Reassignments {
		moves[i] = &BoxReassignmentResponse{
			BookingID: m.BookingID,
			FromBoxID: m.FromBoxID,
			ToBoxID:   m.ToBoxID,
			StartsAt:  m.StartsAt,
			EndsAt:    m.EndsAt,
		}
	}
	return &CompleteExtensionResponse{
		BookingID:     r.BookingID,
		NewEnd:        r.NewEnd,
		AmountCents:   r.AmountCents,
		PaymentID:     r.PaymentID,
		Reassignments: moves,
		IsReplayed:    r.IsReplayed,
	}
}
