//go:build unit || e2e

package builder

import (
	"time"

	"boxrent/internal/domain/booking"
	"boxrent/internal/usecase/queries"
	"boxrent/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID                  uuid.UUID
	BoxID               uuid.UUID
	UserID              uuid.UUID
	StartsAt            time.Time
	EndsAt              time.Time
	Status              booking.Status
	ExtensionCount      int32
	ExtendedAmountCents int64
	PaymentID           *uuid.UUID
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:       uuid.New(),
		BoxID:    uuid.New(),
		UserID:   uuid.New(),
		StartsAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC),
		Status:   booking.StatusUpcoming,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	period, err := booking.NewPeriod(b.StartsAt, b.EndsAt)
	if err != nil {
		return nil, err
	}

	amount, err := booking.NewMoney(b.ExtendedAmountCents)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		b.ID,
		b.BoxID,
		b.UserID,
		period,
		b.Status,
		b.ExtensionCount,
		amount,
		b.PaymentID,
		time.Time{},
		time.Time{},
	), nil
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:                  b.ID,
		BoxID:               b.BoxID,
		UserID:              b.UserID,
		StartsAt:            b.StartsAt,
		EndsAt:              b.EndsAt,
		Status:              b.Status.String(),
		ExtensionCount:      b.ExtensionCount,
		ExtendedAmountCents: b.ExtendedAmountCents,
		PaymentID:           b.PaymentID,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	now := time.Now()
	return &queries.BookingView{
		ID:                  b.ID,
		BoxID:               b.BoxID,
		BoxModel:            "classic-320",
		StandName:           "Stand A",
		LocationName:        "Central",
		UserID:              b.UserID,
		UserEmail:           "test@example.com",
		StartsAt:            b.StartsAt,
		EndsAt:              b.EndsAt,
		Status:              b.Status.String(),
		ExtensionCount:      b.ExtensionCount,
		ExtendedAmountCents: b.ExtendedAmountCents,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithID(id uuid.UUID) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithBoxID(boxID uuid.UUID) *BookingBuilder {
	b.BoxID = boxID
	return b
}

func (b *BookingBuilder) WithUserID(userID uuid.UUID) *BookingBuilder {
	b.UserID = userID
	return b
}

func (b *BookingBuilder) WithPeriod(start, end time.Time) *BookingBuilder {
	b.StartsAt = start
	b.EndsAt = end
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithExtensionCount(count int32) *BookingBuilder {
	b.ExtensionCount = count
	return b
}

func (b *BookingBuilder) WithExtendedAmountCents(cents int64) *BookingBuilder {
	b.ExtendedAmountCents = cents
	return b
}

func (b *BookingBuilder) WithPaymentID(id uuid.UUID) *BookingBuilder {
	b.PaymentID = &id
	return b
}
