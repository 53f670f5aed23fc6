package repository

import (
	"context"
	"errors"

	"boxrent/internal/infra"
	"boxrent/internal/infra/db"
	"boxrent/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PaymentRepository struct{}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

// FindOrCreate records an external charge exactly once. The insert
// defers to the provider_ref unique constraint: a concurrent duplicate
// (retried webhook, double-submitted completion) loses the insert race
// and adopts the surviving row instead. Never check-then-insert.
func (r *PaymentRepository) FindOrCreate(ctx context.Context, tx db.DBTX, p shared.NewPayment) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO payments (booking_id, provider_ref, kind, amount_cents, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (provider_ref) DO NOTHING
		RETURNING id
	`, p.BookingID, p.ProviderRef, p.Kind, p.AmountCents, p.Currency, p.Status).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, infra.WrapRepoErr("failed to insert payment", err)
	}

	err = tx.QueryRow(ctx, `
		SELECT id FROM payments WHERE provider_ref = $1
	`, p.ProviderRef).Scan(&id)
	if err != nil {
		return uuid.Nil, false, infra.WrapRepoErr("failed to find payment by provider ref", err)
	}
	return id, false, nil
}
