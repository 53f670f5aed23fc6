package repository

import (
	"context"
	"time"

	"boxrent/internal/infra"
	"boxrent/internal/infra/db"

	"github.com/google/uuid"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

// TryInsert claims the key for this request. A concurrent or earlier
// claim makes the insert a no-op; the caller inspects the surviving
// row to decide replay vs conflict.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
		VALUES ($1, $2, $3, $4, 'processing', $5)
		ON CONFLICT (key, user_id) DO NOTHING
	`, key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return infra.WrapRepoErr("failed to insert idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultHash string, bookingID uuid.UUID) error {
	tag, err := tx.Exec(ctx, `
		UPDATE idempotency_keys
		SET status = 'completed',
			result_hash = $3,
			result_booking_id = $4,
			updated_at = now()
		WHERE key = $1 AND user_id = $2
	`, key, userID, resultHash, bookingID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}

// ClaimExpiredIdempotencyKey re-arms a processing key whose holder
// never finished. The status guard keeps completed keys untouchable.
func (r *IdempotencyRepository) ClaimExpiredIdempotencyKey(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE idempotency_keys
		SET request_hash = $3,
			expires_at = $4,
			updated_at = now()
		WHERE key = $1 AND user_id = $2
			AND status = 'processing'
			AND expires_at < now()
	`, key, userID, requestHash, expiresAt)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}
	return tag.RowsAffected(), nil
}
