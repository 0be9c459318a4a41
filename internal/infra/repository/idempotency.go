package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hotelier/internal/infra"
	"hotelier/internal/infra/db"
	"hotelier/internal/pkg/pgconv"
	"hotelier/internal/usecase/shared"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) shared.IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx}
}

// TryInsert claims the key; a no-op on conflict so the caller can inspect
// the existing record and decide between replay and rejection.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, actorID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (int64, error) {
	const query = `
		INSERT INTO idempotency_keys (key, actor_id, endpoint, request_hash, status, expires_at)
		VALUES ($1, $2, $3, $4, 'processing', $5)
		ON CONFLICT (key, actor_id) DO NOTHING`

	tag, err := r.db.Exec(ctx, query, key, actorID, endpoint, requestHash, pgconv.TimeToPgtype(expiresAt))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to insert idempotency key", err)
	}
	return tag.RowsAffected(), nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, key, actorID uuid.UUID, resultReservationID uuid.UUID) error {
	const query = `
		UPDATE idempotency_keys
		SET status = 'completed', result_reservation_id = $3
		WHERE key = $1 AND actor_id = $2`

	tag, err := r.db.Exec(ctx, query, key, actorID, resultReservationID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}

// ClaimExpiredKey takes over a stale processing claim left by a crashed
// request.
func (r *IdempotencyRepository) ClaimExpiredKey(ctx context.Context, key, actorID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error) {
	const query = `
		UPDATE idempotency_keys
		SET request_hash = $3, status = 'processing', result_reservation_id = NULL, expires_at = $4, created_at = now()
		WHERE key = $1 AND actor_id = $2 AND status = 'processing' AND expires_at < now()`

	tag, err := r.db.Exec(ctx, query, key, actorID, requestHash, pgconv.TimeToPgtype(expiresAt))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}
	return tag.RowsAffected(), nil
}
