package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"hotelier/internal/infra"
	"hotelier/internal/pkg/pgconv"
	"hotelier/internal/usecase/shared"
)

func (r *CommandReads) IdempotencyByKey(ctx context.Context, key, actorID uuid.UUID) (*shared.IdempotencyRecord, error) {
	const query = `
		SELECT key, actor_id, status, request_hash, result_reservation_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND actor_id = $2`

	var (
		record              shared.IdempotencyRecord
		resultReservationID pgtype.UUID
		expiresAt           pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, query, key, actorID).Scan(
		&record.Key, &record.ActorID, &record.Status, &record.RequestHash, &resultReservationID, &expiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find idempotency key", err)
	}
	record.ResultReservationID = pgconv.UUIDPtrFromPgtype(resultReservationID)
	record.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)
	return &record, nil
}
