package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hotelier/internal/domain/folio"
	"hotelier/internal/infra"
	"hotelier/internal/infra/db"
	"hotelier/internal/pkg/pgconv"
	"hotelier/internal/usecase/shared"
)

type FolioRepository struct {
	db db.DBTX
}

func NewFolioRepository(dbtx db.DBTX) shared.FolioRepository {
	return &FolioRepository{db: dbtx}
}

func (r *FolioRepository) Create(ctx context.Context, f *folio.Folio) error {
	const query = `
		INSERT INTO folios (id, reservation_id, status, currency)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, f.ID(), f.ReservationID(), string(f.Status()), f.Currency())
	if err != nil {
		return infra.WrapRepoErr("failed to create folio", err)
	}

	for _, item := range f.Items() {
		if err := r.PostItem(ctx, f.ID(), item); err != nil {
			return err
		}
	}
	return nil
}

func (r *FolioRepository) PostItem(ctx context.Context, folioID uuid.UUID, item folio.Item) error {
	const query = `
		INSERT INTO folio_items (id, folio_id, kind, description, amount_cents, currency, payment_item_id, posted_at, voided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		item.ID(),
		folioID,
		string(item.Kind()),
		item.Description(),
		item.Amount().Cents(),
		item.Amount().Currency(),
		pgconv.UUIDPtrToPgtype(item.PaymentItemID()),
		pgconv.TimeToPgtype(item.PostedAt()),
		pgconv.TimePtrToPgtype(item.VoidedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to post folio item", err)
	}
	return nil
}

// VoidItem tombstones an item; the row stays for ledger reconstruction.
func (r *FolioRepository) VoidItem(ctx context.Context, itemID uuid.UUID, now time.Time) error {
	const query = `UPDATE folio_items SET voided_at = $2 WHERE id = $1 AND voided_at IS NULL`

	tag, err := r.db.Exec(ctx, query, itemID, pgconv.TimeToPgtype(now))
	if err != nil {
		return infra.WrapRepoErr("failed to void folio item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("folio item not found or already voided", nil, infra.KindNotFound)
	}
	return nil
}

func (r *FolioRepository) CreateRefund(ctx context.Context, paymentItemID, refundItemID uuid.UUID, amountCents int64, now time.Time) error {
	const query = `
		INSERT INTO refunds (id, payment_item_id, refund_item_id, amount_cents, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, paymentItemID, refundItemID, amountCents, pgconv.TimeToPgtype(now))
	if err != nil {
		return infra.WrapRepoErr("failed to create refund record", err)
	}
	return nil
}

func (r *FolioRepository) UpdateStatus(ctx context.Context, folioID uuid.UUID, status folio.Status, now time.Time) error {
	const query = `UPDATE folios SET status = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query, folioID, string(status), pgconv.TimeToPgtype(now))
	if err != nil {
		return infra.WrapRepoErr("failed to update folio status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("folio not found", nil, infra.KindNotFound)
	}
	return nil
}
