package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"hotelier/internal/domain/folio"
	"hotelier/internal/domain/stay"
	"hotelier/internal/infra"
	"hotelier/internal/pkg/pgconv"
)

func (r *CommandReads) FolioByID(ctx context.Context, id uuid.UUID) (*folio.Folio, error) {
	const query = `
		SELECT id, reservation_id, status, currency
		FROM folios WHERE id = $1 AND deleted_at IS NULL`
	return r.folioByQuery(ctx, query, id)
}

func (r *CommandReads) FolioByReservationID(ctx context.Context, reservationID uuid.UUID) (*folio.Folio, error) {
	const query = `
		SELECT id, reservation_id, status, currency
		FROM folios WHERE reservation_id = $1 AND deleted_at IS NULL`
	return r.folioByQuery(ctx, query, reservationID)
}

// FolioOwningItem resolves the full folio an item belongs to, so ledger
// invariants are checked against complete history.
func (r *CommandReads) FolioOwningItem(ctx context.Context, itemID uuid.UUID) (*folio.Folio, error) {
	const query = `
		SELECT f.id, f.reservation_id, f.status, f.currency
		FROM folios f
		JOIN folio_items fi ON fi.folio_id = f.id
		WHERE fi.id = $1 AND f.deleted_at IS NULL`
	return r.folioByQuery(ctx, query, itemID)
}

func (r *CommandReads) folioByQuery(ctx context.Context, query string, arg any) (*folio.Folio, error) {
	var (
		folioID, reservationID uuid.UUID
		status, currency       string
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(&folioID, &reservationID, &status, &currency)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("folio not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find folio", err)
	}

	items, err := r.folioItems(ctx, folioID)
	if err != nil {
		return nil, err
	}

	return folio.ReconstructFolio(folioID, reservationID, folio.Status(status), trimCurrency(currency), items), nil
}

// Items come back in posted_at order, voided included: the audit read is
// the same materialization the balance derives from.
func (r *CommandReads) folioItems(ctx context.Context, folioID uuid.UUID) ([]folio.Item, error) {
	const query = `
		SELECT id, kind, description, amount_cents, currency, payment_item_id, posted_at, voided_at
		FROM folio_items
		WHERE folio_id = $1
		ORDER BY posted_at, id`

	rows, err := r.db.Query(ctx, query, folioID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load folio items", err)
	}
	defer rows.Close()

	var items []folio.Item
	for rows.Next() {
		var (
			itemID             uuid.UUID
			kind, description  string
			cents              int64
			currency           string
			paymentItemID      pgtype.UUID
			postedAt, voidedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&itemID, &kind, &description, &cents, &currency, &paymentItemID, &postedAt, &voidedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan folio item", err)
		}
		items = append(items, folio.ReconstructItem(
			itemID,
			folio.ItemKind(kind),
			description,
			stay.NewMoney(cents, trimCurrency(currency)),
			pgconv.TimeFromPgtype(postedAt),
			pgconv.TimePtrFromPgtype(voidedAt),
			pgconv.UUIDPtrFromPgtype(paymentItemID),
		))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read folio items", err)
	}
	return items, nil
}
