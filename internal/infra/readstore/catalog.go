package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"hotelier/internal/domain/pricing"
	"hotelier/internal/domain/stay"
	"hotelier/internal/domain/tax"
	"hotelier/internal/infra"
	"hotelier/internal/pkg/pgconv"
	"hotelier/internal/usecase/shared"
)

func (r *CommandReads) PropertyByID(ctx context.Context, id uuid.UUID) (*shared.PropertySnapshot, error) {
	const query = `
		SELECT id, name, timezone, currency
		FROM properties WHERE id = $1 AND deleted_at IS NULL`

	var snap shared.PropertySnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.Name, &snap.Timezone, &snap.Currency)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property", err)
	}
	return &snap, nil
}

func (r *CommandReads) RoomTypeSpecs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]stay.RoomTypeSpec, error) {
	const query = `
		SELECT id, code, max_adults, max_children, max_occupancy
		FROM room_types WHERE id = ANY($1) AND deleted_at IS NULL`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load room type specs", err)
	}
	defer rows.Close()

	specs := make(map[uuid.UUID]stay.RoomTypeSpec, len(ids))
	for rows.Next() {
		var spec stay.RoomTypeSpec
		if err := rows.Scan(&spec.ID, &spec.Code, &spec.MaxAdults, &spec.MaxChildren, &spec.MaxOccupancy); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room type spec", err)
		}
		specs[spec.ID] = spec
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room type specs", err)
	}
	return specs, nil
}

func (r *CommandReads) RoomByID(ctx context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	const query = `
		SELECT id, property_id, room_type_id, room_number, is_active
		FROM rooms WHERE id = $1 AND deleted_at IS NULL`

	var snap shared.RoomSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.PropertyID, &snap.RoomTypeID, &snap.RoomNumber, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	return &snap, nil
}

func (r *CommandReads) RatePlanByID(ctx context.Context, id uuid.UUID) (*shared.RatePlanSnapshot, error) {
	const query = `
		SELECT id, property_id, code, refundable, includes_breakfast, cancellation_policy_id
		FROM rate_plans WHERE id = $1 AND deleted_at IS NULL`

	var snap shared.RatePlanSnapshot
	var policyID pgtype.UUID
	err := r.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.PropertyID, &snap.Code, &snap.Refundable, &snap.IncludesBreakfast, &policyID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rate plan not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rate plan", err)
	}
	snap.CancellationPolicyID = pgconv.UUIDPtrFromPgtype(policyID)
	return &snap, nil
}

func (r *CommandReads) CancellationPolicyByID(ctx context.Context, id uuid.UUID) (*shared.CancellationPolicySnapshot, error) {
	const query = `
		SELECT id, name, rules
		FROM cancellation_policies WHERE id = $1 AND deleted_at IS NULL`

	var snap shared.CancellationPolicySnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.Name, &snap.Rules)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("cancellation policy not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cancellation policy", err)
	}
	return &snap, nil
}

func (r *CommandReads) ActiveTaxFees(ctx context.Context, propertyID uuid.UUID) ([]tax.Fee, error) {
	const query = `
		SELECT name, kind, value::text, applies_to, per_night
		FROM tax_fees
		WHERE property_id = $1 AND active AND deleted_at IS NULL
		ORDER BY name`

	rows, err := r.db.Query(ctx, query, propertyID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load tax fees", err)
	}
	defer rows.Close()

	var fees []tax.Fee
	for rows.Next() {
		var (
			fee      tax.Fee
			kind     string
			valueStr string
		)
		if err := rows.Scan(&fee.Name, &kind, &valueStr, &fee.AppliesTo, &fee.PerNight); err != nil {
			return nil, infra.WrapRepoErr("failed to scan tax fee", err)
		}
		value, err := decimal.NewFromString(valueStr)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid tax fee value", err)
		}
		fee.Kind = tax.Kind(kind)
		fee.Value = value
		fee.Active = true
		fees = append(fees, fee)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read tax fees", err)
	}
	return fees, nil
}

func (r *CommandReads) PriceOverrides(ctx context.Context, ratePlanID, roomTypeID uuid.UUID, sr stay.StayRange) ([]pricing.Override, error) {
	const query = `
		SELECT night, price_cents, currency
		FROM rate_plan_prices
		WHERE rate_plan_id = $1 AND room_type_id = $2
		  AND night >= $3 AND night < $4
		  AND deleted_at IS NULL
		ORDER BY night`

	rows, err := r.db.Query(ctx, query, ratePlanID, roomTypeID,
		pgconv.DateToPgtype(sr.CheckIn()), pgconv.DateToPgtype(sr.CheckOut()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load price overrides", err)
	}
	defer rows.Close()

	var overrides []pricing.Override
	for rows.Next() {
		var o pricing.Override
		if err := rows.Scan(&o.Night, &o.Cents, &o.Currency); err != nil {
			return nil, infra.WrapRepoErr("failed to scan price override", err)
		}
		o.Currency = trimCurrency(o.Currency)
		overrides = append(overrides, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read price overrides", err)
	}
	return overrides, nil
}

func (r *CommandReads) BasePrice(ctx context.Context, ratePlanID, roomTypeID uuid.UUID) (*pricing.BasePrice, error) {
	const query = `
		SELECT price_cents, currency
		FROM rate_plan_base_prices
		WHERE rate_plan_id = $1 AND room_type_id = $2`

	var base pricing.BasePrice
	err := r.db.QueryRow(ctx, query, ratePlanID, roomTypeID).Scan(&base.Cents, &base.Currency)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil // absence is a valid state; the pricer decides
		}
		return nil, infra.WrapRepoErr("failed to find base price", err)
	}
	base.Currency = trimCurrency(base.Currency)
	return &base, nil
}
