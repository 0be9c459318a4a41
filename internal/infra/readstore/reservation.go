package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"hotelier/internal/domain/stay"
	"hotelier/internal/infra"
	"hotelier/internal/pkg/pgconv"
)

// ReservationByID materializes the full aggregate: reservation, room lines
// and stored nightly rates.
func (r *CommandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*stay.Reservation, error) {
	const reservationQuery = `
		SELECT id, property_id, guest_id, status, check_in, check_out, created_at, updated_at
		FROM reservations WHERE id = $1 AND deleted_at IS NULL`

	var (
		resID, propertyID, guestID uuid.UUID
		status                     string
		checkIn, checkOut          pgtype.Date
		createdAt, updatedAt       pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, reservationQuery, id).Scan(
		&resID, &propertyID, &guestID, &status, &checkIn, &checkOut, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	sr, err := stay.NewStayRange(checkIn.Time, checkOut.Time)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stay range in storage", err)
	}

	lines, err := r.roomLines(ctx, resID)
	if err != nil {
		return nil, err
	}

	return stay.ReconstructReservation(
		resID, propertyID, guestID,
		sr,
		stay.Status(status),
		lines,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *CommandReads) roomLines(ctx context.Context, reservationID uuid.UUID) ([]stay.RoomLine, error) {
	const linesQuery = `
		SELECT id, room_type_id, rate_plan_id, room_id, requested_room_id, adults, children
		FROM reservation_rooms
		WHERE reservation_id = $1
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, linesQuery, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load reservation room lines", err)
	}
	defer rows.Close()

	var lines []stay.RoomLine
	for rows.Next() {
		var (
			lineID, roomTypeID, ratePlanID uuid.UUID
			roomID, requestedRoomID        pgtype.UUID
			adults, children               int
		)
		if err := rows.Scan(&lineID, &roomTypeID, &ratePlanID, &roomID, &requestedRoomID, &adults, &children); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation room line", err)
		}
		rates, err := r.nightlyRates(ctx, lineID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, stay.ReconstructRoomLine(
			lineID, roomTypeID, ratePlanID,
			pgconv.UUIDPtrFromPgtype(roomID),
			pgconv.UUIDPtrFromPgtype(requestedRoomID),
			stay.GuestCount{Adults: adults, Children: children},
			rates,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation room lines", err)
	}
	return lines, nil
}

func (r *CommandReads) nightlyRates(ctx context.Context, lineID uuid.UUID) ([]stay.NightlyRate, error) {
	const query = `
		SELECT night, price_cents, currency
		FROM reservation_nightly_rates
		WHERE reservation_room_id = $1
		ORDER BY night`

	rows, err := r.db.Query(ctx, query, lineID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load nightly rates", err)
	}
	defer rows.Close()

	var rates []stay.NightlyRate
	for rows.Next() {
		var (
			night    pgtype.Date
			cents    int64
			currency string
		)
		if err := rows.Scan(&night, &cents, &currency); err != nil {
			return nil, infra.WrapRepoErr("failed to scan nightly rate", err)
		}
		rates = append(rates, stay.NightlyRate{
			Night: night.Time,
			Price: stay.NewMoney(cents, trimCurrency(currency)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read nightly rates", err)
	}
	return rates, nil
}
