package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"hotelier/internal/domain/stay"
	"hotelier/internal/infra"
	"hotelier/internal/pkg/pgconv"
	"hotelier/internal/usecase/shared"
)

func (r *CommandReads) TotalActiveRooms(ctx context.Context, propertyID, roomTypeID uuid.UUID) (int, error) {
	const query = `
		SELECT count(*) FROM rooms
		WHERE property_id = $1 AND room_type_id = $2 AND is_active AND deleted_at IS NULL`

	var total int
	if err := r.db.QueryRow(ctx, query, propertyID, roomTypeID).Scan(&total); err != nil {
		return 0, infra.WrapRepoErr("failed to count active rooms", err)
	}
	return total, nil
}

// OccupiedIntervals returns the stay ranges of committed room lines of the
// type overlapping the queried range. Only lines with a bound room and no
// release consume inventory; holds never appear here.
func (r *CommandReads) OccupiedIntervals(ctx context.Context, propertyID, roomTypeID uuid.UUID, sr stay.StayRange) ([]stay.StayRange, error) {
	const query = `
		SELECT rr.stay
		FROM reservation_rooms rr
		JOIN reservations res ON res.id = rr.reservation_id
		WHERE res.property_id = $1
		  AND rr.room_type_id = $2
		  AND rr.room_id IS NOT NULL
		  AND rr.released_at IS NULL
		  AND res.status IN ('confirmed', 'checked_in', 'checked_out')
		  AND rr.stay && $3`

	rows, err := r.db.Query(ctx, query, propertyID, roomTypeID, pgconv.RangeFromDates(sr.CheckIn(), sr.CheckOut()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load occupied intervals", err)
	}
	defer rows.Close()

	var intervals []stay.StayRange
	for rows.Next() {
		var rng pgtype.Range[pgtype.Date]
		if err := rows.Scan(&rng); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupied interval", err)
		}
		lower, upper := pgconv.DatesFromRange(rng)
		interval, err := stay.NewStayRange(lower, upper)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid stay range in storage", err)
		}
		intervals = append(intervals, interval)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read occupied intervals", err)
	}
	return intervals, nil
}

// FreeRooms lists active rooms of the type with no committed overlap for
// the range, ordered by room number so allocation is deterministic.
func (r *CommandReads) FreeRooms(ctx context.Context, propertyID, roomTypeID uuid.UUID, sr stay.StayRange) ([]shared.RoomSnapshot, error) {
	const query = `
		SELECT rm.id, rm.property_id, rm.room_type_id, rm.room_number, rm.is_active
		FROM rooms rm
		WHERE rm.property_id = $1 AND rm.room_type_id = $2
		  AND rm.is_active AND rm.deleted_at IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM reservation_rooms rr
			WHERE rr.room_id = rm.id
			  AND rr.released_at IS NULL
			  AND rr.stay && $3
		  )
		ORDER BY rm.room_number`

	rows, err := r.db.Query(ctx, query, propertyID, roomTypeID, pgconv.RangeFromDates(sr.CheckIn(), sr.CheckOut()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load free rooms", err)
	}
	defer rows.Close()

	var out []shared.RoomSnapshot
	for rows.Next() {
		var snap shared.RoomSnapshot
		if err := rows.Scan(&snap.ID, &snap.PropertyID, &snap.RoomTypeID, &snap.RoomNumber, &snap.IsActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan free room", err)
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read free rooms", err)
	}
	return out, nil
}
