package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hotelier/internal/domain/stay"
	"hotelier/internal/infra"
	"hotelier/internal/infra/db"
	"hotelier/internal/pkg/pgconv"
	"hotelier/internal/usecase/shared"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) shared.ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) Create(ctx context.Context, res *stay.Reservation) error {
	const insertReservation = `
		INSERT INTO reservations (id, property_id, guest_id, status, check_in, check_out, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`

	_, err := r.db.Exec(ctx, insertReservation,
		res.ID(),
		res.PropertyID(),
		res.GuestID(),
		res.Status().String(),
		pgconv.DateToPgtype(res.StayRange().CheckIn()),
		pgconv.DateToPgtype(res.StayRange().CheckOut()),
		pgconv.TimeToPgtype(res.CreatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}

	const insertLine = `
		INSERT INTO reservation_rooms (id, reservation_id, room_type_id, rate_plan_id, room_id, requested_room_id, adults, children, stay)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	sr := res.StayRange()
	for _, line := range res.Lines() {
		_, err := r.db.Exec(ctx, insertLine,
			line.ID(),
			res.ID(),
			line.RoomTypeID(),
			line.RatePlanID(),
			pgconv.UUIDPtrToPgtype(line.AssignedRoomID()),
			pgconv.UUIDPtrToPgtype(line.RequestedRoomID()),
			line.Guests().Adults,
			line.Guests().Children,
			pgconv.RangeFromDates(sr.CheckIn(), sr.CheckOut()),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create reservation room line", err)
		}
	}
	return nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status stay.Status, now time.Time) error {
	const query = `UPDATE reservations SET status = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query, id, status.String(), pgconv.TimeToPgtype(now))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) AssignRoom(ctx context.Context, lineID, roomID uuid.UUID) error {
	const query = `UPDATE reservation_rooms SET room_id = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, lineID, roomID)
	if err != nil {
		return infra.WrapRepoErr("failed to assign room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation room line not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) StoreNightlyRates(ctx context.Context, lineID uuid.UUID, rates []stay.NightlyRate) error {
	const query = `
		INSERT INTO reservation_nightly_rates (reservation_room_id, night, price_cents, currency)
		VALUES ($1, $2, $3, $4)`

	for _, rate := range rates {
		_, err := r.db.Exec(ctx, query,
			lineID,
			pgconv.DateToPgtype(rate.Night),
			rate.Price.Cents(),
			rate.Price.Currency(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to store nightly rate", err)
		}
	}
	return nil
}

// ReleaseRooms marks every line released so the exclusion constraint stops
// counting them; rows are kept for history.
func (r *ReservationRepository) ReleaseRooms(ctx context.Context, reservationID uuid.UUID, now time.Time) error {
	const query = `
		UPDATE reservation_rooms SET released_at = $2, updated_at = $2
		WHERE reservation_id = $1 AND released_at IS NULL`

	if _, err := r.db.Exec(ctx, query, reservationID, pgconv.TimeToPgtype(now)); err != nil {
		return infra.WrapRepoErr("failed to release reservation rooms", err)
	}
	return nil
}
