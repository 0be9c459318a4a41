package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"hotelier/internal/domain/stay"
	"hotelier/internal/pkg/clock"
	"hotelier/internal/pkg/config"
	"hotelier/internal/pkg/errs"
	"hotelier/internal/usecase/shared"
)

const (
	endpointCreateReservation = "reservations.create"

	idempotencyStatusCompleted = "completed"
)

type reservationCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	cfg   config.BookingConfig
}

func NewReservationCommands(uow shared.UnitOfWork, clk clock.Clock, cfg config.BookingConfig) ReservationCommands {
	return &reservationCommandsImpl{uow: uow, clock: clk, cfg: cfg}
}

// Create places a hold. The idempotency claim, the hold insert and the
// completion marker commit atomically: a concurrent request with the same
// key either sees the completed record and replays it, or finds the claim
// still processing and is told to retry later.
func (c *reservationCommandsImpl) Create(ctx context.Context, actorID, idempotencyKey uuid.UUID, in CreateReservationInput) (*CreateReservationResult, error) {
	if idempotencyKey == uuid.Nil {
		return nil, errs.ErrIdempotencyKeyRequired
	}

	hash, err := requestHash(in)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	now := c.clock.Now()
	expiresAt := now.Add(c.cfg.IdempotencyTTL)

	var result *CreateReservationResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted, err := tx.Idempotency().TryInsert(ctx, idempotencyKey, actorID, endpointCreateReservation, hash, expiresAt)
		if err != nil {
			return mapWriteErr(err, errs.ErrValidation)
		}
		if inserted == 0 {
			replay, err := c.resolveExistingKey(ctx, tx, idempotencyKey, actorID, hash, now, expiresAt)
			if err != nil {
				return err
			}
			if replay != nil {
				result = replay
				return nil
			}
			// expired claim taken over; fall through and build the hold
		}

		res, err := c.buildHold(ctx, tx.Reads(), in, now)
		if err != nil {
			return err
		}
		if err := tx.Reservations().Create(ctx, res); err != nil {
			return mapWriteErr(err, errs.ErrValidation)
		}

		payload, err := json.Marshal(map[string]any{
			"reservation_id": res.ID(),
			"guest_id":       res.GuestID(),
			"check_in":       res.StayRange().CheckIn().Format(stay.DateLayout),
			"check_out":      res.StayRange().CheckOut().Format(stay.DateLayout),
		})
		if err != nil {
			return errs.Wrap(err, "failed to encode notification payload")
		}
		if err := tx.Notifications().CreateJob(ctx, "email", "reservation.hold_created", payload, now); err != nil {
			return mapWriteErr(err, errs.ErrValidation)
		}

		if err := tx.Idempotency().UpdateStatusCompleted(ctx, idempotencyKey, actorID, res.ID()); err != nil {
			return mapWriteErr(err, errs.ErrValidation)
		}

		result = &CreateReservationResult{ReservationID: res.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveExistingKey decides what an already-claimed key means: a replay of
// a completed request, a concurrent request still in flight, a payload
// mismatch, or a stale claim this request may take over. It returns a
// non-nil result only for replays.
func (c *reservationCommandsImpl) resolveExistingKey(
	ctx context.Context,
	tx shared.Tx,
	key, actorID uuid.UUID,
	hash string,
	now, expiresAt time.Time,
) (*CreateReservationResult, error) {
	record, err := tx.Reads().IdempotencyByKey(ctx, key, actorID)
	if err != nil {
		return nil, mapWriteErr(err, errs.ErrDuplicateReservation)
	}
	if record.RequestHash != hash {
		return nil, errs.Mark(errs.New("idempotency key reused with a different payload"), errs.ErrDuplicateReservation)
	}
	if record.Status == idempotencyStatusCompleted {
		if record.ResultReservationID == nil {
			return nil, errs.Mark(errs.New("completed idempotency record lacks a result"), errs.ErrDuplicateReservation)
		}
		return &CreateReservationResult{ReservationID: *record.ResultReservationID, Replayed: true}, nil
	}
	if now.Before(record.ExpiresAt) {
		return nil, errs.Mark(errs.New("a request with this key is still processing"), errs.ErrIdempotencyInProgress)
	}
	claimed, err := tx.Idempotency().ClaimExpiredKey(ctx, key, actorID, hash, expiresAt)
	if err != nil {
		return nil, mapWriteErr(err, errs.ErrDuplicateReservation)
	}
	if claimed == 0 {
		return nil, errs.Mark(errs.New("another request took over this key"), errs.ErrIdempotencyInProgress)
	}
	return nil, nil
}

// buildHold validates the request against reference data and constructs the
// hold aggregate. Availability is deliberately not checked here.
func (c *reservationCommandsImpl) buildHold(ctx context.Context, reads shared.CommandReads, in CreateReservationInput, now time.Time) (*stay.Reservation, error) {
	property, err := reads.PropertyByID(ctx, in.PropertyID)
	if err != nil {
		return nil, mapWriteErr(err, errs.ErrPropertyNotFound)
	}

	sr, err := stay.NewStayRange(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	if len(in.Lines) == 0 {
		return nil, errs.Mark(errs.New("at least one room line is required"), errs.ErrValidation)
	}

	roomTypeIDs := make([]uuid.UUID, 0, len(in.Lines))
	for _, l := range in.Lines {
		roomTypeIDs = append(roomTypeIDs, l.RoomTypeID)
	}
	specs, err := reads.RoomTypeSpecs(ctx, roomTypeIDs)
	if err != nil {
		return nil, mapWriteErr(err, errs.ErrRoomTypeNotFound)
	}

	lines := make([]stay.RoomLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if _, ok := specs[l.RoomTypeID]; !ok {
			return nil, errs.Mark(errs.New("unknown room type on room line"), errs.ErrRoomTypeNotFound)
		}
		plan, err := reads.RatePlanByID(ctx, l.RatePlanID)
		if err != nil {
			return nil, mapWriteErr(err, errs.ErrRatePlanNotFound)
		}
		if plan.PropertyID != property.ID {
			return nil, errs.Mark(errs.New("rate plan belongs to another property"), errs.ErrValidation)
		}
		if l.RequestedRoomID != nil {
			room, err := reads.RoomByID(ctx, *l.RequestedRoomID)
			if err != nil {
				return nil, mapWriteErr(err, errs.ErrRoomNotFound)
			}
			if room.PropertyID != property.ID || room.RoomTypeID != l.RoomTypeID {
				return nil, errs.Mark(errs.New("requested room does not match the room line"), errs.ErrValidation)
			}
			if !room.IsActive {
				return nil, errs.Mark(errs.New("requested room is out of service"), errs.ErrValidation)
			}
		}
		lines = append(lines, stay.NewRoomLine(l.RoomTypeID, l.RatePlanID, stay.GuestCount{Adults: l.Adults, Children: l.Children}, l.RequestedRoomID))
	}

	res, err := stay.NewReservation(in.PropertyID, in.GuestID, sr, lines, specs, now)
	if err != nil {
		switch {
		case errors.Is(err, stay.ErrCapacityExceeded):
			return nil, errs.Mark(err, errs.ErrCapacityExceeded)
		default:
			return nil, errs.Mark(err, errs.ErrValidation)
		}
	}
	return res, nil
}

// requestHash fingerprints the booking payload so a reused key with a
// different body is rejected instead of silently replayed.
func requestHash(in CreateReservationInput) (string, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
