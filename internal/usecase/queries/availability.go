package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hotelier/internal/domain/stay"
	"hotelier/internal/pkg/errs"
	"hotelier/internal/usecase/shared"
)

type AvailabilityQueries interface {
	Check(ctx context.Context, propertyID, roomTypeID uuid.UUID, from, to time.Time) ([]DayAvailabilityView, error)
}

type availabilityQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewAvailabilityQueries(uow shared.UnitOfWork) AvailabilityQueries {
	return &availabilityQueriesImpl{uow: uow}
}

// Check reads the room count and committed occupancy inside one read-only
// transaction so both sides of the computation see the same snapshot.
func (q *availabilityQueriesImpl) Check(ctx context.Context, propertyID, roomTypeID uuid.UUID, from, to time.Time) ([]DayAvailabilityView, error) {
	sr, err := stay.NewStayRange(from, to)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	var days []stay.DayAvailability
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.CommandReads) error {
		if _, err := reads.PropertyByID(ctx, propertyID); err != nil {
			return mapReadErr(err, errs.ErrPropertyNotFound)
		}
		specs, err := reads.RoomTypeSpecs(ctx, []uuid.UUID{roomTypeID})
		if err != nil {
			return mapReadErr(err, errs.ErrRoomTypeNotFound)
		}
		if _, ok := specs[roomTypeID]; !ok {
			return errs.Mark(errs.New("unknown room type"), errs.ErrRoomTypeNotFound)
		}

		total, err := reads.TotalActiveRooms(ctx, propertyID, roomTypeID)
		if err != nil {
			return mapReadErr(err, errs.ErrRoomTypeNotFound)
		}
		occupied, err := reads.OccupiedIntervals(ctx, propertyID, roomTypeID, sr)
		if err != nil {
			return mapReadErr(err, errs.ErrRoomTypeNotFound)
		}

		days, err = stay.ComputeAvailability(total, occupied, sr)
		if err != nil {
			// Oversell in committed data means a prior allocation bug;
			// surface it loudly instead of clamping.
			return errs.Mark(err, errs.ErrInventoryInvariantViolation)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	views := make([]DayAvailabilityView, len(days))
	for i, d := range days {
		views[i] = DayAvailabilityView{
			Night:      d.Night,
			TotalRooms: d.TotalRooms,
			Reserved:   d.Reserved,
			Available:  d.Available,
		}
	}
	return views, nil
}
