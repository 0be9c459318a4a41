package queries

import (
	"context"

	"github.com/google/uuid"

	"hotelier/internal/domain/stay"
	"hotelier/internal/pkg/errs"
	"hotelier/internal/usecase/shared"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
}

type reservationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewReservationQueries(uow shared.UnitOfWork) ReservationQueries {
	return &reservationQueriesImpl{uow: uow}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	res, err := q.uow.CommandReads().ReservationByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, errs.ErrReservationNotFound)
	}
	return toReservationView(res), nil
}

func toReservationView(res *stay.Reservation) *ReservationView {
	lines := make([]RoomLineView, 0, len(res.Lines()))
	for _, l := range res.Lines() {
		rates := make([]NightlyRateView, 0, len(l.Rates()))
		for _, r := range l.Rates() {
			rates = append(rates, NightlyRateView{
				Night:      r.Night,
				PriceCents: r.Price.Cents(),
				Currency:   r.Price.Currency(),
			})
		}
		lines = append(lines, RoomLineView{
			ID:             l.ID(),
			RoomTypeID:     l.RoomTypeID(),
			RatePlanID:     l.RatePlanID(),
			AssignedRoomID: l.AssignedRoomID(),
			Adults:         l.Guests().Adults,
			Children:       l.Guests().Children,
			NightlyRates:   rates,
		})
	}
	return &ReservationView{
		ID:         res.ID(),
		PropertyID: res.PropertyID(),
		GuestID:    res.GuestID(),
		Status:     string(res.Status()),
		CheckIn:    res.StayRange().CheckIn(),
		CheckOut:   res.StayRange().CheckOut(),
		Lines:      lines,
		CreatedAt:  res.CreatedAt(),
		UpdatedAt:  res.UpdatedAt(),
	}
}
