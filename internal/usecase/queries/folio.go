package queries

import (
	"context"

	"github.com/google/uuid"

	"hotelier/internal/domain/folio"
	"hotelier/internal/pkg/errs"
	"hotelier/internal/usecase/shared"
)

type FolioQueries interface {
	GetByReservationID(ctx context.Context, reservationID uuid.UUID) (*FolioView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*FolioView, error)
}

type folioQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewFolioQueries(uow shared.UnitOfWork) FolioQueries {
	return &folioQueriesImpl{uow: uow}
}

func (q *folioQueriesImpl) GetByReservationID(ctx context.Context, reservationID uuid.UUID) (*FolioView, error) {
	f, err := q.uow.CommandReads().FolioByReservationID(ctx, reservationID)
	if err != nil {
		return nil, mapReadErr(err, errs.ErrFolioNotFound)
	}
	return toFolioView(f), nil
}

func (q *folioQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*FolioView, error) {
	f, err := q.uow.CommandReads().FolioByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, errs.ErrFolioNotFound)
	}
	return toFolioView(f), nil
}

// The view exposes the full posting history, voided items included; the
// balance is derived from the non-voided subset.
func toFolioView(f *folio.Folio) *FolioView {
	items := make([]FolioItemView, 0, len(f.Items()))
	for _, it := range f.Items() {
		items = append(items, FolioItemView{
			ID:            it.ID(),
			Kind:          string(it.Kind()),
			Description:   it.Description(),
			AmountCents:   it.Amount().Cents(),
			Currency:      it.Amount().Currency(),
			PaymentItemID: it.PaymentItemID(),
			PostedAt:      it.PostedAt(),
			VoidedAt:      it.VoidedAt(),
		})
	}
	return &FolioView{
		ID:            f.ID(),
		ReservationID: f.ReservationID(),
		Status:        string(f.Status()),
		Currency:      f.Currency(),
		BalanceCents:  f.Balance().Cents(),
		Items:         items,
	}
}
