package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hotelier/internal/domain/folio"
	"hotelier/internal/domain/policy"
	"hotelier/internal/domain/pricing"
	"hotelier/internal/domain/stay"
	"hotelier/internal/domain/tax"
	"hotelier/internal/pkg/errs"
	"hotelier/internal/usecase/shared"
)

// Transition dispatches a lifecycle change. Confirmation is the only path
// that allocates inventory and therefore the only one that needs the
// serializable boundary.
func (c *reservationCommandsImpl) Transition(ctx context.Context, reservationID uuid.UUID, in TransitionInput) error {
	target := stay.Status(in.Target)
	if !target.IsValid() || target == stay.StatusHold {
		return errs.Mark(errs.New("unknown transition target"), errs.ErrValidation)
	}

	switch target {
	case stay.StatusConfirmed:
		return c.confirm(ctx, reservationID)
	case stay.StatusCheckedIn:
		return c.checkIn(ctx, reservationID)
	case stay.StatusCheckedOut:
		return c.checkOut(ctx, reservationID, in.SettleBalance)
	case stay.StatusCancelled:
		return c.cancel(ctx, reservationID)
	default:
		return errs.Mark(errs.New("unknown transition target"), errs.ErrValidation)
	}
}

// confirm turns a hold into a confirmed reservation: rooms are bound, the
// stay is priced, and the folio is opened with the room charges and taxes.
// Everything happens inside one serializable transaction so the
// availability the allocator saw is the availability it commits against.
func (c *reservationCommandsImpl) confirm(ctx context.Context, reservationID uuid.UUID) error {
	err := c.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := c.clock.Now()
		reads := tx.Reads()

		res, err := reads.ReservationByID(ctx, reservationID)
		if err != nil {
			return mapWriteErr(err, errs.ErrReservationNotFound)
		}
		if res.Status() != stay.StatusHold {
			return errs.Mark(errs.New("only holds can be confirmed"), errs.ErrInvalidStateTransition)
		}
		property, err := reads.PropertyByID(ctx, res.PropertyID())
		if err != nil {
			return mapWriteErr(err, errs.ErrPropertyNotFound)
		}

		if err := c.allocateRooms(ctx, tx, res); err != nil {
			return err
		}

		f, err := c.priceAndOpenFolio(ctx, tx, res, property.Currency, now)
		if err != nil {
			return err
		}

		if err := res.TransitionTo(stay.StatusConfirmed, now); err != nil {
			return errs.Mark(err, errs.ErrInvalidStateTransition)
		}
		if err := tx.Reservations().UpdateStatus(ctx, res.ID(), res.Status(), now); err != nil {
			return mapWriteErr(err, errs.ErrReservationNotFound)
		}
		if err := tx.Folios().Create(ctx, f); err != nil {
			return mapWriteErr(err, errs.ErrValidation)
		}

		payload, err := json.Marshal(map[string]any{
			"reservation_id": res.ID(),
			"folio_id":       f.ID(),
		})
		if err != nil {
			return errs.Wrap(err, "failed to encode notification payload")
		}
		return mapWriteErr(tx.Notifications().CreateJob(ctx, "email", "reservation.confirmed", payload, now), errs.ErrValidation)
	})
	// An exclusion violation at commit means another allocation won the race.
	return mapWriteErr(err, errs.ErrReservationNotFound)
}

// allocateRooms binds a concrete room to every line. Requested rooms are
// honored first; the rest get the lowest-numbered free room so repeated
// runs over the same state pick the same rooms.
func (c *reservationCommandsImpl) allocateRooms(ctx context.Context, tx shared.Tx, res *stay.Reservation) error {
	sr := res.StayRange()

	seen := make(map[uuid.UUID]bool)
	var typeOrder []uuid.UUID
	for _, l := range res.Lines() {
		if !seen[l.RoomTypeID()] {
			seen[l.RoomTypeID()] = true
			typeOrder = append(typeOrder, l.RoomTypeID())
		}
	}

	for _, roomTypeID := range typeOrder {
		lines := res.LinesOfType(roomTypeID)
		free, err := tx.Reads().FreeRooms(ctx, res.PropertyID(), roomTypeID, sr)
		if err != nil {
			return mapWriteErr(err, errs.ErrRoomTypeNotFound)
		}
		if len(free) < len(lines) {
			return errs.Mark(
				fmt.Errorf("need %d rooms of type %s, %d free", len(lines), roomTypeID, len(free)),
				errs.ErrInsufficientAvailability)
		}

		taken := make(map[uuid.UUID]bool, len(lines))
		for _, line := range lines {
			if line.RequestedRoomID() == nil {
				continue
			}
			want := *line.RequestedRoomID()
			if taken[want] || !containsRoom(free, want) {
				return errs.Mark(
					fmt.Errorf("requested room %s is not free for %s", want, sr),
					errs.ErrInsufficientAvailability)
			}
			taken[want] = true
			line.AssignRoom(want)
		}
		for _, line := range lines {
			if line.AssignedRoomID() != nil {
				continue
			}
			for _, room := range free {
				if !taken[room.ID] {
					taken[room.ID] = true
					line.AssignRoom(room.ID)
					break
				}
			}
		}
		for _, line := range lines {
			if err := tx.Reservations().AssignRoom(ctx, line.ID(), *line.AssignedRoomID()); err != nil {
				return mapWriteErr(err, errs.ErrReservationNotFound)
			}
		}
	}
	return nil
}

func containsRoom(rooms []shared.RoomSnapshot, id uuid.UUID) bool {
	for _, r := range rooms {
		if r.ID == id {
			return true
		}
	}
	return false
}

// priceAndOpenFolio resolves nightly rates for every line, persists them,
// and builds the opening folio: one room charge per line plus the
// property's active taxes and fees on the stay subtotal.
func (c *reservationCommandsImpl) priceAndOpenFolio(ctx context.Context, tx shared.Tx, res *stay.Reservation, currency string, now time.Time) (*folio.Folio, error) {
	reads := tx.Reads()
	sr := res.StayRange()

	f := folio.NewFolio(res.ID(), currency)
	total := stay.NewMoney(0, currency)

	lines := res.Lines()
	for i := range lines {
		line := &lines[i]
		overrides, err := reads.PriceOverrides(ctx, line.RatePlanID(), line.RoomTypeID(), sr)
		if err != nil {
			return nil, mapWriteErr(err, errs.ErrRatePlanNotFound)
		}
		base, err := reads.BasePrice(ctx, line.RatePlanID(), line.RoomTypeID())
		if err != nil {
			return nil, mapWriteErr(err, errs.ErrRatePlanNotFound)
		}

		rates, err := pricing.Quote(sr, overrides, base, currency)
		if err != nil {
			switch {
			case errors.Is(err, pricing.ErrPricingUnavailable):
				return nil, errs.Mark(err, errs.ErrPricingUnavailable)
			case errors.Is(err, pricing.ErrCurrencyMismatch):
				return nil, errs.Mark(err, errs.ErrCurrencyMismatch)
			default:
				return nil, err
			}
		}
		line.SetRates(rates)
		if err := tx.Reservations().StoreNightlyRates(ctx, line.ID(), rates); err != nil {
			return nil, mapWriteErr(err, errs.ErrReservationNotFound)
		}

		subtotal, err := line.Subtotal()
		if err != nil {
			return nil, errs.Wrap(err, "failed to total room line")
		}
		if err := f.Post(folio.NewItem(folio.KindRoomCharge, fmt.Sprintf("room charges %s", sr), subtotal, now)); err != nil {
			return nil, errs.Mark(err, errs.ErrCurrencyMismatch)
		}
		if total, err = total.Add(subtotal); err != nil {
			return nil, errs.Mark(err, errs.ErrCurrencyMismatch)
		}
	}

	fees, err := reads.ActiveTaxFees(ctx, res.PropertyID())
	if err != nil {
		return nil, mapWriteErr(err, errs.ErrPropertyNotFound)
	}
	for _, tl := range tax.Apply(fees, tax.CategoryRoom, total, sr.Nights()) {
		kind := folio.KindTax
		if tl.Kind == tax.KindFlat {
			kind = folio.KindFee
		}
		if err := f.Post(folio.NewItem(kind, tl.Name, tl.Amount, now)); err != nil {
			return nil, errs.Mark(err, errs.ErrCurrencyMismatch)
		}
	}
	return f, nil
}

func (c *reservationCommandsImpl) checkIn(ctx context.Context, reservationID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := c.clock.Now()
		res, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			return mapWriteErr(err, errs.ErrReservationNotFound)
		}
		if !res.FullyAssigned() {
			return errs.Mark(errs.New("cannot check in without assigned rooms"), errs.ErrInvalidStateTransition)
		}
		if err := res.TransitionTo(stay.StatusCheckedIn, now); err != nil {
			return errs.Mark(err, errs.ErrInvalidStateTransition)
		}
		return mapWriteErr(tx.Reservations().UpdateStatus(ctx, res.ID(), res.Status(), now), errs.ErrReservationNotFound)
	})
}

// checkOut requires the folio to be settled. With SettleBalance a closing
// payment for the outstanding amount is posted instead; a credit balance
// (house owes the guest) always blocks until it is refunded.
func (c *reservationCommandsImpl) checkOut(ctx context.Context, reservationID uuid.UUID, settleBalance bool) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := c.clock.Now()
		res, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			return mapWriteErr(err, errs.ErrReservationNotFound)
		}
		f, err := tx.Reads().FolioByReservationID(ctx, res.ID())
		if err != nil {
			return mapWriteErr(err, errs.ErrFolioNotFound)
		}

		balance := f.Balance()
		if !balance.IsZero() {
			if balance.IsNegative() || !settleBalance {
				return errs.Mark(
					fmt.Errorf("outstanding balance %s", balance),
					errs.ErrBalanceNotSettled)
			}
			item := folio.NewItem(folio.KindPayment, "settlement at check-out", balance.Neg(), now)
			if err := f.Post(item); err != nil {
				return errs.Mark(err, errs.ErrCurrencyMismatch)
			}
			if err := tx.Folios().PostItem(ctx, f.ID(), item); err != nil {
				return mapWriteErr(err, errs.ErrFolioNotFound)
			}
		}

		if err := res.TransitionTo(stay.StatusCheckedOut, now); err != nil {
			return errs.Mark(err, errs.ErrInvalidStateTransition)
		}
		if err := tx.Reservations().UpdateStatus(ctx, res.ID(), res.Status(), now); err != nil {
			return mapWriteErr(err, errs.ErrReservationNotFound)
		}

		f.Close()
		return mapWriteErr(tx.Folios().UpdateStatus(ctx, f.ID(), f.Status(), now), errs.ErrFolioNotFound)
	})
}

// cancel evaluates the cancellation policy, refunds payments up to the
// policy's share, releases the rooms back to inventory and parks the
// reservation in its terminal state.
func (c *reservationCommandsImpl) cancel(ctx context.Context, reservationID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := c.clock.Now()
		reads := tx.Reads()

		res, err := reads.ReservationByID(ctx, reservationID)
		if err != nil {
			return mapWriteErr(err, errs.ErrReservationNotFound)
		}
		if !res.Status().CanTransitionTo(stay.StatusCancelled) {
			return errs.Mark(errs.New("reservation is not cancellable"), errs.ErrInvalidStateTransition)
		}

		percent, err := c.refundPercent(ctx, reads, res, now)
		if err != nil {
			return err
		}

		f, err := reads.FolioByReservationID(ctx, res.ID())
		if err != nil {
			mapped := mapWriteErr(err, errs.ErrFolioNotFound)
			if !errors.Is(mapped, errs.ErrFolioNotFound) {
				return mapped
			}
			// a hold that was never confirmed has no folio and nothing to refund
			f = nil
		}

		if f != nil && f.Status() == folio.StatusOpen && percent > 0 {
			if err := c.refundPayments(ctx, tx, f, percent, now); err != nil {
				return err
			}
		}

		if err := res.TransitionTo(stay.StatusCancelled, now); err != nil {
			return errs.Mark(err, errs.ErrInvalidStateTransition)
		}
		if err := tx.Reservations().UpdateStatus(ctx, res.ID(), res.Status(), now); err != nil {
			return mapWriteErr(err, errs.ErrReservationNotFound)
		}
		if err := tx.Reservations().ReleaseRooms(ctx, res.ID(), now); err != nil {
			return mapWriteErr(err, errs.ErrReservationNotFound)
		}

		payload, err := json.Marshal(map[string]any{
			"reservation_id": res.ID(),
			"refund_percent": percent,
		})
		if err != nil {
			return errs.Wrap(err, "failed to encode notification payload")
		}
		return mapWriteErr(tx.Notifications().CreateJob(ctx, "email", "reservation.cancelled", payload, now), errs.ErrValidation)
	})
}

// refundPercent evaluates every line's rate plan policy at cancellation
// time and keeps the least generous answer, so mixed-plan reservations
// never refund more than their strictest plan allows.
func (c *reservationCommandsImpl) refundPercent(ctx context.Context, reads shared.CommandReads, res *stay.Reservation, now time.Time) (int, error) {
	percent := 100
	for _, line := range res.Lines() {
		plan, err := reads.RatePlanByID(ctx, line.RatePlanID())
		if err != nil {
			return 0, mapWriteErr(err, errs.ErrRatePlanNotFound)
		}

		p := 0
		switch {
		case !plan.Refundable:
			// non-refundable plans keep everything
		case plan.CancellationPolicyID == nil:
			p = 100
		default:
			snap, err := reads.CancellationPolicyByID(ctx, *plan.CancellationPolicyID)
			if err != nil {
				return 0, mapWriteErr(err, errs.ErrRatePlanNotFound)
			}
			pol, err := policy.Parse(snap.Rules)
			if err != nil {
				return 0, errs.Wrap(err, "stored cancellation policy is malformed")
			}
			p = pol.RefundPercent(now, res.StayRange().CheckIn())
		}
		if p < percent {
			percent = p
		}
	}
	return percent, nil
}

// refundPayments spreads the policy's share of the total paid across the
// folio's payments in posting order, never exceeding any single payment's
// remaining refundable amount.
func (c *reservationCommandsImpl) refundPayments(ctx context.Context, tx shared.Tx, f *folio.Folio, percent int, now time.Time) error {
	payments := f.PaymentItems()

	var totalRefundable int64
	for _, p := range payments {
		remaining, err := f.RefundableCents(p.ID())
		if err != nil {
			return errs.Wrap(err, "failed to compute refundable amount")
		}
		totalRefundable += remaining
	}

	// truncate in the house's favor
	target := totalRefundable * int64(percent) / 100

	for _, p := range payments {
		if target <= 0 {
			break
		}
		remaining, err := f.RefundableCents(p.ID())
		if err != nil {
			return errs.Wrap(err, "failed to compute refundable amount")
		}
		take := remaining
		if take > target {
			take = target
		}
		if take <= 0 {
			continue
		}

		item, err := f.Refund(p.ID(), take, "cancellation refund", now)
		if err != nil {
			return errs.Mark(err, errs.ErrRefundExceedsPayment)
		}
		if err := tx.Folios().PostItem(ctx, f.ID(), *item); err != nil {
			return mapWriteErr(err, errs.ErrFolioNotFound)
		}
		if err := tx.Folios().CreateRefund(ctx, p.ID(), item.ID(), take, now); err != nil {
			return mapWriteErr(err, errs.ErrFolioNotFound)
		}
		target -= take
	}
	return nil
}
