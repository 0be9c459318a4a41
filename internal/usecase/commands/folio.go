package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"hotelier/internal/domain/folio"
	"hotelier/internal/domain/stay"
	"hotelier/internal/pkg/clock"
	"hotelier/internal/pkg/errs"
	"hotelier/internal/usecase/shared"
)

type folioCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewFolioCommands(uow shared.UnitOfWork, clk clock.Clock) FolioCommands {
	return &folioCommandsImpl{uow: uow, clock: clk}
}

// PostItem appends a charge, payment or adjustment to an open folio. The
// caller sends magnitudes; credit kinds are stored negative. Refunds must
// go through Refund so they stay tied to a payment.
func (c *folioCommandsImpl) PostItem(ctx context.Context, folioID uuid.UUID, in PostItemInput) (uuid.UUID, error) {
	kind := folio.ItemKind(in.Kind)
	if !kind.IsValid() || kind == folio.KindRefund {
		return uuid.Nil, errs.Mark(errs.New("invalid folio item kind"), errs.ErrValidation)
	}
	if in.AmountCents == 0 {
		return uuid.Nil, errs.Mark(errs.New("amount must be non-zero"), errs.ErrValidation)
	}
	if kind != folio.KindAdjustment && in.AmountCents < 0 {
		return uuid.Nil, errs.Mark(errs.New("amount must be positive"), errs.ErrValidation)
	}

	var itemID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := c.clock.Now()
		f, err := tx.Reads().FolioByID(ctx, folioID)
		if err != nil {
			return mapWriteErr(err, errs.ErrFolioNotFound)
		}
		if f.Status() != folio.StatusOpen {
			return errs.Mark(errs.New("folio is closed"), errs.ErrInvalidStateTransition)
		}

		cents := in.AmountCents
		if kind.IsCredit() {
			cents = -cents
		}
		item := folio.NewItem(kind, in.Description, stay.NewMoney(cents, f.Currency()), now)
		if err := f.Post(item); err != nil {
			return errs.Mark(err, errs.ErrCurrencyMismatch)
		}
		if err := tx.Folios().PostItem(ctx, f.ID(), item); err != nil {
			return mapWriteErr(err, errs.ErrFolioNotFound)
		}
		itemID = item.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return itemID, nil
}

// VoidItem tombstones an item; the posting stays in the history but leaves
// the balance.
func (c *folioCommandsImpl) VoidItem(ctx context.Context, itemID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := c.clock.Now()
		f, err := tx.Reads().FolioOwningItem(ctx, itemID)
		if err != nil {
			return mapWriteErr(err, errs.ErrFolioItemNotFound)
		}
		if f.Status() != folio.StatusOpen {
			return errs.Mark(errs.New("folio is closed"), errs.ErrInvalidStateTransition)
		}
		if err := f.Void(itemID, now); err != nil {
			switch {
			case errors.Is(err, folio.ErrItemNotFound):
				return errs.Mark(err, errs.ErrFolioItemNotFound)
			case errors.Is(err, folio.ErrItemVoided):
				return errs.Mark(err, errs.ErrValidation)
			default:
				return err
			}
		}
		return mapWriteErr(tx.Folios().VoidItem(ctx, itemID, now), errs.ErrFolioItemNotFound)
	})
}

// Refund posts a refund against a payment item, bounded by the payment's
// remaining refundable amount across all prior refunds.
func (c *folioCommandsImpl) Refund(ctx context.Context, paymentItemID uuid.UUID, amountCents int64, description string) (uuid.UUID, error) {
	if amountCents <= 0 {
		return uuid.Nil, errs.Mark(errs.New("refund amount must be positive"), errs.ErrValidation)
	}
	if description == "" {
		description = "refund"
	}

	var refundID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := c.clock.Now()
		f, err := tx.Reads().FolioOwningItem(ctx, paymentItemID)
		if err != nil {
			return mapWriteErr(err, errs.ErrFolioItemNotFound)
		}
		if f.Status() != folio.StatusOpen {
			return errs.Mark(errs.New("folio is closed"), errs.ErrInvalidStateTransition)
		}

		item, err := f.Refund(paymentItemID, amountCents, description, now)
		if err != nil {
			switch {
			case errors.Is(err, folio.ErrRefundExceedsPayment):
				return errs.Mark(err, errs.ErrRefundExceedsPayment)
			case errors.Is(err, folio.ErrItemNotFound):
				return errs.Mark(err, errs.ErrFolioItemNotFound)
			case errors.Is(err, folio.ErrNotAPayment), errors.Is(err, folio.ErrItemVoided):
				return errs.Mark(err, errs.ErrValidation)
			default:
				return err
			}
		}
		if err := tx.Folios().PostItem(ctx, f.ID(), *item); err != nil {
			return mapWriteErr(err, errs.ErrFolioNotFound)
		}
		if err := tx.Folios().CreateRefund(ctx, paymentItemID, item.ID(), amountCents, now); err != nil {
			return mapWriteErr(err, errs.ErrFolioNotFound)
		}
		refundID = item.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return refundID, nil
}
