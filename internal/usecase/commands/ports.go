// Package commands holds the write-side usecases: booking, lifecycle
// transitions and folio postings. Each command owns its transaction
// boundary through the unit of work.
package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RoomLineInput struct {
	RoomTypeID      uuid.UUID
	RatePlanID      uuid.UUID
	Adults          int
	Children        int
	RequestedRoomID *uuid.UUID
}

type CreateReservationInput struct {
	PropertyID uuid.UUID
	GuestID    uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	Lines      []RoomLineInput
}

type CreateReservationResult struct {
	ReservationID uuid.UUID
	// Replayed reports that the idempotency key matched a completed request
	// and the stored result was returned without creating anything.
	Replayed bool
}

type TransitionInput struct {
	Target string
	// SettleBalance posts a closing payment for the outstanding balance at
	// check-out instead of rejecting it.
	SettleBalance bool
}

type ReservationCommands interface {
	Create(ctx context.Context, actorID, idempotencyKey uuid.UUID, in CreateReservationInput) (*CreateReservationResult, error)
	Transition(ctx context.Context, reservationID uuid.UUID, in TransitionInput) error
}

type PostItemInput struct {
	Kind        string
	Description string
	// AmountCents is positive for charges and payments alike; credit kinds
	// are stored negative by the ledger. Adjustments may carry either sign.
	AmountCents int64
}

type FolioCommands interface {
	PostItem(ctx context.Context, folioID uuid.UUID, in PostItemInput) (uuid.UUID, error)
	VoidItem(ctx context.Context, itemID uuid.UUID) error
	Refund(ctx context.Context, paymentItemID uuid.UUID, amountCents int64, description string) (uuid.UUID, error)
}
