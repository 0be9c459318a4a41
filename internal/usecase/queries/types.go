package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read-side views, decoupled from the write-side domain types.

type DayAvailabilityView struct {
	Night      time.Time
	TotalRooms int
	Reserved   int
	Available  int
}

type NightlyRateView struct {
	Night      time.Time
	PriceCents int64
	Currency   string
}

type RoomLineView struct {
	ID             uuid.UUID
	RoomTypeID     uuid.UUID
	RatePlanID     uuid.UUID
	AssignedRoomID *uuid.UUID
	Adults         int
	Children       int
	NightlyRates   []NightlyRateView
}

type ReservationView struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	GuestID    uuid.UUID
	Status     string
	CheckIn    time.Time
	CheckOut   time.Time
	Lines      []RoomLineView
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type FolioItemView struct {
	ID            uuid.UUID
	Kind          string
	Description   string
	AmountCents   int64
	Currency      string
	PaymentItemID *uuid.UUID
	PostedAt      time.Time
	VoidedAt      *time.Time
}

type FolioView struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Status        string
	Currency      string
	BalanceCents  int64
	Items         []FolioItemView
}
