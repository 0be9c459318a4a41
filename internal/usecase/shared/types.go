package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots of reference data owned by the surrounding CRUD
// components. The core only reads these.
type PropertySnapshot struct {
	ID       uuid.UUID
	Name     string
	Timezone string
	Currency string
}

type RoomSnapshot struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	RoomTypeID uuid.UUID
	RoomNumber string
	IsActive   bool
}

type RatePlanSnapshot struct {
	ID                   uuid.UUID
	PropertyID           uuid.UUID
	Code                 string
	Refundable           bool
	IncludesBreakfast    bool
	CancellationPolicyID *uuid.UUID
}

type CancellationPolicySnapshot struct {
	ID    uuid.UUID
	Name  string
	Rules []byte
}

type IdempotencyRecord struct {
	Key                 uuid.UUID
	ActorID             uuid.UUID
	Status              string
	RequestHash         string
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}
