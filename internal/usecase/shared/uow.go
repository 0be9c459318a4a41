package shared

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hotelier/internal/domain/folio"
	"hotelier/internal/domain/pricing"
	"hotelier/internal/domain/stay"
	"hotelier/internal/domain/tax"
	"hotelier/internal/infra/db"
)

type UnitOfWork interface {
	// Within: read-committed transaction for ordinary writes
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinSerializable: allocation transactions; availability check and
	// room binding must share one isolation boundary
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: consistent multi-table reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads CommandReads) error) error
	// CommandReads: validation reads outside any transaction
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Folios() FolioRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads returns fully-materialized aggregates and snapshots; no lazy
// fetches hide behind the domain objects.
type CommandReads interface {
	PropertyByID(ctx context.Context, id uuid.UUID) (*PropertySnapshot, error)
	RoomTypeSpecs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]stay.RoomTypeSpec, error)
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	RatePlanByID(ctx context.Context, id uuid.UUID) (*RatePlanSnapshot, error)
	CancellationPolicyByID(ctx context.Context, id uuid.UUID) (*CancellationPolicySnapshot, error)
	ActiveTaxFees(ctx context.Context, propertyID uuid.UUID) ([]tax.Fee, error)
	PriceOverrides(ctx context.Context, ratePlanID, roomTypeID uuid.UUID, r stay.StayRange) ([]pricing.Override, error)
	BasePrice(ctx context.Context, ratePlanID, roomTypeID uuid.UUID) (*pricing.BasePrice, error)

	ReservationByID(ctx context.Context, id uuid.UUID) (*stay.Reservation, error)
	FolioByID(ctx context.Context, id uuid.UUID) (*folio.Folio, error)
	FolioByReservationID(ctx context.Context, reservationID uuid.UUID) (*folio.Folio, error)
	FolioOwningItem(ctx context.Context, itemID uuid.UUID) (*folio.Folio, error)

	TotalActiveRooms(ctx context.Context, propertyID, roomTypeID uuid.UUID) (int, error)
	OccupiedIntervals(ctx context.Context, propertyID, roomTypeID uuid.UUID, r stay.StayRange) ([]stay.StayRange, error)
	FreeRooms(ctx context.Context, propertyID, roomTypeID uuid.UUID, r stay.StayRange) ([]RoomSnapshot, error)

	IdempotencyByKey(ctx context.Context, key, actorID uuid.UUID) (*IdempotencyRecord, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *stay.Reservation) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status stay.Status, now time.Time) error
	// AssignRoom binds a room to a line; the exclusion constraint on
	// (room_id, stay) rejects double-bookings at commit
	AssignRoom(ctx context.Context, lineID, roomID uuid.UUID) error
	StoreNightlyRates(ctx context.Context, lineID uuid.UUID, rates []stay.NightlyRate) error
	// ReleaseRooms frees the reservation's nights back to inventory
	ReleaseRooms(ctx context.Context, reservationID uuid.UUID, now time.Time) error
}

type FolioRepository interface {
	Create(ctx context.Context, f *folio.Folio) error
	PostItem(ctx context.Context, folioID uuid.UUID, item folio.Item) error
	VoidItem(ctx context.Context, itemID uuid.UUID, now time.Time) error
	CreateRefund(ctx context.Context, paymentItemID, refundItemID uuid.UUID, amountCents int64, now time.Time) error
	UpdateStatus(ctx context.Context, folioID uuid.UUID, status folio.Status, now time.Time) error
}

type IdempotencyRepository interface {
	// TryInsert claims the key, returning the number of rows inserted: 1 when
	// this request now owns the key, 0 when a prior request holds it
	TryInsert(ctx context.Context, key, actorID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (int64, error)
	UpdateStatusCompleted(ctx context.Context, key, actorID uuid.UUID, resultReservationID uuid.UUID) error
	ClaimExpiredKey(ctx context.Context, key, actorID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
