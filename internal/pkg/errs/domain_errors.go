package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Reference data errors
	ErrPropertyNotFound    = errors.New("property not found")
	ErrRoomTypeNotFound    = errors.New("room type not found")
	ErrRoomNotFound        = errors.New("room not found")
	ErrRatePlanNotFound    = errors.New("rate plan not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrFolioNotFound       = errors.New("folio not found")
	ErrFolioItemNotFound   = errors.New("folio item not found")

	// Booking errors
	ErrValidation               = errors.New("validation error")
	ErrCapacityExceeded         = errors.New("capacity exceeded")
	ErrInsufficientAvailability = errors.New("insufficient availability")
	ErrCurrencyMismatch         = errors.New("currency mismatch")
	ErrPricingUnavailable       = errors.New("pricing unavailable")
	ErrInvalidStateTransition   = errors.New("invalid state transition")

	// Ledger errors
	ErrRefundExceedsPayment = errors.New("refund exceeds payment")
	ErrBalanceNotSettled    = errors.New("folio balance not settled")

	// Consistency / storage errors
	ErrInventoryInvariantViolation = errors.New("inventory invariant violation")
	ErrStorageUnavailable          = errors.New("storage unavailable")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrDuplicateReservation   = errors.New("duplicate reservation request")
)
