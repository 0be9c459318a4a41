package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelier/internal/handler/httperr"
	"hotelier/internal/pkg/errs"
)

type errMapping struct {
	sentinel error
	status   int
	code     string
	message  string
}

// One mapping table for every handler so the same sentinel always produces
// the same status and code.
var errMappings = []errMapping{
	{errs.ErrValidation, http.StatusBadRequest, "VALIDATION", "Invalid request"},
	{errs.ErrIdempotencyKeyRequired, http.StatusBadRequest, "IDEMPOTENCY_KEY_REQUIRED", "Idempotency-Key header is required"},

	{errs.ErrPropertyNotFound, http.StatusNotFound, "PROPERTY_NOT_FOUND", "Property not found"},
	{errs.ErrRoomTypeNotFound, http.StatusNotFound, "ROOM_TYPE_NOT_FOUND", "Room type not found"},
	{errs.ErrRoomNotFound, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found"},
	{errs.ErrRatePlanNotFound, http.StatusNotFound, "RATE_PLAN_NOT_FOUND", "Rate plan not found"},
	{errs.ErrReservationNotFound, http.StatusNotFound, "RESERVATION_NOT_FOUND", "Reservation not found"},
	{errs.ErrFolioNotFound, http.StatusNotFound, "FOLIO_NOT_FOUND", "Folio not found"},
	{errs.ErrFolioItemNotFound, http.StatusNotFound, "FOLIO_ITEM_NOT_FOUND", "Folio item not found"},

	{errs.ErrInvalidStateTransition, http.StatusConflict, "INVALID_STATE_TRANSITION", "Transition not allowed from the current status"},
	{errs.ErrInsufficientAvailability, http.StatusConflict, "INSUFFICIENT_AVAILABILITY", "Not enough rooms available for the stay"},
	{errs.ErrDuplicateReservation, http.StatusConflict, "DUPLICATE_REQUEST", "Idempotency key was already used with a different payload"},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, "REQUEST_IN_PROGRESS", "A request with this idempotency key is still being processed"},

	{errs.ErrCapacityExceeded, http.StatusUnprocessableEntity, "CAPACITY_EXCEEDED", "Guest count exceeds room type capacity"},
	{errs.ErrCurrencyMismatch, http.StatusUnprocessableEntity, "CURRENCY_MISMATCH", "Amounts must be in the property currency"},
	{errs.ErrPricingUnavailable, http.StatusUnprocessableEntity, "PRICING_UNAVAILABLE", "No price is configured for part of the stay"},
	{errs.ErrRefundExceedsPayment, http.StatusUnprocessableEntity, "REFUND_EXCEEDS_PAYMENT", "Refund exceeds the payment's remaining amount"},
	{errs.ErrBalanceNotSettled, http.StatusUnprocessableEntity, "BALANCE_NOT_SETTLED", "Folio balance must be settled first"},

	{errs.ErrInventoryInvariantViolation, http.StatusInternalServerError, "INVENTORY_INVARIANT_VIOLATION", "Inventory state is inconsistent"},
	{errs.ErrStorageUnavailable, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Storage is temporarily unavailable"},
}

func respondError(c *gin.Context, err error) {
	for _, m := range errMappings {
		if errors.Is(err, m.sentinel) {
			httperr.AbortWithError(c, m.status, err, m.code, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL", "Internal server error", nil)
}
