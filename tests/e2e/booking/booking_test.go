//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"hotelier/internal/domain/stay"
	reqdto "hotelier/internal/handler/dto/request"
	resdto "hotelier/internal/handler/dto/response"
	"hotelier/internal/handler/middleware"
	"hotelier/internal/pkg/jwt"
	"hotelier/tests/common/dbtest"
	"hotelier/tests/common/httptest"
	"hotelier/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"

	roomChargeCents = dbtest.DeluxeBaseCents + dbtest.DeluxeOverrideCents
	taxCents        = roomChargeCents * dbtest.OccupancyTaxPercent / 100
	totalCents      = roomChargeCents + taxCents + dbtest.ResortFeeCents
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

type itemSummary struct {
	Kind        string
	AmountCents int64
}

func summarize(items []resdto.FolioItemResponse) []itemSummary {
	out := make([]itemSummary, 0, len(items))
	for _, it := range items {
		if it.VoidedAt != nil {
			continue
		}
		out = append(out, itemSummary{Kind: it.Kind, AmountCents: it.AmountCents})
	}
	return out
}

var sortItems = cmpopts.SortSlices(func(a, b itemSummary) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.AmountCents < b.AmountCents
})

func (s *BookingSuite) token(role string) string {
	tok, err := jwt.Sign(s.Config.JWT.Secret, uuid.New(), role, time.Hour)
	require.NoError(s.T(), err)
	return tok
}

// A two-night deluxe stay covering the seeded override night.
func holdRequest() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		PropertyID: dbtest.PropertyID,
		GuestID:    uuid.New(),
		CheckIn:    dbtest.OverrideNight.AddDate(0, 0, -1),
		CheckOut:   dbtest.OverrideNight.AddDate(0, 0, 1),
		Lines: []reqdto.RoomLineRequest{
			{RoomTypeID: dbtest.RoomTypeDeluxeID, RatePlanID: dbtest.RatePlanFlexID, Adults: 2},
		},
	}
}

func (s *BookingSuite) createHold(token string, req reqdto.CreateReservationRequest) uuid.UUID {
	t := s.T()
	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, req, token,
		map[string]string{"Idempotency-Key": uuid.NewString()})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp resdto.CreateReservationResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
	return resp.ReservationID
}

func (s *BookingSuite) transition(token string, id uuid.UUID, target string, settle bool) *resdto.ReservationResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost,
		reservationsURL+"/"+id.String()+"/transition",
		reqdto.TransitionRequest{Target: target, SettleBalance: settle}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp resdto.ReservationResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
	return &resp
}

func (s *BookingSuite) getFolio(token string, reservationID uuid.UUID) *resdto.FolioResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet,
		reservationsURL+"/"+reservationID.String()+"/folio", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp resdto.FolioResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
	return &resp
}

func (s *BookingSuite) postPayment(token string, folioID uuid.UUID, cents int64) uuid.UUID {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost,
		"/api/folios/"+folioID.String()+"/items",
		reqdto.PostFolioItemRequest{Kind: "payment", Description: "card payment", AmountCents: cents}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp resdto.PostFolioItemResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
	return resp.ItemID
}

func (s *BookingSuite) availability(token string, req reqdto.CreateReservationRequest) *resdto.AvailabilityResponse {
	t := s.T()
	url := fmt.Sprintf("/api/properties/%s/availability?room_type_id=%s&from=%s&to=%s",
		dbtest.PropertyID, dbtest.RoomTypeDeluxeID,
		req.CheckIn.Format(stay.DateLayout), req.CheckOut.Format(stay.DateLayout))
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp resdto.AvailabilityResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
	return &resp
}

func (s *BookingSuite) minAvailable(token string, req reqdto.CreateReservationRequest) int {
	days := s.availability(token, req).Days
	require.NotEmpty(s.T(), days)
	min := days[0].Available
	for _, d := range days {
		if d.Available < min {
			min = d.Available
		}
	}
	return min
}

// =============================================================================
// TestBookingLifecycle - hold through check-out
// =============================================================================

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("Normal case: full stay from hold to check-out", func() {
		t := s.T()
		token := s.token(middleware.RoleFrontDesk)
		req := holdRequest()

		id := s.createHold(token, req)

		// Holds do not consume inventory
		require.Equal(t, 2, s.minAvailable(token, req))

		confirmed := s.transition(token, id, "confirmed", false)
		require.Equal(t, "confirmed", confirmed.Status)
		require.Len(t, confirmed.Lines, 1)
		require.NotNil(t, confirmed.Lines[0].AssignedRoomID)
		require.Len(t, confirmed.Lines[0].NightlyRates, 2)
		require.Equal(t, int64(dbtest.DeluxeBaseCents), confirmed.Lines[0].NightlyRates[0].PriceCents)
		require.Equal(t, int64(dbtest.DeluxeOverrideCents), confirmed.Lines[0].NightlyRates[1].PriceCents)

		require.Equal(t, 1, s.minAvailable(token, req))

		folio := s.getFolio(token, id)
		require.Equal(t, "open", folio.Status)
		require.Equal(t, int64(totalCents), folio.BalanceCents)
		expected := []itemSummary{
			{Kind: "room_charge", AmountCents: roomChargeCents},
			{Kind: "tax", AmountCents: taxCents},
			{Kind: "fee", AmountCents: dbtest.ResortFeeCents},
		}
		require.Empty(t, cmp.Diff(expected, summarize(folio.Items), sortItems))

		s.postPayment(token, folio.ID, totalCents)
		require.Equal(t, int64(0), s.getFolio(token, id).BalanceCents)

		checkedIn := s.transition(token, id, "checked_in", false)
		require.Equal(t, "checked_in", checkedIn.Status)

		checkedOut := s.transition(token, id, "checked_out", false)
		require.Equal(t, "checked_out", checkedOut.Status)

		folio = s.getFolio(token, id)
		require.Equal(t, "closed", folio.Status)
		require.Equal(t, int64(0), folio.BalanceCents)
	})

	s.Run("Normal case: requested room is honored at confirmation", func() {
		t := s.T()
		token := s.token(middleware.RoleFrontDesk)
		req := holdRequest()
		roomID := dbtest.RoomDeluxe102ID
		req.Lines[0].RequestedRoomID = &roomID

		id := s.createHold(token, req)
		confirmed := s.transition(token, id, "confirmed", false)
		require.NotNil(t, confirmed.Lines[0].AssignedRoomID)
		require.Equal(t, roomID, *confirmed.Lines[0].AssignedRoomID)
	})

	s.Run("Error case: check-out with outstanding balance is rejected unless settled", func() {
		t := s.T()
		token := s.token(middleware.RoleFrontDesk)
		id := s.createHold(token, holdRequest())
		s.transition(token, id, "confirmed", false)
		s.transition(token, id, "checked_in", false)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+id.String()+"/transition",
			reqdto.TransitionRequest{Target: "checked_out"}, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "BALANCE_NOT_SETTLED")

		checkedOut := s.transition(token, id, "checked_out", true)
		require.Equal(t, "checked_out", checkedOut.Status)

		folio := s.getFolio(token, id)
		require.Equal(t, int64(0), folio.BalanceCents)
		require.Contains(t, summarize(folio.Items), itemSummary{Kind: "payment", AmountCents: -totalCents})
	})
}

// =============================================================================
// TestIdempotentCreate - Idempotency-Key semantics
// =============================================================================

func (s *BookingSuite) TestIdempotentCreate() {
	s.Run("Normal case: replaying the same key returns the original reservation", func() {
		t := s.T()
		token := s.token(middleware.RoleFrontDesk)
		req := holdRequest()
		headers := map[string]string{"Idempotency-Key": uuid.NewString()}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, req, token, headers)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var first resdto.CreateReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &first))

		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, req, token, headers)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var second resdto.CreateReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &second))
		require.Equal(t, first.ReservationID, second.ReservationID)
	})

	s.Run("Error case: reusing a key with a different payload conflicts", func() {
		t := s.T()
		token := s.token(middleware.RoleFrontDesk)
		headers := map[string]string{"Idempotency-Key": uuid.NewString()}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, holdRequest(), token, headers)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		other := holdRequest()
		other.Lines[0].Adults = 1
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, other, token, headers)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "DUPLICATE_REQUEST")
	})

	s.Run("Error case: missing Idempotency-Key header", func() {
		t := s.T()
		token := s.token(middleware.RoleFrontDesk)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, holdRequest(), token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "IDEMPOTENCY_KEY_REQUIRED")
	})
}

// =============================================================================
// TestInventoryProtection - overbooking and release
// =============================================================================

func (s *BookingSuite) TestInventoryProtection() {
	s.Run("Error case: confirming beyond the room count is rejected", func() {
		t := s.T()
		token := s.token(middleware.RoleFrontDesk)

		first := s.createHold(token, holdRequest())
		second := s.createHold(token, holdRequest())
		third := s.createHold(token, holdRequest())

		s.transition(token, first, "confirmed", false)
		s.transition(token, second, "confirmed", false)
		require.Equal(t, 0, s.minAvailable(token, holdRequest()))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+third.String()+"/transition",
			reqdto.TransitionRequest{Target: "confirmed"}, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "INSUFFICIENT_AVAILABILITY")

		// The loser stays a hold and can confirm once a room frees up
		cancelled := s.transition(token, first, "cancelled", false)
		require.Equal(t, "cancelled", cancelled.Status)
		require.Equal(t, 1, s.minAvailable(token, holdRequest()))

		confirmed := s.transition(token, third, "confirmed", false)
		require.Equal(t, "confirmed", confirmed.Status)
	})

	s.Run("Normal case: concurrent confirms win exactly as many rooms as exist", func() {
		t := s.T()
		token := s.token(middleware.RoleFrontDesk)

		const attempts = 3 // against 2 deluxe rooms
		ids := make([]uuid.UUID, attempts)
		for i := range ids {
			ids[i] = s.createHold(token, holdRequest())
		}

		codes := make([]int, attempts)
		var wg sync.WaitGroup
		for i, id := range ids {
			wg.Add(1)
			go func(i int, id uuid.UUID) {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost,
					reservationsURL+"/"+id.String()+"/transition",
					reqdto.TransitionRequest{Target: "confirmed"}, token)
				codes[i] = w.Code
			}(i, id)
		}
		wg.Wait()

		confirmed, rejected := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusOK:
				confirmed++
			case http.StatusConflict:
				rejected++
			}
		}
		require.Equal(t, 2, confirmed, "codes: %v", codes)
		require.Equal(t, 1, rejected, "codes: %v", codes)
		require.Equal(t, 0, s.minAvailable(token, holdRequest()))
	})
}

// =============================================================================
// TestCancellation - refunds by policy
// =============================================================================

func (s *BookingSuite) TestCancellation() {
	s.Run("Normal case: flexible plan refunds the full payment with enough notice", func() {
		t := s.T()
		token := s.token(middleware.RoleFrontDesk)

		id := s.createHold(token, holdRequest())
		s.transition(token, id, "confirmed", false)
		folio := s.getFolio(token, id)
		s.postPayment(token, folio.ID, totalCents)

		cancelled := s.transition(token, id, "cancelled", false)
		require.Equal(t, "cancelled", cancelled.Status)

		folio = s.getFolio(token, id)
		require.Contains(t, summarize(folio.Items), itemSummary{Kind: "refund", AmountCents: -totalCents})

		// Inventory is back for the whole stay
		require.Equal(t, 2, s.minAvailable(token, holdRequest()))
	})

	s.Run("Normal case: non-refundable plan keeps the payment", func() {
		t := s.T()
		token := s.token(middleware.RoleFrontDesk)
		req := holdRequest()
		req.Lines[0].RatePlanID = dbtest.RatePlanNonRefundableID

		id := s.createHold(token, req)
		s.transition(token, id, "confirmed", false)
		folio := s.getFolio(token, id)
		s.postPayment(token, folio.ID, 1000)

		s.transition(token, id, "cancelled", false)

		folio = s.getFolio(token, id)
		for _, it := range folio.Items {
			require.NotEqual(t, "refund", it.Kind)
		}
	})

	s.Run("Normal case: cancelling a bare hold needs no folio", func() {
		t := s.T()
		token := s.token(middleware.RoleFrontDesk)
		id := s.createHold(token, holdRequest())

		cancelled := s.transition(token, id, "cancelled", false)
		require.Equal(t, "cancelled", cancelled.Status)
	})

	s.Run("Error case: cancelling after check-in is rejected", func() {
		t := s.T()
		token := s.token(middleware.RoleFrontDesk)
		id := s.createHold(token, holdRequest())
		s.transition(token, id, "confirmed", false)
		folio := s.getFolio(token, id)
		s.postPayment(token, folio.ID, totalCents)
		s.transition(token, id, "checked_in", false)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+id.String()+"/transition",
			reqdto.TransitionRequest{Target: "cancelled"}, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "INVALID_STATE_TRANSITION")
	})
}

// =============================================================================
// TestFolioOperations - manager-only voids and refunds
// =============================================================================

func (s *BookingSuite) TestFolioOperations() {
	s.Run("Normal case: manager voids an item and refunds a payment", func() {
		t := s.T()
		frontDesk := s.token(middleware.RoleFrontDesk)
		manager := s.token(middleware.RoleManager)

		id := s.createHold(frontDesk, holdRequest())
		s.transition(frontDesk, id, "confirmed", false)
		folio := s.getFolio(frontDesk, id)
		paymentID := s.postPayment(frontDesk, folio.ID, totalCents)

		// Partial refund by the manager
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			"/api/folio-items/"+paymentID.String()+"/refund",
			reqdto.RefundRequest{AmountCents: 5000, Description: "goodwill refund"}, manager)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		folio = s.getFolio(frontDesk, id)
		require.Contains(t, summarize(folio.Items), itemSummary{Kind: "refund", AmountCents: -5000})

		// Refunding more than remains on the payment fails
		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			"/api/folio-items/"+paymentID.String()+"/refund",
			reqdto.RefundRequest{AmountCents: totalCents, Description: "too much"}, manager)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "REFUND_EXCEEDS_PAYMENT")
	})

	s.Run("Error case: front desk cannot void or refund", func() {
		t := s.T()
		frontDesk := s.token(middleware.RoleFrontDesk)

		id := s.createHold(frontDesk, holdRequest())
		s.transition(frontDesk, id, "confirmed", false)
		folio := s.getFolio(frontDesk, id)
		paymentID := s.postPayment(frontDesk, folio.ID, 1000)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			"/api/folio-items/"+paymentID.String()+"/void", nil, frontDesk)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Normal case: voided charge drops out of the balance", func() {
		t := s.T()
		frontDesk := s.token(middleware.RoleFrontDesk)
		manager := s.token(middleware.RoleManager)

		id := s.createHold(frontDesk, holdRequest())
		s.transition(frontDesk, id, "confirmed", false)
		folio := s.getFolio(frontDesk, id)

		var feeItemID uuid.UUID
		for _, it := range folio.Items {
			if it.Kind == "fee" {
				feeItemID = it.ID
			}
		}
		require.NotEqual(t, uuid.Nil, feeItemID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			"/api/folio-items/"+feeItemID.String()+"/void", nil, manager)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		folio = s.getFolio(frontDesk, id)
		require.Equal(t, int64(totalCents-dbtest.ResortFeeCents), folio.BalanceCents)
	})
}
