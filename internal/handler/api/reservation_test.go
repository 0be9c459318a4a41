//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"hotelier/internal/handler/api"
	resdto "hotelier/internal/handler/dto/response"
	"hotelier/internal/handler/middleware"
	"hotelier/internal/pkg/errs"
	"hotelier/internal/usecase/commands"
	"hotelier/tests/common/builder"
	"hotelier/tests/common/httptest"
	"hotelier/tests/common/testutil"
	commandsmock "hotelier/tests/mock/commands"
	queriesmock "hotelier/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("actor_id", uuid.New())
		c.Set("actor_role", middleware.RoleFrontDesk)
		c.Next()
	}

	s.router.POST("/reservations", authMiddleware, s.handler.CreateReservation)
	s.router.GET("/reservations/:id", authMiddleware, s.handler.GetReservation)
	s.router.POST("/reservations/:id/transition", authMiddleware, s.handler.Transition)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func idemHeader() map[string]string {
	return map[string]string{"Idempotency-Key": uuid.NewString()}
}

type testCaseReservation struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreateReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"

	reqBody := builder.NewReservationBuilder().BuildCreateRequestDTO()
	returnView := builder.NewReservationBuilder().BuildView()
	expectedResult := &commands.CreateReservationResult{ReservationID: returnView.ID}

	validationCases := []testCaseReservation{
		{name: "missing field: property_id (required)", mutate: testutil.Field("property_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: guest_id (required)", mutate: testutil.Field("guest_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: check_in (required)", mutate: testutil.Field("check_in", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: check_out (required)", mutate: testutil.Field("check_out", nil), expectCode: http.StatusBadRequest},
		{name: "empty lines", mutate: testutil.Field("lines", []any{}), expectCode: http.StatusBadRequest},
		{name: "line with zero adults", mutate: func(m map[string]any) {
			line := m["lines"].([]any)[0].(map[string]any)
			line["adults"] = 0
		}, expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 201 Created for a new hold", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(expectedResult, nil).Times(1)
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", idemHeader())

		var resp resdto.CreateReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(expectedResult.ReservationID, resp.ReservationID)
	})

	s.Run("success: replayed key returns 200 with the original result", func() {
		replayed := &commands.CreateReservationResult{ReservationID: expectedResult.ReservationID, Replayed: true}
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(replayed, nil).Times(1)
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", idemHeader())

		var resp resdto.CreateReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(expectedResult.ReservationID, resp.ReservationID)
	})

	s.Run("error: missing Idempotency-Key header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "IDEMPOTENCY_KEY_REQUIRED")
	})

	s.Run("error: malformed Idempotency-Key header", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token",
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION")
	})

	s.Run("error: unauthenticated request", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "", idemHeader())
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("validation", func() {
		for _, tc := range validationCases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, "bearer-token", idemHeader())
				s.Equal(tc.expectCode, rec.Code, "body: %s", rec.Body.String())
			})
		}
	})

	s.Run("error mapping from the booking command", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
			errorCode  string
		}{
			{"unknown property", errs.ErrPropertyNotFound, http.StatusNotFound, "PROPERTY_NOT_FOUND"},
			{"unknown rate plan", errs.ErrRatePlanNotFound, http.StatusNotFound, "RATE_PLAN_NOT_FOUND"},
			{"capacity exceeded", errs.ErrCapacityExceeded, http.StatusUnprocessableEntity, "CAPACITY_EXCEEDED"},
			{"key reused with different payload", errs.ErrDuplicateReservation, http.StatusConflict, "DUPLICATE_REQUEST"},
			{"key still in flight", errs.ErrIdempotencyInProgress, http.StatusConflict, "REQUEST_IN_PROGRESS"},
			{"storage down", errs.ErrStorageUnavailable, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", idemHeader())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.errorCode)
			})
		}
	})
}

// ================================================================================
// TestGetReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	returnView := builder.NewReservationBuilder().BuildView()
	url := "/reservations/" + returnView.ID.String()

	s.Run("success: returns 200 with room lines", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var resp resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(returnView.ID, resp.ID)
		s.Equal("hold", resp.Status)
		s.Len(resp.Lines, 1)
	})

	s.Run("error: malformed reservation ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION")
	})

	s.Run("error: unknown reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(nil, errs.ErrReservationNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "RESERVATION_NOT_FOUND")
	})
}

// ================================================================================
// TestTransition
// ================================================================================

func (s *ReservationHandlerTestSuite) TestTransition() {
	returnView := builder.NewReservationBuilder().BuildView()
	url := "/reservations/" + returnView.ID.String() + "/transition"
	confirmBody := map[string]any{"target": "confirmed"}

	s.Run("success: returns 200 with the updated reservation", func() {
		s.mockCommands.EXPECT().Transition(gomock.Any(), returnView.ID, commands.TransitionInput{Target: "confirmed"}).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, confirmBody, "bearer-token")

		var resp resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(returnView.ID, resp.ID)
	})

	s.Run("success: check-out passes the settle flag through", func() {
		s.mockCommands.EXPECT().Transition(gomock.Any(), returnView.ID, commands.TransitionInput{Target: "checked_out", SettleBalance: true}).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"target": "checked_out", "settle_balance": true}, "bearer-token")
		s.Equal(http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	})

	s.Run("error: missing target", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION")
	})

	s.Run("error mapping from the transition command", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
			errorCode  string
		}{
			{"transition not allowed", errs.ErrInvalidStateTransition, http.StatusConflict, "INVALID_STATE_TRANSITION"},
			{"lost the allocation race", errs.ErrInsufficientAvailability, http.StatusConflict, "INSUFFICIENT_AVAILABILITY"},
			{"no price configured", errs.ErrPricingUnavailable, http.StatusUnprocessableEntity, "PRICING_UNAVAILABLE"},
			{"balance outstanding at check-out", errs.ErrBalanceNotSettled, http.StatusUnprocessableEntity, "BALANCE_NOT_SETTLED"},
			{"unknown reservation", errs.ErrReservationNotFound, http.StatusNotFound, "RESERVATION_NOT_FOUND"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Transition(gomock.Any(), returnView.ID, gomock.Any()).
					Return(tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, confirmBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.errorCode)
			})
		}
	})
}
