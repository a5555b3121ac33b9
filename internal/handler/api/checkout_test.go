//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"routine-checkout/internal/handler/api"
	resdto "routine-checkout/internal/handler/dto/response"
	"routine-checkout/internal/infra"
	"routine-checkout/internal/pkg/errs"
	"routine-checkout/internal/usecase/commands"
	"routine-checkout/internal/usecase/queries"
	"routine-checkout/tests/common/httptest"
	"routine-checkout/tests/common/testutil"
	commandsmock "routine-checkout/tests/mock/commands"
	queriesmock "routine-checkout/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	mockQueries  *queriesmock.MockCheckoutQueries
	handler      *api.CheckoutHandler
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCheckoutQueries(s.mockCtrl)
	s.handler = api.NewCheckoutHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/api/checkout", s.handler.CreateCheckout)
	s.router.GET("/api/checkout/reservations/:key", s.handler.GetReservation)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func validBody() map[string]any {
	return map[string]any{
		"creator_code": "glow-creator",
		"tier":         "base",
	}
}

// ================================================================================
// TestCreateCheckout
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestCreateCheckout() {
	url := "/api/checkout"

	s.Run("success: returns 201 Created for a fresh cart", func() {
		s.mockCommands.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CheckoutInput) (*commands.CheckoutResult, error) {
				s.Require().NotNil(in.CreatorCode)
				s.Equal("glow-creator", *in.CreatorCode)
				s.Equal("base", in.Tier)
				s.Nil(in.IdempotencyKey)
				return &commands.CheckoutResult{
					CheckoutURL:    "https://shop.example/checkout/abc",
					IdempotencyKey: "derived-key",
					Cached:         false,
				}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validBody(), "")

		var body resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("https://shop.example/checkout/abc", body.CheckoutURL)
		s.Equal("derived-key", body.IdempotencyKey)
		s.False(body.Cached)
	})

	s.Run("success: replay returns 200 OK with cached flag", func() {
		s.mockCommands.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).
			Return(&commands.CheckoutResult{
				CheckoutURL:    "https://shop.example/checkout/abc",
				IdempotencyKey: "client-key",
				Cached:         true,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validBody(), "",
			map[string]string{"Idempotency-Key": "client-key"})

		var body resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Cached)
	})

	s.Run("passes the Idempotency-Key header through", func() {
		s.mockCommands.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CheckoutInput) (*commands.CheckoutResult, error) {
				s.Require().NotNil(in.IdempotencyKey)
				s.Equal("my-key", *in.IdempotencyKey)
				return &commands.CheckoutResult{CheckoutURL: "u", IdempotencyKey: "my-key"}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validBody(), "",
			map[string]string{"Idempotency-Key": "my-key"})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("falls back to the body idempotency key when the header is absent", func() {
		s.mockCommands.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CheckoutInput) (*commands.CheckoutResult, error) {
				s.Require().NotNil(in.IdempotencyKey)
				s.Equal("body-key", *in.IdempotencyKey)
				return &commands.CheckoutResult{CheckoutURL: "u", IdempotencyKey: "body-key"}, nil
			}).Times(1)

		body := testutil.DtoMap(s.T(), validBody(), testutil.Field("idempotency_key", "body-key"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("header idempotency key wins over the body field", func() {
		s.mockCommands.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CheckoutInput) (*commands.CheckoutResult, error) {
				s.Require().NotNil(in.IdempotencyKey)
				s.Equal("header-key", *in.IdempotencyKey)
				return &commands.CheckoutResult{CheckoutURL: "u", IdempotencyKey: "header-key"}, nil
			}).Times(1)

		body := testutil.DtoMap(s.T(), validBody(), testutil.Field("idempotency_key", "body-key"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "",
			map[string]string{"Idempotency-Key": "header-key"})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on malformed body", func() {
		body := testutil.DtoMap(s.T(), validBody(), testutil.Field("tier", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid_request")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{
				name:           "invalid tier",
				commandsError:  errs.Mark(errs.New("unknown tier \"mega\""), commands.ErrInvalidTier),
				expectedStatus: http.StatusBadRequest,
				expectedCode:   "invalid_tier",
			},
			{
				name:           "routine not found",
				commandsError:  commands.ErrRoutineNotFound,
				expectedStatus: http.StatusNotFound,
				expectedCode:   "routine_not_found",
			},
			{
				name:           "invalid routine configuration",
				commandsError:  errs.Mark(errs.New("tier base expects 3 variants"), commands.ErrInvalidRoutineConfig),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedCode:   "invalid_routine_config",
			},
			{
				name:           "checkout in progress",
				commandsError:  commands.ErrCheckoutInProgress,
				expectedStatus: http.StatusConflict,
				expectedCode:   "checkout_in_progress",
			},
			{
				name:           "idempotency key reuse",
				commandsError:  commands.ErrIdempotencyKeyReuse,
				expectedStatus: http.StatusConflict,
				expectedCode:   "idempotency_key_reuse",
			},
			{
				name: "variants rejected carries upstream detail",
				commandsError: errs.Mark(&commands.UpstreamUserError{Errors: []commands.UpstreamFieldError{
					{Field: "lines", Message: "variant 1002 is unavailable"},
				}}, commands.ErrVariantsRejected),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedCode:   "variants_rejected",
			},
			{
				name:           "upstream timeout",
				commandsError:  errs.Mark(commands.ErrGatewayTimeout, commands.ErrUpstreamTimeout),
				expectedStatus: http.StatusGatewayTimeout,
				expectedCode:   "upstream_timeout",
			},
			{
				name:           "upstream failed",
				commandsError:  errs.Mark(&commands.UpstreamUnknownError{Reason: "unexpected status 500"}, commands.ErrUpstreamFailed),
				expectedStatus: http.StatusBadGateway,
				expectedCode:   "upstream_failed",
			},
			{
				name:           "reservation store failure",
				commandsError:  errs.Mark(errs.New("insert failed"), commands.ErrReservationStoreFailed),
				expectedStatus: http.StatusInternalServerError,
				expectedCode:   "internal_error",
			},
			{
				name:           "unclassified error",
				commandsError:  errors.New("boom"),
				expectedStatus: http.StatusInternalServerError,
				expectedCode:   "internal_error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validBody(), "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})

	s.Run("error: circuit open returns 503 with Retry-After", func() {
		cause := errs.Mark(&commands.CircuitOpenError{RetryAfter: 30 * time.Second}, commands.ErrUpstreamUnavailable)
		s.mockCommands.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).
			Return(nil, cause).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "upstream_unavailable")
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Retry-After": "30"})
	})

	s.Run("error: transient conflict carries Retry-After hint", func() {
		s.mockCommands.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrCheckoutInProgress).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "checkout_in_progress")
		s.NotEmpty(rec.Header().Get("Retry-After"))
	})
}

// ================================================================================
// TestGetReservation
// ================================================================================

func (s *CheckoutHandlerTestSuite) TestGetReservation() {
	key := "some-key"
	url := "/api/checkout/reservations/" + key

	s.Run("success: returns 200 OK with reservation view", func() {
		cartID := "cart-123"
		checkoutURL := "https://shop.example/checkout/abc"
		view := &queries.ReservationView{
			ID:             uuid.New(),
			IdempotencyKey: key,
			PayloadHash:    "hash",
			Status:         "completed",
			CartID:         &cartID,
			CheckoutURL:    &checkoutURL,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}
		s.mockQueries.EXPECT().GetReservationByKey(gomock.Any(), key).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(key, response.IdempotencyKey)
		s.Equal("completed", response.Status)
		s.Require().NotNil(response.CheckoutURL)
		s.Equal(checkoutURL, *response.CheckoutURL)
	})

	s.Run("error: 404 when reservation unknown", func() {
		notFound := infra.WrapRepoErr("reservation not found", errors.New("no rows"), infra.KindNotFound)
		s.mockQueries.EXPECT().GetReservationByKey(gomock.Any(), key).Return(nil, notFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "reservation_not_found")
	})

	s.Run("error: 500 on store failure", func() {
		s.mockQueries.EXPECT().GetReservationByKey(gomock.Any(), key).
			Return(nil, errors.New("connection refused")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "internal_error")
	})
}
