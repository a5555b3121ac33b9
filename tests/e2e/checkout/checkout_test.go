//go:build e2e

package checkout_test

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"routine-checkout/internal/handler/dto/request"
	"routine-checkout/internal/handler/dto/response"
	"routine-checkout/internal/pkg/token"
	"routine-checkout/tests/common/dbtest"
	"routine-checkout/tests/common/httptest"
	"routine-checkout/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	checkoutURL    = "/api/checkout"
	reservationURL = "/api/checkout/reservations/"
)

type CheckoutSuite struct {
	e2e.SharedSuite
}

func (s *CheckoutSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestCheckoutSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CheckoutSuite))
}

func strPtr(s string) *string { return &s }

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

// =============================================================================
// TestCreateCheckout - Checkout creation API tests
// =============================================================================

func (s *CheckoutSuite) TestCreateCheckout() {
	s.Run("Normal case: Attributed checkout creates cart and completes reservation", func() {
		t := s.T()

		affiliateID := dbtest.CreateTestAffiliate(t, s.DB, "glow-creator")
		routineID := dbtest.CreateTestRoutine(t, s.DB, "Morning Glow Routine", 1001)
		dbtest.AssignRoutine(t, s.DB, affiliateID, routineID)

		reqBody := request.CreateCheckoutRequest{
			CreatorCode: strPtr("glow-creator"),
			Tier:        "base",
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL, reqBody, "",
			map[string]string{"Idempotency-Key": "e2e-happy-path"})

		var actual response.CheckoutResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &actual)

		expected := &response.CheckoutResponse{
			IdempotencyKey: "e2e-happy-path",
			Cached:         false,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.CheckoutResponse{}, "CheckoutURL"),
		}
		if diff := cmp.Diff(expected, &actual, opts...); diff != "" {
			t.Errorf("Checkout response mismatch (-want +got):\n%s", diff)
		}
		require.True(t, strings.HasPrefix(actual.CheckoutURL, "https://fake.shop/checkout/"),
			"Checkout URL should come from the storefront, got %s", actual.CheckoutURL)

		require.Equal(t, "completed", dbtest.GetReservationStatus(t, s.DB, "e2e-happy-path"))
		require.Equal(t, 1, s.Storefront.CartRequestCount())

		// 統計カウンタは非同期更新のため少し待つ
		time.Sleep(200 * time.Millisecond)
		var cartsCreated int
		err := s.DB.QueryRow(context.Background(),
			"SELECT carts_created FROM affiliate_stats WHERE affiliate_id = $1", affiliateID).Scan(&cartsCreated)
		require.NoError(t, err)
		require.Equal(t, 1, cartsCreated)
	})

	s.Run("Normal case: Replay with same key returns cached cart without new upstream call", func() {
		t := s.T()

		affiliateID := dbtest.CreateTestAffiliate(t, s.DB, "glow-creator")
		routineID := dbtest.CreateTestRoutine(t, s.DB, "Morning Glow Routine", 1001)
		dbtest.AssignRoutine(t, s.DB, affiliateID, routineID)

		reqBody := request.CreateCheckoutRequest{
			CreatorCode: strPtr("glow-creator"),
			Tier:        "upsell_1",
		}
		headers := map[string]string{"Idempotency-Key": "e2e-replay"}

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL, reqBody, "", headers)
		var first response.CheckoutResponse
		httptest.AssertSuccessResponse(t, w1, http.StatusCreated, &first)
		upstreamCalls := s.Storefront.CartRequestCount()

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL, reqBody, "", headers)
		var second response.CheckoutResponse
		httptest.AssertSuccessResponse(t, w2, http.StatusOK, &second)

		require.True(t, second.Cached, "Replay should be served from the reservation")
		require.Equal(t, first.CheckoutURL, second.CheckoutURL)
		require.Equal(t, upstreamCalls, s.Storefront.CartRequestCount(), "Replay must not hit the storefront again")
	})

	s.Run("Normal case: Concurrent requests with one key share a single cart", func() {
		t := s.T()

		affiliateID := dbtest.CreateTestAffiliate(t, s.DB, "glow-creator")
		routineID := dbtest.CreateTestRoutine(t, s.DB, "Morning Glow Routine", 1001)
		dbtest.AssignRoutine(t, s.DB, affiliateID, routineID)

		reqBody := request.CreateCheckoutRequest{
			CreatorCode: strPtr("glow-creator"),
			Tier:        "base",
		}
		headers := map[string]string{"Idempotency-Key": "e2e-concurrent"}

		// 同一キーで同時に叩き、unique制約による勝者決定を実DBで検証する
		const clients = 8
		codes := make([]int, clients)
		var wg sync.WaitGroup
		for i := 0; i < clients; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL, reqBody, "", headers)
				codes[i] = w.Code
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated, http.StatusOK:
				succeeded++
			case http.StatusConflict:
			default:
				t.Errorf("unexpected status %d under contention", code)
			}
		}
		require.GreaterOrEqual(t, succeeded, 1, "at least one request must win the reservation")
		require.Equal(t, 1, s.Storefront.CartRequestCount(), "contending requests must share one upstream cart")
		require.Equal(t, "completed", dbtest.GetReservationStatus(t, s.DB, "e2e-concurrent"))
	})

	s.Run("Error case: Same key with different payload is rejected as key reuse", func() {
		t := s.T()

		affiliateID := dbtest.CreateTestAffiliate(t, s.DB, "glow-creator")
		routineID := dbtest.CreateTestRoutine(t, s.DB, "Morning Glow Routine", 1001)
		dbtest.AssignRoutine(t, s.DB, affiliateID, routineID)

		headers := map[string]string{"Idempotency-Key": "e2e-key-reuse"}

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.CreateCheckoutRequest{CreatorCode: strPtr("glow-creator"), Tier: "base"}, "", headers)
		require.Equal(t, http.StatusCreated, w1.Code, w1.Body.String())

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.CreateCheckoutRequest{CreatorCode: strPtr("glow-creator"), Tier: "upsell_2"}, "", headers)
		httptest.AssertErrorResponse(t, w2, http.StatusConflict, "idempotency_key_reuse")
	})

	s.Run("Normal case: Failed reservation is retried with the same key", func() {
		t := s.T()

		affiliateID := dbtest.CreateTestAffiliate(t, s.DB, "glow-creator")
		routineID := dbtest.CreateTestRoutine(t, s.DB, "Morning Glow Routine", 1001)
		dbtest.AssignRoutine(t, s.DB, affiliateID, routineID)

		reqBody := request.CreateCheckoutRequest{
			CreatorCode: strPtr("glow-creator"),
			Tier:        "base",
		}
		headers := map[string]string{"Idempotency-Key": "e2e-retry"}

		s.Storefront.FailNext(2) // validate + create の両方を失敗させる
		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL, reqBody, "", headers)
		httptest.AssertErrorResponse(t, w1, http.StatusBadGateway, "upstream_failed")
		require.Equal(t, "failed", dbtest.GetReservationStatus(t, s.DB, "e2e-retry"))

		s.Storefront.FailNext(0)
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL, reqBody, "", headers)
		var retried response.CheckoutResponse
		httptest.AssertSuccessResponse(t, w2, http.StatusCreated, &retried)
		require.False(t, retried.Cached, "Retry after failure creates a fresh cart")
		require.Equal(t, "completed", dbtest.GetReservationStatus(t, s.DB, "e2e-retry"))
	})

	s.Run("Error case: Variants missing from the catalog are rejected", func() {
		t := s.T()

		affiliateID := dbtest.CreateTestAffiliate(t, s.DB, "glow-creator")
		routineID := dbtest.CreateTestRoutine(t, s.DB, "Morning Glow Routine", 2001)
		dbtest.AssignRoutine(t, s.DB, affiliateID, routineID)

		s.Storefront.MarkVariantMissing(2001)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.CreateCheckoutRequest{CreatorCode: strPtr("glow-creator"), Tier: "base"}, "",
			map[string]string{"Idempotency-Key": "e2e-missing-variant"})
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "variants_rejected")
		require.Equal(t, "failed", dbtest.GetReservationStatus(t, s.DB, "e2e-missing-variant"))
	})

	s.Run("Normal case: Link token attributes the checkout without a body creator code", func() {
		t := s.T()

		affiliateID := dbtest.CreateTestAffiliate(t, s.DB, "token-creator")
		routineID := dbtest.CreateTestRoutine(t, s.DB, "Evening Calm Routine", 3001)
		dbtest.AssignRoutine(t, s.DB, affiliateID, routineID)

		svc := token.NewService(s.Config.LinkToken.Secret, s.Config.LinkToken.Duration)
		linkToken, err := svc.Issue("token-creator")
		require.NoError(t, err)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.CreateCheckoutRequest{Tier: "base"}, linkToken,
			map[string]string{"Idempotency-Key": "e2e-link-token"})

		var actual response.CheckoutResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &actual)
		require.Equal(t, "completed", dbtest.GetReservationStatus(t, s.DB, "e2e-link-token"))
	})

	s.Run("Normal case: Organic checkout bypasses the reservation store", func() {
		t := s.T()

		routineID := dbtest.CreateTestRoutine(t, s.DB, "Organic Routine", 4001)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.CreateCheckoutRequest{RoutineID: uuidPtr(routineID), Tier: "base"}, "")

		var actual response.CheckoutResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &actual)
		require.NotEmpty(t, actual.CheckoutURL)

		// 匿名トラフィックは重複排除されない（毎回新しいカートを作る）
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.CreateCheckoutRequest{RoutineID: uuidPtr(routineID), Tier: "base"}, "")
		require.Equal(t, http.StatusCreated, w2.Code, w2.Body.String())
		require.Equal(t, 2, s.Storefront.CartRequestCount())

		var reservations int
		err := s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM checkout_reservations").Scan(&reservations)
		require.NoError(t, err)
		require.Zero(t, reservations, "Organic traffic must not create reservations")
	})

	s.Run("Error case: Unknown routine returns 404", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.CreateCheckoutRequest{RoutineID: uuidPtr(uuid.New()), Tier: "base"}, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "routine_not_found")
	})

	s.Run("Error case: Unknown tier returns 400 before any lookup", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.CreateCheckoutRequest{RoutineID: uuidPtr(uuid.New()), Tier: "mega"}, "")
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "invalid_tier")
	})

	s.Run("Error case: Missing tier fails request validation", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			map[string]string{"creator_code": "glow-creator"}, "")
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "invalid_request")
	})
}

// =============================================================================
// TestGetReservation - Reservation lookup API tests
// =============================================================================

func (s *CheckoutSuite) TestGetReservation() {
	s.Run("Normal case: Completed reservation retrieved by key", func() {
		t := s.T()

		affiliateID := dbtest.CreateTestAffiliate(t, s.DB, "glow-creator")
		routineID := dbtest.CreateTestRoutine(t, s.DB, "Morning Glow Routine", 1001)
		dbtest.AssignRoutine(t, s.DB, affiliateID, routineID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.CreateCheckoutRequest{CreatorCode: strPtr("glow-creator"), Tier: "base"}, "",
			map[string]string{"Idempotency-Key": "e2e-lookup"})
		var created response.CheckoutResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		rw := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationURL+"e2e-lookup", nil, "")
		var actual response.ReservationResponse
		httptest.AssertSuccessResponse(t, rw, http.StatusOK, &actual)

		expected := &response.ReservationResponse{
			IdempotencyKey: "e2e-lookup",
			Status:         "completed",
			CheckoutURL:    &created.CheckoutURL,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.ReservationResponse{}, "ID", "CartID", "LastError", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &actual, opts...); diff != "" {
			t.Errorf("Reservation response mismatch (-want +got):\n%s", diff)
		}
		require.NotNil(t, actual.CartID)
	})

	s.Run("Normal case: Failed reservation exposes the upstream error", func() {
		t := s.T()

		affiliateID := dbtest.CreateTestAffiliate(t, s.DB, "glow-creator")
		routineID := dbtest.CreateTestRoutine(t, s.DB, "Morning Glow Routine", 1001)
		dbtest.AssignRoutine(t, s.DB, affiliateID, routineID)

		s.Storefront.FailNext(2)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.CreateCheckoutRequest{CreatorCode: strPtr("glow-creator"), Tier: "base"}, "",
			map[string]string{"Idempotency-Key": "e2e-failed-lookup"})
		require.Equal(t, http.StatusBadGateway, w.Code, w.Body.String())

		rw := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationURL+"e2e-failed-lookup", nil, "")
		var actual response.ReservationResponse
		httptest.AssertSuccessResponse(t, rw, http.StatusOK, &actual)
		require.Equal(t, "failed", actual.Status)
		require.NotNil(t, actual.LastError)
		require.Nil(t, actual.CheckoutURL)
	})

	s.Run("Error case: Returns 404 for unknown key", func() {
		t := s.T()

		rw := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationURL+"no-such-key", nil, "")
		httptest.AssertErrorResponse(t, rw, http.StatusNotFound, "reservation_not_found")
	})
}
