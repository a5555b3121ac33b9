package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "routine-checkout/internal/handler/dto/request"
	resdto "routine-checkout/internal/handler/dto/response"
	"routine-checkout/internal/handler/httperr"
	"routine-checkout/internal/handler/middleware"
	"routine-checkout/internal/infra"
	"routine-checkout/internal/pkg/errs"
	"routine-checkout/internal/usecase/commands"
	"routine-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
	q    queries.CheckoutQueries
}

func NewCheckoutHandler(cmds commands.CheckoutCommands, q queries.CheckoutQueries) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds, q: q}
}

// @Summary Create checkout
// @Description Create a purchasable cart for a routine tier, protected by an idempotency reservation
// @Tags checkout
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client-supplied idempotency key; derived from the payload when absent"
// @Param request body reqdto.CreateCheckoutRequest true "Checkout request"
// @Success 200 {object} resdto.CheckoutResponse "Replay of a completed checkout"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Failure 504 {object} httperr.Response
// @Router /checkout [post]
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var req reqdto.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithCode(c, http.StatusBadRequest, err, "invalid_request", "Invalid request format", nil)
		return
	}

	tokenCode, _ := middleware.GetCreatorCode(c)
	var idempotencyKey *string
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		idempotencyKey = &key
	}

	result, err := h.cmds.CreateCheckout(c.Request.Context(), req.ToInput(tokenCode, idempotencyKey))
	if err != nil {
		h.abortCheckoutError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Cached {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromCheckoutResult(result))
}

func (h *CheckoutHandler) abortCheckoutError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrInvalidTier):
		httperr.AbortWithCode(c, http.StatusBadRequest, err, "invalid_tier", "Unknown tier", nil)

	case errs.Is(err, commands.ErrRoutineNotFound):
		httperr.AbortWithCode(c, http.StatusNotFound, err, "routine_not_found", "Routine not found", nil)

	case errs.Is(err, commands.ErrInvalidRoutineConfig):
		httperr.AbortWithCode(c, http.StatusUnprocessableEntity, err, "invalid_routine_config",
			"Routine is not purchasable at this tier", nil)

	case errs.Is(err, commands.ErrVariantsRejected):
		httperr.AbortWithCode(c, http.StatusUnprocessableEntity, err, "variants_rejected",
			"Upstream rejected one or more items", upstreamErrorDetail(err))

	case errs.Is(err, commands.ErrIdempotencyKeyReuse):
		// Permanent conflict: same key, different payload. Retrying won't help.
		httperr.AbortWithCode(c, http.StatusConflict, err, "idempotency_key_reuse",
			"Idempotency key was already used with a different request", nil)

	case errs.Is(err, commands.ErrCheckoutInProgress):
		// Transient conflict: another invocation holds the reservation.
		httperr.AbortWithRetryAfter(c, http.StatusConflict, err, "checkout_in_progress",
			"Checkout for this request is already being processed", 2*time.Second)

	case errs.Is(err, commands.ErrUpstreamUnavailable):
		httperr.AbortWithRetryAfter(c, http.StatusServiceUnavailable, err, "upstream_unavailable",
			"Cart service temporarily unavailable", circuitRetryAfter(err))

	case errs.Is(err, commands.ErrUpstreamTimeout):
		httperr.AbortWithCode(c, http.StatusGatewayTimeout, err, "upstream_timeout",
			"Cart service did not respond in time", nil)

	case errs.Is(err, commands.ErrUpstreamFailed):
		httperr.AbortWithCode(c, http.StatusBadGateway, err, "upstream_failed",
			"Cart service returned an error", nil)

	default:
		httperr.AbortWithCode(c, http.StatusInternalServerError, err, "internal_error",
			"Internal server error", nil)
	}
}

// @Summary Get reservation
// @Description Look up the reservation behind an idempotency key
// @Tags checkout
// @Produce json
// @Param key path string true "Idempotency key"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /checkout/reservations/{key} [get]
func (h *CheckoutHandler) GetReservation(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		httperr.AbortWithCode(c, http.StatusBadRequest, errors.New("empty idempotency key"),
			"invalid_request", "Idempotency key required", nil)
		return
	}

	view, err := h.q.GetReservationByKey(c.Request.Context(), key)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithCode(c, http.StatusNotFound, err, "reservation_not_found", "Reservation not found", nil)
			return
		}
		httperr.AbortWithCode(c, http.StatusInternalServerError, err, "internal_error", "Internal server error", nil)
		return
	}

	resp, err := resdto.FromReservationView(view)
	if err != nil {
		httperr.AbortWithCode(c, http.StatusInternalServerError, err, "internal_error", "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func upstreamErrorDetail(err error) any {
	var userErr *commands.UpstreamUserError
	if errors.As(err, &userErr) {
		return userErr.Errors
	}
	return nil
}

func circuitRetryAfter(err error) time.Duration {
	var circuitOpen *commands.CircuitOpenError
	if errors.As(err, &circuitOpen) {
		return circuitOpen.RetryAfter
	}
	return 30 * time.Second
}
