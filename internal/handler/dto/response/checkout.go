package response

import (
	"time"

	"routine-checkout/internal/usecase/commands"
	"routine-checkout/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CheckoutResponse struct {
	CheckoutURL    string `json:"checkoutUrl"`
	IdempotencyKey string `json:"idempotencyKey"`
	Cached         bool   `json:"cached"`
}

type ReservationResponse struct {
	ID             uuid.UUID `json:"id"`
	IdempotencyKey string    `json:"idempotencyKey"`
	Status         string    `json:"status"`
	CartID         *string   `json:"cartId,omitempty"`
	CheckoutURL    *string   `json:"checkoutUrl,omitempty"`
	LastError      *string   `json:"lastError,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromCheckoutResult(result *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		CheckoutURL:    result.CheckoutURL,
		IdempotencyKey: result.IdempotencyKey,
		Cached:         result.Cached,
	}
}

// FromReservationView intentionally omits the payload hash: it is an internal
// comparison artifact, not part of the public contract.
func FromReservationView(view *queries.ReservationView) (*ReservationResponse, error) {
	var resp ReservationResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}
