package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID             uuid.UUID `json:"id"`
	IdempotencyKey string    `json:"idempotency_key"`
	PayloadHash    string    `json:"payload_hash"`
	Status         string    `json:"status"`
	CartID         *string   `json:"cart_id,omitempty"`
	CheckoutURL    *string   `json:"checkout_url,omitempty"`
	LastError      *string   `json:"last_error,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CheckoutQueries interface {
	GetReservationByKey(ctx context.Context, idempotencyKey string) (*ReservationView, error)
}
