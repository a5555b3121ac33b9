package request

import (
	"strings"

	"routine-checkout/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateCheckoutRequest struct {
	CreatorCode    *string    `json:"creator_code,omitempty"`
	RoutineID      *uuid.UUID `json:"routine_id,omitempty"`
	Tier           string     `json:"tier" binding:"required"`
	IdempotencyKey *string    `json:"idempotency_key,omitempty"`
}

// GetCreatorCode prefers the body field and falls back to the code resolved
// from a signed link token.
func (r CreateCheckoutRequest) GetCreatorCode(tokenCode string) *string {
	if r.CreatorCode != nil {
		trimmed := strings.TrimSpace(*r.CreatorCode)
		if trimmed != "" {
			return &trimmed
		}
	}
	if tokenCode != "" {
		return &tokenCode
	}
	return nil
}

// ToInput assembles the usecase input. The Idempotency-Key header takes
// precedence over the body field.
func (r CreateCheckoutRequest) ToInput(tokenCode string, headerKey *string) commands.CheckoutInput {
	key := headerKey
	if key == nil && r.IdempotencyKey != nil && strings.TrimSpace(*r.IdempotencyKey) != "" {
		trimmed := strings.TrimSpace(*r.IdempotencyKey)
		key = &trimmed
	}
	return commands.CheckoutInput{
		CreatorCode:    r.GetCreatorCode(tokenCode),
		RoutineID:      r.RoutineID,
		Tier:           strings.TrimSpace(r.Tier),
		IdempotencyKey: key,
	}
}
