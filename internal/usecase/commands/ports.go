package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"routine-checkout/internal/domain/checkout"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type AffiliateSnapshot struct {
	ID          uuid.UUID
	CreatorCode string
	DisplayName string
	IsActive    bool
}

type RoutineSnapshot struct {
	ID           uuid.UUID
	Name         string
	IsActive     bool
	TierVariants map[string][]string
}

type ReservationRecord struct {
	ID             uuid.UUID
	IdempotencyKey string
	PayloadHash    string
	Status         checkout.Status
	CartID         *string
	CheckoutURL    *string
	LastError      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type AffiliateRepository interface {
	FindActiveByCode(ctx context.Context, creatorCode string) (*AffiliateSnapshot, error)
}

type RoutineRepository interface {
	FindActiveByAffiliate(ctx context.Context, affiliateID uuid.UUID) (*RoutineSnapshot, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*RoutineSnapshot, error)
}

// ReservationRepository is the single shared mutable resource. Mutual
// exclusion across processes comes from its unique key constraint and the
// status guards on every update, never from in-process locking.
type ReservationRepository interface {
	TryInsert(ctx context.Context, idempotencyKey, payloadHash string) (uuid.UUID, error)
	FindByKey(ctx context.Context, idempotencyKey string) (*ReservationRecord, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, cartID, checkoutURL string) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	ExpireStale(ctx context.Context, id uuid.UUID, cutoff time.Time) error
	Reacquire(ctx context.Context, id uuid.UUID, payloadHash string) error
}

type CartInput struct {
	VariantIDs    []int64
	Attributes    map[string]string
	Note          string
	DiscountCodes []string
}

type CartSnapshot struct {
	ID          string
	CheckoutURL string
}

// CartGateway failures must be one of the taxonomy below so the orchestrator
// can map each to a distinct client-facing outcome.
type CartGateway interface {
	ValidateVariants(ctx context.Context, variantIDs []int64) error
	CreateCart(ctx context.Context, in CartInput) (*CartSnapshot, error)
}

// ErrGatewayTimeout means the upstream did not respond within budget.
var ErrGatewayTimeout = errors.New("cart gateway timed out")

// CircuitOpenError is returned without any network attempt while the breaker
// is open. RetryAfter is the breaker cooldown, surfaced to clients as a hint.
type CircuitOpenError struct {
	RetryAfter time.Duration
}

func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("cart gateway circuit open, retry after %s", e.RetryAfter)
}

// UpstreamFieldError is one upstream-validated input rejection.
type UpstreamFieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// UpstreamUserError means the upstream understood the request and rejected
// specific inputs. Details are passed through to the caller.
type UpstreamUserError struct {
	Errors []UpstreamFieldError
}

func (e *UpstreamUserError) Error() string {
	if len(e.Errors) == 0 {
		return "upstream rejected request"
	}
	return fmt.Sprintf("upstream rejected request: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
}

// UpstreamUnknownError covers every other upstream failure, including
// invariant violations like a success response carrying neither cart nor
// user errors.
type UpstreamUnknownError struct {
	Reason string
}

func (e *UpstreamUnknownError) Error() string {
	return "upstream call failed: " + e.Reason
}

type StatsRepository interface {
	IncrementCartCreated(ctx context.Context, affiliateID uuid.UUID, day time.Time) error
}
