package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"routine-checkout/internal/domain/checkout"
	"routine-checkout/internal/domain/routine"
	"routine-checkout/internal/infra"
	"routine-checkout/internal/pkg/clock"
	"routine-checkout/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidTier            = errs.New("invalid tier")
	ErrRoutineNotFound        = errs.New("routine not found")
	ErrInvalidRoutineConfig   = errs.New("invalid routine configuration")
	ErrCheckoutInProgress     = errs.New("checkout in progress")
	ErrIdempotencyKeyReuse    = errs.New("idempotency key reused with different payload")
	ErrVariantsRejected       = errs.New("variants rejected by upstream")
	ErrUpstreamUnavailable    = errs.New("upstream temporarily unavailable")
	ErrUpstreamTimeout        = errs.New("upstream timed out")
	ErrUpstreamFailed         = errs.New("upstream cart creation failed")
	ErrReservationStoreFailed = errs.New("reservation store operation failed")
)

const (
	// organicAttribution marks requests with no resolvable affiliate in the
	// payload hash.
	organicAttribution = "organic"

	// derivedKeyLength is the truncated hex length of a derived idempotency key.
	derivedKeyLength = 32

	// lastErrorMaxLen bounds the diagnostic string persisted on failed rows.
	lastErrorMaxLen = 255
)

type CheckoutInput struct {
	CreatorCode    *string
	RoutineID      *uuid.UUID
	Tier           string
	IdempotencyKey *string
}

type CheckoutResult struct {
	CheckoutURL    string
	IdempotencyKey string
	Cached         bool
}

type CheckoutCommands interface {
	CreateCheckout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	affiliateRepo   AffiliateRepository
	routineRepo     RoutineRepository
	reservationRepo ReservationRepository
	statsRepo       StatsRepository
	gateway         CartGateway
	clock           clock.Clock
	staleLockWindow time.Duration
}

func NewCheckoutUseCase(
	affiliateRepo AffiliateRepository,
	routineRepo RoutineRepository,
	reservationRepo ReservationRepository,
	statsRepo StatsRepository,
	gateway CartGateway,
	clk clock.Clock,
	staleLockWindow time.Duration,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		affiliateRepo:   affiliateRepo,
		routineRepo:     routineRepo,
		reservationRepo: reservationRepo,
		statsRepo:       statsRepo,
		gateway:         gateway,
		clock:           clk,
		staleLockWindow: staleLockWindow,
	}
}

func (u *checkoutUseCaseImpl) CreateCheckout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	tier, err := routine.ParseTier(in.Tier)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTier)
	}

	aff, routineEntity, err := u.resolveRoutine(ctx, in)
	if err != nil {
		return nil, err
	}

	selection, err := routineEntity.SelectVariants(tier)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRoutineConfig)
	}

	key := u.resolveIdempotencyKey(in, aff, routineEntity.ID(), selection)
	payloadHash := derivePayloadHash(aff, routineEntity.ID(), selection)

	// Unattributed traffic bypasses the reservation machinery entirely:
	// duplicate organic carts carry no commission consequences.
	if aff == nil {
		cart, err := u.callUpstream(ctx, routineEntity, selection, nil)
		if err != nil {
			return nil, err
		}
		return &CheckoutResult{CheckoutURL: cart.CheckoutURL, IdempotencyKey: key, Cached: false}, nil
	}

	reservationID, cached, err := u.acquireReservation(ctx, key, payloadHash)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return &CheckoutResult{CheckoutURL: *cached, IdempotencyKey: key, Cached: true}, nil
	}

	cart, err := u.executeReservedCheckout(ctx, reservationID, routineEntity, selection, aff)
	if err != nil {
		return nil, err
	}

	// Best-effort attribution counter. The response must never observe its outcome.
	go u.recordCartCreated(aff.ID)

	return &CheckoutResult{CheckoutURL: cart.CheckoutURL, IdempotencyKey: key, Cached: false}, nil
}

// resolveRoutine implements the attribution-first resolution order: an active
// affiliate's current routine assignment wins, then a direct routine lookup.
// A missing creator code simply yields organic traffic (aff == nil).
func (u *checkoutUseCaseImpl) resolveRoutine(ctx context.Context, in CheckoutInput) (*AffiliateSnapshot, *routine.Routine, error) {
	var aff *AffiliateSnapshot

	if in.CreatorCode != nil && *in.CreatorCode != "" {
		found, err := u.affiliateRepo.FindActiveByCode(ctx, *in.CreatorCode)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.Mark(err, ErrReservationStoreFailed)
		}
		aff = found
	}

	var snapshot *RoutineSnapshot
	if aff != nil {
		assigned, err := u.routineRepo.FindActiveByAffiliate(ctx, aff.ID)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.Mark(err, ErrReservationStoreFailed)
		}
		snapshot = assigned
	}

	if snapshot == nil && in.RoutineID != nil {
		direct, err := u.routineRepo.FindActiveByID(ctx, *in.RoutineID)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.Mark(err, ErrReservationStoreFailed)
		}
		snapshot = direct
	}

	if snapshot == nil {
		return nil, nil, ErrRoutineNotFound
	}

	return aff, routine.NewRoutine(snapshot.ID, snapshot.Name, snapshot.IsActive, snapshot.TierVariants), nil
}

// acquireReservation runs the reservation state machine for an attributed
// request. It returns either a cached checkout URL (genuine replay) or the id
// of a creating row this invocation now exclusively owns.
func (u *checkoutUseCaseImpl) acquireReservation(ctx context.Context, key, payloadHash string) (uuid.UUID, *string, error) {
	existing, err := u.reservationRepo.FindByKey(ctx, key)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return uuid.Nil, nil, errs.Mark(err, ErrReservationStoreFailed)
	}

	if existing == nil {
		id, insertErr := u.reservationRepo.TryInsert(ctx, key, payloadHash)
		if insertErr == nil {
			return id, nil, nil
		}
		if !infra.IsKind(insertErr, infra.KindDuplicateKey) {
			return uuid.Nil, nil, errs.Mark(insertErr, ErrReservationStoreFailed)
		}
		// Lost the insert race: a concurrent request owns this key now.
		// Re-read to close the check/insert gap.
		winner, readErr := u.reservationRepo.FindByKey(ctx, key)
		if readErr != nil {
			return uuid.Nil, nil, errs.Mark(readErr, ErrReservationStoreFailed)
		}
		if winner.Status == checkout.StatusCompleted && winner.PayloadHash == payloadHash && winner.CheckoutURL != nil {
			return uuid.Nil, winner.CheckoutURL, nil
		}
		return uuid.Nil, nil, ErrCheckoutInProgress
	}

	switch existing.Status {
	case checkout.StatusCompleted:
		if existing.PayloadHash != payloadHash {
			return uuid.Nil, nil, ErrIdempotencyKeyReuse
		}
		if existing.CheckoutURL == nil {
			return uuid.Nil, nil, errs.New("completed reservation missing checkout url")
		}
		return uuid.Nil, existing.CheckoutURL, nil

	case checkout.StatusFailed:
		if existing.PayloadHash != payloadHash {
			return uuid.Nil, nil, ErrIdempotencyKeyReuse
		}
		if err := u.reservationRepo.Reacquire(ctx, existing.ID, payloadHash); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return uuid.Nil, nil, ErrCheckoutInProgress
			}
			return uuid.Nil, nil, errs.Mark(err, ErrReservationStoreFailed)
		}
		return existing.ID, nil, nil

	case checkout.StatusCreating:
		if !checkout.IsStaleLock(existing.Status, existing.CreatedAt, u.clock.Now(), u.staleLockWindow) {
			return uuid.Nil, nil, ErrCheckoutInProgress
		}
		// Abandoned lock: reconcile to failed, then take it over.
		if err := u.reservationRepo.ExpireStale(ctx, existing.ID, u.clock.Now().Add(-u.staleLockWindow)); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return uuid.Nil, nil, ErrCheckoutInProgress
			}
			return uuid.Nil, nil, errs.Mark(err, ErrReservationStoreFailed)
		}
		if err := u.reservationRepo.Reacquire(ctx, existing.ID, payloadHash); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return uuid.Nil, nil, ErrCheckoutInProgress
			}
			return uuid.Nil, nil, errs.Mark(err, ErrReservationStoreFailed)
		}
		return existing.ID, nil, nil

	default:
		return uuid.Nil, nil, errs.New("invalid reservation status")
	}
}

// executeReservedCheckout performs the upstream interaction while holding a
// creating reservation. Upstream failures reconcile the row to failed before
// returning so a retry can reacquire it immediately.
func (u *checkoutUseCaseImpl) executeReservedCheckout(
	ctx context.Context,
	reservationID uuid.UUID,
	routineEntity *routine.Routine,
	selection routine.VariantSelection,
	aff *AffiliateSnapshot,
) (*CartSnapshot, error) {
	cart, err := u.callUpstream(ctx, routineEntity, selection, aff)
	if err != nil {
		u.reconcileFailure(ctx, reservationID, err)
		return nil, err
	}

	// A MarkCompleted failure is not reconciled to failed: the cart already
	// exists upstream, and a failed row would authorize a retry that creates a
	// duplicate. The row stays creating and becomes takeable once stale.
	if err := u.reservationRepo.MarkCompleted(ctx, reservationID, cart.ID, cart.CheckoutURL); err != nil {
		return nil, errs.Mark(err, ErrReservationStoreFailed)
	}

	return cart, nil
}

// callUpstream validates variants against the upstream catalog first so stale
// items fail fast without consuming a cart-creation attempt.
func (u *checkoutUseCaseImpl) callUpstream(
	ctx context.Context,
	routineEntity *routine.Routine,
	selection routine.VariantSelection,
	aff *AffiliateSnapshot,
) (*CartSnapshot, error) {
	if err := u.gateway.ValidateVariants(ctx, selection.VariantIDs()); err != nil {
		return nil, u.classifyGatewayError(err)
	}

	attributes := map[string]string{
		"routine_id": routineEntity.ID().String(),
		"tier":       selection.Tier().String(),
	}
	note := "Routine checkout: " + routineEntity.Name()
	if aff != nil {
		attributes["creator_code"] = aff.CreatorCode
		note = note + " via " + aff.CreatorCode
	}

	cart, err := u.gateway.CreateCart(ctx, CartInput{
		VariantIDs: selection.VariantIDs(),
		Attributes: attributes,
		Note:       note,
	})
	if err != nil {
		return nil, u.classifyGatewayError(err)
	}

	return cart, nil
}

func (u *checkoutUseCaseImpl) classifyGatewayError(err error) error {
	var (
		circuitOpen *CircuitOpenError
		userErr     *UpstreamUserError
	)
	switch {
	case errors.As(err, &circuitOpen):
		return errs.Mark(err, ErrUpstreamUnavailable)
	case errs.Is(err, ErrGatewayTimeout):
		return errs.Mark(err, ErrUpstreamTimeout)
	case errors.As(err, &userErr):
		return errs.Mark(err, ErrVariantsRejected)
	default:
		return errs.Mark(err, ErrUpstreamFailed)
	}
}

func (u *checkoutUseCaseImpl) reconcileFailure(ctx context.Context, reservationID uuid.UUID, cause error) {
	reason := errs.Truncate(cause, lastErrorMaxLen)
	if err := u.reservationRepo.MarkFailed(ctx, reservationID, reason); err != nil {
		slog.Error("failed to reconcile reservation to failed",
			"reservation_id", reservationID,
			"error", err)
	}
}

func (u *checkoutUseCaseImpl) recordCartCreated(affiliateID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := u.statsRepo.IncrementCartCreated(ctx, affiliateID, u.clock.Now()); err != nil {
		slog.Warn("failed to increment cart-created counter",
			"affiliate_id", affiliateID,
			"error", err)
	}
}

// resolveIdempotencyKey prefers a client-supplied key and otherwise derives
// one so byte-identical logical requests still collide predictively.
func (u *checkoutUseCaseImpl) resolveIdempotencyKey(
	in CheckoutInput,
	aff *AffiliateSnapshot,
	routineID uuid.UUID,
	selection routine.VariantSelection,
) string {
	if in.IdempotencyKey != nil && *in.IdempotencyKey != "" {
		return *in.IdempotencyKey
	}

	payload := struct {
		Affiliate  string  `json:"affiliate"`
		Tier       string  `json:"tier"`
		RoutineID  string  `json:"routine_id"`
		VariantIDs []int64 `json:"variant_ids"`
	}{
		Affiliate:  attributionLabel(aff),
		Tier:       selection.Tier().String(),
		RoutineID:  routineID.String(),
		VariantIDs: selection.VariantIDs(),
	}

	data, _ := json.Marshal(payload)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])[:derivedKeyLength]
}

// derivePayloadHash is intentionally distinct from key derivation so that a
// client-supplied key is still validated against payload drift.
func derivePayloadHash(aff *AffiliateSnapshot, routineID uuid.UUID, selection routine.VariantSelection) string {
	payload := struct {
		Attribution string  `json:"attribution"`
		RoutineID   string  `json:"routine_id"`
		Tier        string  `json:"tier"`
		VariantIDs  []int64 `json:"variant_ids"`
	}{
		Attribution: attributionLabel(aff),
		RoutineID:   routineID.String(),
		Tier:        selection.Tier().String(),
		VariantIDs:  selection.VariantIDs(),
	}

	data, _ := json.Marshal(payload)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func attributionLabel(aff *AffiliateSnapshot) string {
	if aff == nil {
		return organicAttribution
	}
	return aff.ID.String()
}
