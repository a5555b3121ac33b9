package writerepo

import (
	"context"
	"errors"
	"time"

	"routine-checkout/internal/domain/checkout"
	"routine-checkout/internal/infra"
	"routine-checkout/internal/pkg/pgconv"
	"routine-checkout/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const uniqueViolationCode = "23505"

// ReservationRepository persists checkout reservations. Every mutation is
// guarded by the current status so concurrent attempts can never clobber a
// row another invocation owns.
type ReservationRepository struct {
	db infra.DBTX
}

func NewReservationRepository(db infra.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) TryInsert(ctx context.Context, idempotencyKey, payloadHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO checkout_reservations (idempotency_key, payload_hash, status)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		idempotencyKey, payloadHash, checkout.StatusCreating.String(),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return uuid.Nil, infra.WrapRepoErr("reservation already exists for idempotency key", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to insert reservation", err)
	}

	return id, nil
}

func (r *ReservationRepository) FindByKey(ctx context.Context, idempotencyKey string) (*commands.ReservationRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, idempotency_key, payload_hash, status, cart_id, checkout_url, last_error, created_at, updated_at
		 FROM checkout_reservations
		 WHERE idempotency_key = $1`,
		idempotencyKey,
	)

	var (
		record      commands.ReservationRecord
		status      string
		cartID      pgtype.Text
		checkoutURL pgtype.Text
		lastError   pgtype.Text
	)
	err := row.Scan(
		&record.ID,
		&record.IdempotencyKey,
		&record.PayloadHash,
		&status,
		&cartID,
		&checkoutURL,
		&lastError,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	record.Status = checkout.Status(status)
	record.CartID = pgconv.StringPtrFromPgtype(cartID)
	record.CheckoutURL = pgconv.StringPtrFromPgtype(checkoutURL)
	record.LastError = pgconv.StringPtrFromPgtype(lastError)

	return &record, nil
}

func (r *ReservationRepository) MarkCompleted(ctx context.Context, id uuid.UUID, cartID, checkoutURL string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE checkout_reservations
		 SET status = $2, cart_id = $3, checkout_url = $4, last_error = NULL, updated_at = now()
		 WHERE id = $1 AND status = $5`,
		id, checkout.StatusCompleted.String(), cartID, checkoutURL, checkout.StatusCreating.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark reservation completed", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation no longer in creating", nil, infra.KindConflict)
	}

	return nil
}

func (r *ReservationRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE checkout_reservations
		 SET status = $2, last_error = $3, updated_at = now()
		 WHERE id = $1 AND status = $4`,
		id, checkout.StatusFailed.String(), reason, checkout.StatusCreating.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark reservation failed", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation no longer in creating", nil, infra.KindConflict)
	}

	return nil
}

// ExpireStale reconciles an abandoned creating row to failed. The caller
// supplies the cutoff so staleness is decided by one clock; the age guard
// keeps two takeover attempts from both succeeding.
func (r *ReservationRepository) ExpireStale(ctx context.Context, id uuid.UUID, cutoff time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE checkout_reservations
		 SET status = $2, last_error = $3, updated_at = now()
		 WHERE id = $1 AND status = $4 AND created_at < $5`,
		id, checkout.StatusFailed.String(), checkout.StaleLockReason, checkout.StatusCreating.String(), cutoff,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to expire stale reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not stale or already taken over", nil, infra.KindConflict)
	}

	return nil
}

// Reacquire transitions a failed row back to creating for an explicit retry,
// clearing the prior outcome. created_at is reset so the staleness clock
// restarts with the new owner.
func (r *ReservationRepository) Reacquire(ctx context.Context, id uuid.UUID, payloadHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE checkout_reservations
		 SET status = $2, payload_hash = $3, cart_id = NULL, checkout_url = NULL, last_error = NULL,
		     created_at = now(), updated_at = now()
		 WHERE id = $1 AND status = $4`,
		id, checkout.StatusCreating.String(), payloadHash, checkout.StatusFailed.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to reacquire reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not in failed", nil, infra.KindConflict)
	}

	return nil
}
