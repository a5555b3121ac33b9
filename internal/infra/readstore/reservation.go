package readstore

import (
	"context"

	"routine-checkout/internal/infra"
	"routine-checkout/internal/pkg/pgconv"
	"routine-checkout/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct {
	db infra.DBTX
}

func NewReservationReadStore(db infra.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

func (r *ReservationReadStore) GetReservationByKey(ctx context.Context, idempotencyKey string) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, idempotency_key, payload_hash, status, cart_id, checkout_url, last_error, created_at, updated_at
		 FROM checkout_reservations
		 WHERE idempotency_key = $1`,
		idempotencyKey,
	)

	var (
		view        queries.ReservationView
		cartID      pgtype.Text
		checkoutURL pgtype.Text
		lastError   pgtype.Text
	)
	err := row.Scan(
		&view.ID,
		&view.IdempotencyKey,
		&view.PayloadHash,
		&view.Status,
		&cartID,
		&checkoutURL,
		&lastError,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by key", err)
	}

	view.CartID = pgconv.StringPtrFromPgtype(cartID)
	view.CheckoutURL = pgconv.StringPtrFromPgtype(checkoutURL)
	view.LastError = pgconv.StringPtrFromPgtype(lastError)

	return &view, nil
}
