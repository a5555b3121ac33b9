package writerepo

import (
	"context"
	"time"

	"routine-checkout/internal/infra"

	"github.com/google/uuid"
)

// StatsRepository maintains per-affiliate daily cart counters. Writes are
// best-effort: the orchestrator dispatches them after the response and only
// logs failures.
type StatsRepository struct {
	db infra.DBTX
}

func NewStatsRepository(db infra.DBTX) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) IncrementCartCreated(ctx context.Context, affiliateID uuid.UUID, day time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO affiliate_stats (affiliate_id, stat_date, carts_created)
		 VALUES ($1, $2::date, 1)
		 ON CONFLICT (affiliate_id, stat_date)
		 DO UPDATE SET carts_created = affiliate_stats.carts_created + 1, updated_at = now()`,
		affiliateID, day,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to increment cart-created counter", err)
	}

	return nil
}
