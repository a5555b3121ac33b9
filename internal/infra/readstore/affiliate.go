package readstore

import (
	"context"

	"routine-checkout/internal/domain/affiliate"
	"routine-checkout/internal/infra"
	"routine-checkout/internal/pkg/pgconv"
	"routine-checkout/internal/usecase/commands"

	"github.com/google/uuid"
)

type AffiliateReadStore struct {
	db infra.DBTX
}

func NewAffiliateReadStore(db infra.DBTX) *AffiliateReadStore {
	return &AffiliateReadStore{db: db}
}

func (r *AffiliateReadStore) FindActiveByCode(ctx context.Context, creatorCode string) (*commands.AffiliateSnapshot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, creator_code, display_name, is_active
		 FROM affiliates
		 WHERE creator_code = $1 AND is_active = TRUE`,
		creatorCode,
	)

	var (
		id          uuid.UUID
		code        string
		displayName string
		isActive    bool
	)
	err := row.Scan(&id, &code, &displayName, &isActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("affiliate not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find affiliate by creator code", err)
	}

	// Round-trip through the domain constructor so invariant violations in
	// stored rows surface here instead of deeper in the checkout flow.
	entity, err := affiliate.NewAffiliate(id, code, displayName, isActive)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid affiliate row", err, infra.KindDBFailure)
	}

	return &commands.AffiliateSnapshot{
		ID:          entity.ID(),
		CreatorCode: entity.CreatorCode(),
		DisplayName: entity.DisplayName(),
		IsActive:    entity.IsActive(),
	}, nil
}
