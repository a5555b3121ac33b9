package readstore

import (
	"context"
	"encoding/json"
	"strconv"

	"routine-checkout/internal/infra"
	"routine-checkout/internal/pkg/errs"
	"routine-checkout/internal/pkg/pgconv"
	"routine-checkout/internal/usecase/commands"

	"github.com/google/uuid"
)

type RoutineReadStore struct {
	db infra.DBTX
}

func NewRoutineReadStore(db infra.DBTX) *RoutineReadStore {
	return &RoutineReadStore{db: db}
}

// FindActiveByAffiliate resolves the routine currently assigned to an
// affiliate. At most one assignment per affiliate is active at a time,
// enforced by a partial unique index.
func (r *RoutineReadStore) FindActiveByAffiliate(ctx context.Context, affiliateID uuid.UUID) (*commands.RoutineSnapshot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT ro.id, ro.name, ro.is_active, ro.tier_variants
		 FROM routines ro
		 JOIN affiliate_routines ar ON ar.routine_id = ro.id
		 WHERE ar.affiliate_id = $1 AND ar.is_active = TRUE AND ro.is_active = TRUE`,
		affiliateID,
	)

	return scanRoutineSnapshot(row)
}

func (r *RoutineReadStore) FindActiveByID(ctx context.Context, id uuid.UUID) (*commands.RoutineSnapshot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, is_active, tier_variants
		 FROM routines
		 WHERE id = $1 AND is_active = TRUE`,
		id,
	)

	return scanRoutineSnapshot(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoutineSnapshot(row rowScanner) (*commands.RoutineSnapshot, error) {
	var (
		snap commands.RoutineSnapshot
		raw  []byte
	)
	err := row.Scan(&snap.ID, &snap.Name, &snap.IsActive, &raw)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("routine not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find routine", err)
	}

	snap.TierVariants, err = decodeTierVariants(raw)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode routine tier variants", err)
	}

	return &snap, nil
}

// decodeTierVariants normalizes the tier_variants jsonb column into string
// variant IDs. Seed data written by hand sometimes carries numeric IDs, so
// both representations are accepted.
func decodeTierVariants(raw []byte) (map[string][]string, error) {
	var decoded map[string][]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errs.Wrap(err, "invalid tier_variants json")
	}

	out := make(map[string][]string, len(decoded))
	for tier, entries := range decoded {
		variants := make([]string, 0, len(entries))
		for _, entry := range entries {
			switch v := entry.(type) {
			case string:
				variants = append(variants, v)
			case float64:
				variants = append(variants, strconv.FormatFloat(v, 'f', -1, 64))
			default:
				return nil, errs.New("unsupported variant id type in tier_variants")
			}
		}
		out[tier] = variants
	}

	return out, nil
}
