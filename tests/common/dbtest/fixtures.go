//go:build unit || e2e

package dbtest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestAffiliate(t *testing.T, db DBLike, creatorCode string) uuid.UUID {
	t.Helper()

	affiliateID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO affiliates (id, creator_code, display_name, is_active) VALUES ($1, $2, $3, true) ON CONFLICT (creator_code) DO NOTHING",
		affiliateID, creatorCode, "Test "+creatorCode)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM affiliates WHERE creator_code = $1", creatorCode).Scan(&affiliateID)
	}

	return affiliateID
}

// CreateTestRoutine inserts a routine whose three tiers are configured at the
// correct cardinality from the given base variant id.
func CreateTestRoutine(t *testing.T, db DBLike, name string, baseVariantID int64) uuid.UUID {
	t.Helper()

	tiers := map[string][]string{}
	tierSizes := map[string]int{"base": 3, "upsell_1": 4, "upsell_2": 5}
	for tier, size := range tierSizes {
		variants := make([]string, 0, size)
		for i := 0; i < size; i++ {
			variants = append(variants, fmt.Sprintf("%d", baseVariantID+int64(i)))
		}
		tiers[tier] = variants
	}

	raw, err := json.Marshal(tiers)
	require.NoError(t, err)

	routineID := uuid.New()
	_, err = db.Exec(context.Background(),
		"INSERT INTO routines (id, name, is_active, tier_variants) VALUES ($1, $2, true, $3)",
		routineID, name, raw)
	require.NoError(t, err)

	return routineID
}

func CreateTestRoutineWithTiers(t *testing.T, db DBLike, name string, tiers map[string][]string) uuid.UUID {
	t.Helper()

	raw, err := json.Marshal(tiers)
	require.NoError(t, err)

	routineID := uuid.New()
	_, err = db.Exec(context.Background(),
		"INSERT INTO routines (id, name, is_active, tier_variants) VALUES ($1, $2, true, $3)",
		routineID, name, raw)
	require.NoError(t, err)

	return routineID
}

func AssignRoutine(t *testing.T, db DBLike, affiliateID, routineID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO affiliate_routines (affiliate_id, routine_id, is_active) VALUES ($1, $2, true)",
		affiliateID, routineID)
	require.NoError(t, err)
}

func GetReservationStatus(t *testing.T, db DBLike, idempotencyKey string) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT status FROM checkout_reservations WHERE idempotency_key = $1", idempotencyKey).Scan(&status)
	require.NoError(t, err)
	return status
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables so each subtest starts from a clean slate
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
