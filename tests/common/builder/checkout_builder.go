//go:build unit || e2e

package builder

import (
	"time"

	"routine-checkout/internal/domain/checkout"
	"routine-checkout/internal/usecase/commands"

	"github.com/google/uuid"
)

// RoutineSnapshotBuilder builds routine snapshots with a purchasable default
// configuration (all three tiers at their expected cardinality).
type RoutineSnapshotBuilder struct {
	snap commands.RoutineSnapshot
}

func NewRoutineSnapshotBuilder() *RoutineSnapshotBuilder {
	return &RoutineSnapshotBuilder{
		snap: commands.RoutineSnapshot{
			ID:       uuid.New(),
			Name:     "Morning Glow Routine",
			IsActive: true,
			TierVariants: map[string][]string{
				"base":     {"1001", "1002", "1003"},
				"upsell_1": {"1001", "1002", "1003", "1004"},
				"upsell_2": {"1001", "1002", "1003", "1004", "1005"},
			},
		},
	}
}

func (b *RoutineSnapshotBuilder) WithID(id uuid.UUID) *RoutineSnapshotBuilder {
	b.snap.ID = id
	return b
}

func (b *RoutineSnapshotBuilder) WithTierVariants(tier string, variants []string) *RoutineSnapshotBuilder {
	b.snap.TierVariants[tier] = variants
	return b
}

func (b *RoutineSnapshotBuilder) Inactive() *RoutineSnapshotBuilder {
	b.snap.IsActive = false
	return b
}

func (b *RoutineSnapshotBuilder) Build() *commands.RoutineSnapshot {
	snap := b.snap
	return &snap
}

type AffiliateSnapshotBuilder struct {
	snap commands.AffiliateSnapshot
}

func NewAffiliateSnapshotBuilder() *AffiliateSnapshotBuilder {
	return &AffiliateSnapshotBuilder{
		snap: commands.AffiliateSnapshot{
			ID:          uuid.New(),
			CreatorCode: "glow-creator",
			DisplayName: "Glow Creator",
			IsActive:    true,
		},
	}
}

func (b *AffiliateSnapshotBuilder) WithCreatorCode(code string) *AffiliateSnapshotBuilder {
	b.snap.CreatorCode = code
	return b
}

func (b *AffiliateSnapshotBuilder) Build() *commands.AffiliateSnapshot {
	snap := b.snap
	return &snap
}

type ReservationRecordBuilder struct {
	record commands.ReservationRecord
}

func NewReservationRecordBuilder() *ReservationRecordBuilder {
	now := time.Now()
	return &ReservationRecordBuilder{
		record: commands.ReservationRecord{
			ID:             uuid.New(),
			IdempotencyKey: "test-idempotency-key",
			PayloadHash:    "test-payload-hash",
			Status:         checkout.StatusCreating,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
}

func (b *ReservationRecordBuilder) WithKey(key string) *ReservationRecordBuilder {
	b.record.IdempotencyKey = key
	return b
}

func (b *ReservationRecordBuilder) WithPayloadHash(hash string) *ReservationRecordBuilder {
	b.record.PayloadHash = hash
	return b
}

func (b *ReservationRecordBuilder) WithStatus(status checkout.Status) *ReservationRecordBuilder {
	b.record.Status = status
	return b
}

func (b *ReservationRecordBuilder) WithCreatedAt(t time.Time) *ReservationRecordBuilder {
	b.record.CreatedAt = t
	return b
}

func (b *ReservationRecordBuilder) Completed(cartID, checkoutURL string) *ReservationRecordBuilder {
	b.record.Status = checkout.StatusCompleted
	b.record.CartID = &cartID
	b.record.CheckoutURL = &checkoutURL
	return b
}

func (b *ReservationRecordBuilder) Failed(reason string) *ReservationRecordBuilder {
	b.record.Status = checkout.StatusFailed
	b.record.LastError = &reason
	return b
}

func (b *ReservationRecordBuilder) Build() *commands.ReservationRecord {
	record := b.record
	return &record
}
