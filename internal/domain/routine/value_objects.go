package routine

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrMissingTierVariants = errors.New("tier has no configured variants")
	ErrVariantCardinality  = errors.New("variant count does not match tier")
	ErrInvalidVariantID    = errors.New("variant id must be a positive integer")
)

// VariantSelection is the validated, ordered list of purchasable variant ids
// for one tier of a routine.
type VariantSelection struct {
	tier       Tier
	variantIDs []int64
}

// NewVariantSelection normalizes raw configuration entries into variant ids.
// The list length must equal the tier's expected cardinality and every entry
// must normalize to a positive integer.
func NewVariantSelection(tier Tier, raw []string) (VariantSelection, error) {
	if !tier.IsValid() {
		return VariantSelection{}, ErrUnknownTier
	}
	if len(raw) == 0 {
		return VariantSelection{}, ErrMissingTierVariants
	}
	if len(raw) != tier.ExpectedItems() {
		return VariantSelection{}, ErrVariantCardinality
	}

	ids := make([]int64, 0, len(raw))
	for _, entry := range raw {
		id, err := strconv.ParseInt(strings.TrimSpace(entry), 10, 64)
		if err != nil || id <= 0 {
			return VariantSelection{}, ErrInvalidVariantID
		}
		ids = append(ids, id)
	}

	return VariantSelection{tier: tier, variantIDs: ids}, nil
}

func (s VariantSelection) Tier() Tier {
	return s.tier
}

func (s VariantSelection) VariantIDs() []int64 {
	ids := make([]int64, len(s.variantIDs))
	copy(ids, s.variantIDs)
	return ids
}
