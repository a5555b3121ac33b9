package routine

import "errors"

var ErrUnknownTier = errors.New("unknown tier")

// Tier is an up-sell level of a routine. Each tier maps to a fixed number of
// purchasable items.
type Tier string

const (
	TierBase    Tier = "base"
	TierUpsell1 Tier = "upsell_1"
	TierUpsell2 Tier = "upsell_2"
)

func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.IsValid() {
		return "", ErrUnknownTier
	}
	return t, nil
}

func (t Tier) String() string {
	return string(t)
}

func (t Tier) IsValid() bool {
	switch t {
	case TierBase, TierUpsell1, TierUpsell2:
		return true
	default:
		return false
	}
}

// ExpectedItems is the exact variant cardinality required for the tier.
func (t Tier) ExpectedItems() int {
	switch t {
	case TierBase:
		return 3
	case TierUpsell1:
		return 4
	case TierUpsell2:
		return 5
	default:
		return 0
	}
}
