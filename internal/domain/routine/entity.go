package routine

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInactiveRoutine = errors.New("routine is not active")

// Routine is a pre-configured product bundle promoted by creators.
// Tier variant lists come straight from routine configuration and are only
// validated when a tier is selected.
type Routine struct {
	id           uuid.UUID
	name         string
	isActive     bool
	tierVariants map[Tier][]string
}

func NewRoutine(id uuid.UUID, name string, isActive bool, tierVariants map[string][]string) *Routine {
	variants := make(map[Tier][]string, len(tierVariants))
	for tier, raw := range tierVariants {
		variants[Tier(tier)] = raw
	}
	return &Routine{
		id:           id,
		name:         name,
		isActive:     isActive,
		tierVariants: variants,
	}
}

func (r *Routine) ID() uuid.UUID {
	return r.id
}

func (r *Routine) Name() string {
	return r.name
}

func (r *Routine) IsActive() bool {
	return r.isActive
}

// SelectVariants resolves and validates the variant list for a tier.
// This is the hard validation gate: it must pass before any reservation or
// upstream side effect.
func (r *Routine) SelectVariants(tier Tier) (VariantSelection, error) {
	if !r.isActive {
		return VariantSelection{}, ErrInactiveRoutine
	}
	return NewVariantSelection(tier, r.tierVariants[tier])
}
