//go:build unit

package routine_test

import (
	"testing"

	"routine-checkout/internal/domain/routine"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		expect    routine.Tier
		expectErr error
	}{
		{name: "base tier", input: "base", expect: routine.TierBase},
		{name: "first upsell", input: "upsell_1", expect: routine.TierUpsell1},
		{name: "second upsell", input: "upsell_2", expect: routine.TierUpsell2},
		{name: "empty string", input: "", expectErr: routine.ErrUnknownTier},
		{name: "unknown value", input: "premium", expectErr: routine.ErrUnknownTier},
		{name: "case sensitive", input: "Base", expectErr: routine.ErrUnknownTier},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tier, err := routine.ParseTier(tc.input)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, tier)
		})
	}
}

func TestTierExpectedItems(t *testing.T) {
	assert.Equal(t, 3, routine.TierBase.ExpectedItems())
	assert.Equal(t, 4, routine.TierUpsell1.ExpectedItems())
	assert.Equal(t, 5, routine.TierUpsell2.ExpectedItems())
}

func TestNewVariantSelection(t *testing.T) {
	cases := []struct {
		name      string
		tier      routine.Tier
		raw       []string
		expectIDs []int64
		expectErr error
	}{
		{
			name:      "valid base selection",
			tier:      routine.TierBase,
			raw:       []string{"101", "102", "103"},
			expectIDs: []int64{101, 102, 103},
		},
		{
			name:      "whitespace is trimmed",
			tier:      routine.TierBase,
			raw:       []string{" 101 ", "102", "103"},
			expectIDs: []int64{101, 102, 103},
		},
		{
			name:      "no variants configured",
			tier:      routine.TierBase,
			raw:       nil,
			expectErr: routine.ErrMissingTierVariants,
		},
		{
			name:      "too few variants",
			tier:      routine.TierUpsell1,
			raw:       []string{"101", "102", "103"},
			expectErr: routine.ErrVariantCardinality,
		},
		{
			name:      "too many variants",
			tier:      routine.TierBase,
			raw:       []string{"101", "102", "103", "104"},
			expectErr: routine.ErrVariantCardinality,
		},
		{
			name:      "non-numeric variant id",
			tier:      routine.TierBase,
			raw:       []string{"101", "abc", "103"},
			expectErr: routine.ErrInvalidVariantID,
		},
		{
			name:      "zero variant id",
			tier:      routine.TierBase,
			raw:       []string{"101", "0", "103"},
			expectErr: routine.ErrInvalidVariantID,
		},
		{
			name:      "negative variant id",
			tier:      routine.TierBase,
			raw:       []string{"101", "-5", "103"},
			expectErr: routine.ErrInvalidVariantID,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			selection, err := routine.NewVariantSelection(tc.tier, tc.raw)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.tier, selection.Tier())
			assert.Equal(t, tc.expectIDs, selection.VariantIDs())
		})
	}
}

func TestVariantSelectionReturnsCopy(t *testing.T) {
	selection, err := routine.NewVariantSelection(routine.TierBase, []string{"1", "2", "3"})
	require.NoError(t, err)

	ids := selection.VariantIDs()
	ids[0] = 999

	assert.Equal(t, []int64{1, 2, 3}, selection.VariantIDs())
}

func TestSelectVariants(t *testing.T) {
	tierVariants := map[string][]string{
		"base":     {"101", "102", "103"},
		"upsell_1": {"101", "102"},
	}

	t.Run("active routine with valid tier", func(t *testing.T) {
		r := routine.NewRoutine(uuid.New(), "Evening Routine", true, tierVariants)

		selection, err := r.SelectVariants(routine.TierBase)
		require.NoError(t, err)
		assert.Equal(t, []int64{101, 102, 103}, selection.VariantIDs())
	})

	t.Run("inactive routine is rejected before variant checks", func(t *testing.T) {
		r := routine.NewRoutine(uuid.New(), "Evening Routine", false, tierVariants)

		_, err := r.SelectVariants(routine.TierBase)
		assert.ErrorIs(t, err, routine.ErrInactiveRoutine)
	})

	t.Run("misconfigured tier cardinality", func(t *testing.T) {
		r := routine.NewRoutine(uuid.New(), "Evening Routine", true, tierVariants)

		_, err := r.SelectVariants(routine.TierUpsell1)
		assert.ErrorIs(t, err, routine.ErrVariantCardinality)
	})

	t.Run("tier with no configuration", func(t *testing.T) {
		r := routine.NewRoutine(uuid.New(), "Evening Routine", true, tierVariants)

		_, err := r.SelectVariants(routine.TierUpsell2)
		assert.ErrorIs(t, err, routine.ErrMissingTierVariants)
	})
}
