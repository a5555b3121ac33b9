//go:build unit

package readstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeTierVariants(t *testing.T) {
	t.Run("decodes string and numeric variant ids", func(t *testing.T) {
		got, err := decodeTierVariants([]byte(`{"base": ["1001", 1002, "1003"]}`))
		require.NoError(t, err)
		require.Equal(t, map[string][]string{"base": {"1001", "1002", "1003"}}, got)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		_, err := decodeTierVariants([]byte(`{"base": [`))
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid tier_variants json")
	})

	t.Run("rejects non-scalar variant ids", func(t *testing.T) {
		_, err := decodeTierVariants([]byte(`{"base": [{"id": 1001}]}`))
		require.Error(t, err)
	})
}
