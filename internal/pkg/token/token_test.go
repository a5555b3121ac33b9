//go:build unit

package token_test

import (
	"testing"
	"time"

	"routine-checkout/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkTokens(t *testing.T) {
	svc := token.NewService("test-secret", time.Hour)

	t.Run("round trip", func(t *testing.T) {
		signed, err := svc.Issue("glow-creator")
		require.NoError(t, err)

		claims, err := svc.Parse(signed)
		require.NoError(t, err)
		assert.Equal(t, "glow-creator", claims.CreatorCode)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		signed, err := svc.Issue("glow-creator")
		require.NoError(t, err)

		other := token.NewService("different-secret", time.Hour)
		_, err = other.Parse(signed)
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		shortLived := token.NewService("test-secret", -time.Minute)
		signed, err := shortLived.Issue("glow-creator")
		require.NoError(t, err)

		_, err = svc.Parse(signed)
		assert.ErrorIs(t, err, token.ErrExpiredToken)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := svc.Parse("not-a-token")
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})
}
