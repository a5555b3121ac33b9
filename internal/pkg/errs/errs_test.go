//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"routine-checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	sentinel := errs.New("routine not found")

	t.Run("sees sentinels attached with Mark", func(t *testing.T) {
		err := errs.Mark(errs.New("no active assignment for affiliate"), sentinel)
		assert.True(t, errs.Is(err, sentinel))
	})

	t.Run("sees marks through wrap chains", func(t *testing.T) {
		err := errs.Wrap(errs.Mark(errs.New("no rows"), sentinel), "lookup failed")
		assert.True(t, errs.Is(err, sentinel))
	})

	t.Run("matches plain wrap chains like the standard library", func(t *testing.T) {
		base := errors.New("base")
		assert.True(t, errs.Is(errs.Wrap(base, "ctx"), base))
	})

	t.Run("does not match unrelated errors", func(t *testing.T) {
		assert.False(t, errs.Is(errs.New("other"), sentinel))
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", errs.Truncate(nil, 10))
	assert.Equal(t, "abc", errs.Truncate(errs.New("abc"), 10))
	assert.Equal(t, "abcde", errs.Truncate(errs.New("abcdefgh"), 5))
}
