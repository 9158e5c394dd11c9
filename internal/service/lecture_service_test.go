package service

import (
	"testing"

	"studyshare_backend/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLectureCodes(t *testing.T) {
	env := newTestEnv(t)

	t.Run("creates and lists per tenant", func(t *testing.T) {
		_, err := env.lecture.Create(10, "MATH-101", "Calculus I")
		require.NoError(t, err)
		_, err = env.lecture.Create(20, "MATH-101", "Calculus I")
		require.NoError(t, err)

		lectures, err := env.lecture.ListByTenant(10)
		require.NoError(t, err)
		require.Len(t, lectures, 1)
		assert.Equal(t, "MATH-101", lectures[0].Code)
	})

	t.Run("duplicate code within a tenant conflicts", func(t *testing.T) {
		_, err := env.lecture.Create(10, "MATH-101", "Calculus I again")
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		for _, code := range []string{"", "has space", "way-too-long-code-that-exceeds-the-thirty-two-limit", "emoji🙂"} {
			_, err := env.lecture.Create(10, code, "x")
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "code %q", code)
		}
	})
}
