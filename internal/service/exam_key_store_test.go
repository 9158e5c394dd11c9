package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryExamKeyStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryExamKeyStore()

	t.Run("get before put is a miss, not an error", func(t *testing.T) {
		key, err := store.Get(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, key)
	})

	t.Run("put overwrites, last start wins", func(t *testing.T) {
		first := &ExamKey{ProblemSetID: 1, VersionID: 10, Answers: map[uint]uint{1: 2}, IssuedAt: time.Now()}
		second := &ExamKey{ProblemSetID: 2, VersionID: 20, Answers: map[uint]uint{3: 4}, IssuedAt: time.Now()}

		require.NoError(t, store.Put(ctx, 1, first))
		require.NoError(t, store.Put(ctx, 1, second))

		key, err := store.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(2), key.ProblemSetID)
	})

	t.Run("keys are per principal", func(t *testing.T) {
		key, err := store.Get(ctx, 2)
		require.NoError(t, err)
		assert.Nil(t, key)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, 1))
		require.NoError(t, store.Delete(ctx, 1))
		key, err := store.Get(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, key)
	})
}
