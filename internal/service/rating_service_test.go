package service

import (
	"context"
	"testing"

	"studyshare_backend/internal/apperr"
	"studyshare_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingBounds(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@uni-a.edu", 10, 100)
	peer := env.createUser(t, "peer@uni-a.edu", 10, 100)
	noteID := env.createNote(t, owner, model.VisibilityDomain, model.StatusPublished)

	for _, value := range []int{0, 6, -1} {
		_, err := env.rating.Rate(peer.ID, noteID, value)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "value %d", value)
	}
}

func TestRatingUpsert(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@uni-a.edu", 10, 100)
	peer := env.createUser(t, "peer@uni-a.edu", 10, 100)
	noteID := env.createNote(t, owner, model.VisibilityDomain, model.StatusPublished)

	_, err := env.rating.Rate(peer.ID, noteID, 3)
	require.NoError(t, err)

	result, err := env.rating.Rate(peer.ID, noteID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Count)
	assert.InDelta(t, 5.0, result.Avg, 0.001)
	assert.Equal(t, 5, result.Mine)

	var rows int64
	require.NoError(t, env.db.Model(&model.Rating{}).Where("user_id = ?", peer.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestRatingAggregate(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@uni-a.edu", 10, 100)
	a := env.createUser(t, "a@uni-a.edu", 10, 100)
	b := env.createUser(t, "b@uni-a.edu", 10, 100)
	noteID := env.createNote(t, owner, model.VisibilityDomain, model.StatusPublished)

	_, err := env.rating.Rate(a.ID, noteID, 2)
	require.NoError(t, err)
	_, err = env.rating.Rate(b.ID, noteID, 4)
	require.NoError(t, err)

	result, err := env.rating.Summary(owner.ID, noteID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Count)
	assert.InDelta(t, 3.0, result.Avg, 0.001)
	assert.Zero(t, result.Mine)
}

func TestProblemSetRatingGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@uni-a.edu", 10, 100)
	peer := env.createUser(t, "peer@uni-a.edu", 10, 100)
	contentID := env.createProblemSet(t, owner, model.VisibilityDomain, model.StatusPublished, twoChoiceQuestions(2))
	setID := setIDOf(t, env, contentID)

	t.Run("no attempt, no rating", func(t *testing.T) {
		_, err := env.rating.Rate(peer.ID, contentID, 4)
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	})

	started, err := env.exam.Start(ctx, contentID, peer.ID, peer.TenantID)
	require.NoError(t, err)
	_, err = env.exam.Submit(ctx, contentID, peer.ID, correctAnswers(t, env, started.VersionID))
	require.NoError(t, err)

	t.Run("an attempt unlocks rating", func(t *testing.T) {
		result, err := env.rating.Rate(peer.ID, contentID, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, result.Mine)
	})

	t.Run("an attempt on an old version still counts", func(t *testing.T) {
		_, err := env.sets.CreateNextVersion(setID, nil, twoChoiceQuestions(3))
		require.NoError(t, err)

		result, err := env.rating.Rate(peer.ID, contentID, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, result.Mine)
		assert.Equal(t, int64(1), result.Count)
	})
}

func TestNotesAndFlashCardsRateFreely(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@uni-a.edu", 10, 100)
	peer := env.createUser(t, "peer@uni-a.edu", 10, 100)

	cardID, err := env.content.Create(owner.ID, owner.TenantID, false, &CreateContentRequest{
		Meta:  ContentMeta{Title: "derivatives deck", Status: model.StatusPublished, Visibility: model.VisibilityDomain},
		Kind:  model.KindFlashCard,
		Cards: []FlashCardItemInput{{Front: "d/dx x^2", Back: "2x"}},
	})
	require.NoError(t, err)

	result, err := env.rating.Rate(peer.ID, cardID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Mine)
}
