package service

import (
	"context"
	"testing"

	"studyshare_backend/internal/apperr"
	"studyshare_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setIDOf(t *testing.T, env *testEnv, contentID uint) uint {
	t.Helper()
	var content model.Content
	require.NoError(t, env.db.First(&content, contentID).Error)
	return content.PayloadID
}

// correctAnswers reads the authored choices straight from the database; the
// start response deliberately never exposes them.
func correctAnswers(t *testing.T, env *testEnv, versionID uint) map[uint]uint {
	t.Helper()
	questions, err := env.sets.QuestionsOf(versionID)
	require.NoError(t, err)
	answers := make(map[uint]uint, len(questions))
	for _, q := range questions {
		for _, c := range q.Choices {
			if c.IsCorrect {
				answers[q.ID] = c.ID
			}
		}
	}
	return answers
}

func TestExamStartHidesCorrectness(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@uni-a.edu", 10, 100)
	peer := env.createUser(t, "peer@uni-a.edu", 10, 100)
	contentID := env.createProblemSet(t, owner, model.VisibilityDomain, model.StatusPublished, twoChoiceQuestions(3))

	result, err := env.exam.Start(ctx, contentID, peer.ID, peer.TenantID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Version)
	require.Len(t, result.Questions, 3)
	for _, q := range result.Questions {
		assert.Len(t, q.Choices, 2)
	}

	key, err := env.keys.Get(ctx, peer.ID)
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Len(t, key.Answers, 3)
}

func TestExamScoring(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@uni-a.edu", 10, 100)
	peer := env.createUser(t, "peer@uni-a.edu", 10, 100)
	contentID := env.createProblemSet(t, owner, model.VisibilityDomain, model.StatusPublished, twoChoiceQuestions(3))

	started, err := env.exam.Start(ctx, contentID, peer.ID, peer.TenantID)
	require.NoError(t, err)
	correct := correctAnswers(t, env, started.VersionID)
	require.Len(t, correct, 3)

	// answer two questions: one right, one wrong; leave the third blank
	submitted := make(map[uint]uint)
	i := 0
	for questionID, choiceID := range correct {
		switch i {
		case 0:
			submitted[questionID] = choiceID
		case 1:
			submitted[questionID] = choiceID + 1
		}
		i++
	}

	attempt, err := env.exam.Submit(ctx, contentID, peer.ID, submitted)
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.Score)
	assert.Equal(t, 3, attempt.TotalQuestions)
	assert.Equal(t, started.VersionID, attempt.ProblemSetVersionID)
	assert.False(t, attempt.CompletedAt.IsZero())

	stored, err := env.exam.Score(attempt.ID, peer.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Attempt.Answers, 2)
	assert.Equal(t, "integrals quiz", stored.ProblemSetTitle)

	t.Run("the key is spent after scoring", func(t *testing.T) {
		_, err := env.exam.Submit(ctx, contentID, peer.ID, submitted)
		assert.Equal(t, apperr.KindStaleSession, apperr.KindOf(err))
	})

	t.Run("scores are private to the attempter", func(t *testing.T) {
		_, err := env.exam.Score(attempt.ID, owner.ID)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestSubmitWithoutStart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@uni-a.edu", 10, 100)
	peer := env.createUser(t, "peer@uni-a.edu", 10, 100)
	contentID := env.createProblemSet(t, owner, model.VisibilityDomain, model.StatusPublished, twoChoiceQuestions(2))

	_, err := env.exam.Submit(ctx, contentID, peer.ID, map[uint]uint{1: 1})
	assert.Equal(t, apperr.KindStaleSession, apperr.KindOf(err))
}

func TestSubmitAfterConcurrentEdit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@uni-a.edu", 10, 100)
	peer := env.createUser(t, "peer@uni-a.edu", 10, 100)
	contentID := env.createProblemSet(t, owner, model.VisibilityDomain, model.StatusPublished, twoChoiceQuestions(3))
	setID := setIDOf(t, env, contentID)

	started, err := env.exam.Start(ctx, contentID, peer.ID, peer.TenantID)
	require.NoError(t, err)
	correct := correctAnswers(t, env, started.VersionID)

	// the owner replaces the set mid-attempt with a differently sized version
	_, err = env.sets.CreateNextVersion(setID, nil, twoChoiceQuestions(5))
	require.NoError(t, err)

	_, err = env.exam.Submit(ctx, contentID, peer.ID, correct)
	assert.Equal(t, apperr.KindStaleSession, apperr.KindOf(err))

	t.Run("no attempt row is written for a stale submission", func(t *testing.T) {
		var count int64
		require.NoError(t, env.db.Model(&model.ExamAttempt{}).Where("user_id = ?", peer.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("the stale key is discarded", func(t *testing.T) {
		key, err := env.keys.Get(ctx, peer.ID)
		require.NoError(t, err)
		assert.Nil(t, key)
	})
}

func TestTooManyAnswersRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@uni-a.edu", 10, 100)
	peer := env.createUser(t, "peer@uni-a.edu", 10, 100)
	contentID := env.createProblemSet(t, owner, model.VisibilityDomain, model.StatusPublished, twoChoiceQuestions(2))

	_, err := env.exam.Start(ctx, contentID, peer.ID, peer.TenantID)
	require.NoError(t, err)

	_, err = env.exam.Submit(ctx, contentID, peer.ID, map[uint]uint{1: 1, 2: 1, 3: 1})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestExamHistoryAcrossVersions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@uni-a.edu", 10, 100)
	peer := env.createUser(t, "peer@uni-a.edu", 10, 100)
	contentID := env.createProblemSet(t, owner, model.VisibilityDomain, model.StatusPublished, twoChoiceQuestions(2))
	setID := setIDOf(t, env, contentID)

	attemptOnLatest := func() {
		started, err := env.exam.Start(ctx, contentID, peer.ID, peer.TenantID)
		require.NoError(t, err)
		_, err = env.exam.Submit(ctx, contentID, peer.ID, correctAnswers(t, env, started.VersionID))
		require.NoError(t, err)
	}

	attemptOnLatest()
	_, err := env.sets.CreateNextVersion(setID, nil, twoChoiceQuestions(3))
	require.NoError(t, err)
	attemptOnLatest()

	results, err := env.exam.History(contentID, peer.ID, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	t.Run("history survives envelope deletion", func(t *testing.T) {
		require.NoError(t, env.content.SoftDelete(contentID, owner.ID))
		results, err := env.exam.History(contentID, peer.ID, 10)
		require.NoError(t, err)
		assert.Len(t, results, 2)
		assert.Equal(t, "integrals quiz", results[0].ProblemSetTitle)
	})
}

func TestStartRespectsVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@uni-a.edu", 10, 100)
	stranger := env.createUser(t, "other@uni-b.edu", 20, 100)
	contentID := env.createProblemSet(t, owner, model.VisibilityDomain, model.StatusPublished, twoChoiceQuestions(2))

	_, err := env.exam.Start(ctx, contentID, stranger.ID, stranger.TenantID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestStartOnNoteRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner@uni-a.edu", 10, 100)
	noteID := env.createNote(t, owner, model.VisibilityDomain, model.StatusPublished)

	_, err := env.exam.Start(ctx, noteID, owner.ID, owner.TenantID)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
