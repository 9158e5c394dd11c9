package service

import (
	"testing"

	"studyshare_backend/internal/apperr"
	"studyshare_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuestions(t *testing.T) {
	valid := twoChoiceQuestions(1)

	t.Run("accepts a well formed set", func(t *testing.T) {
		assert.NoError(t, ValidateQuestions(valid))
	})

	t.Run("rejects an empty set", func(t *testing.T) {
		err := ValidateQuestions(nil)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("rejects a single-choice question", func(t *testing.T) {
		err := ValidateQuestions([]QuestionInput{{
			Text:    "q",
			Choices: []ChoiceInput{{Text: "only", IsCorrect: true}},
		}})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("rejects zero correct choices", func(t *testing.T) {
		err := ValidateQuestions([]QuestionInput{{
			Text:    "q",
			Choices: []ChoiceInput{{Text: "a"}, {Text: "b"}},
		}})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("rejects two correct choices", func(t *testing.T) {
		err := ValidateQuestions([]QuestionInput{{
			Text:    "q",
			Choices: []ChoiceInput{{Text: "a", IsCorrect: true}, {Text: "b", IsCorrect: true}},
		}})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestVersionNumbering(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@uni-a.edu", 10, 100)
	contentID := env.createProblemSet(t, owner, model.VisibilityPrivate, model.StatusPublished, twoChoiceQuestions(2))

	var content model.Content
	require.NoError(t, env.db.First(&content, contentID).Error)
	setID := content.PayloadID

	v1, err := env.sets.LatestVersion(setID)
	require.NoError(t, err)
	assert.Equal(t, 1, v1.Version)

	for want := 2; want <= 4; want++ {
		_, err := env.sets.CreateNextVersion(setID, nil, twoChoiceQuestions(want))
		require.NoError(t, err)
		latest, err := env.sets.LatestVersion(setID)
		require.NoError(t, err)
		assert.Equal(t, want, latest.Version)
	}

	versions, err := env.sets.ListVersions(setID)
	require.NoError(t, err)
	require.Len(t, versions, 4)
	for i, v := range versions {
		assert.Equal(t, i+1, v.Version)
	}
}

func TestOldVersionsAreImmutable(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@uni-a.edu", 10, 100)
	contentID := env.createProblemSet(t, owner, model.VisibilityPrivate, model.StatusPublished, twoChoiceQuestions(2))

	var content model.Content
	require.NoError(t, env.db.First(&content, contentID).Error)
	setID := content.PayloadID

	v1, err := env.sets.LatestVersion(setID)
	require.NoError(t, err)
	before, err := env.sets.QuestionsOf(v1.ID)
	require.NoError(t, err)
	require.Len(t, before, 2)

	_, err = env.sets.CreateNextVersion(setID, nil, twoChoiceQuestions(5))
	require.NoError(t, err)

	after, err := env.sets.QuestionsOf(v1.ID)
	require.NoError(t, err)
	require.Len(t, after, 2)
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].Text, after[i].Text)
	}
}

func TestCreateNextVersionMissingSet(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.sets.CreateNextVersion(9999, nil, twoChoiceQuestions(1))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
