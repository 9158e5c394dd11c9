package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"studyshare_backend/internal/model"
	"studyshare_backend/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// keep the shared in-memory database alive for the whole test
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.Tenant{},
		&model.User{},
		&model.Lecture{},
		&model.Content{},
		&model.Note{},
		&model.FlashCard{},
		&model.FlashCardItem{},
		&model.ProblemSet{},
		&model.ProblemSetVersion{},
		&model.Question{},
		&model.Choice{},
		&model.ExamAttempt{},
		&model.UserAnswer{},
		&model.Rating{},
	))
	return db
}

type testEnv struct {
	db      *gorm.DB
	keys    *MemoryExamKeyStore
	sets    *ProblemSetService
	content *ContentService
	exam    *ExamService
	rating  *RatingService
	tenant  *TenantService
	lecture *LectureService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)

	userRepo := repository.NewUserRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	lectureRepo := repository.NewLectureRepository(db)
	contentRepo := repository.NewContentRepository(db)
	setRepo := repository.NewProblemSetRepository(db)
	attemptRepo := repository.NewExamAttemptRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	sets := NewProblemSetService(setRepo, db)
	keys := NewMemoryExamKeyStore()

	return &testEnv{
		db:      db,
		keys:    keys,
		sets:    sets,
		content: NewContentService(contentRepo, setRepo, lectureRepo, userRepo, sets, db),
		exam:    NewExamService(contentRepo, setRepo, attemptRepo, sets, keys, db),
		rating:  NewRatingService(ratingRepo, contentRepo, attemptRepo),
		tenant:  NewTenantService(tenantRepo),
		lecture: NewLectureService(lectureRepo),
	}
}

func (e *testEnv) createUser(t *testing.T, email string, tenantID uint, limit int) *model.User {
	t.Helper()
	user := &model.User{
		Name:         "test user",
		Email:        email,
		Password:     "x",
		Role:         model.Member,
		TenantID:     tenantID,
		ContentLimit: limit,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func twoChoiceQuestions(n int) []QuestionInput {
	questions := make([]QuestionInput, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, QuestionInput{
			Text: fmt.Sprintf("question %d", i+1),
			Choices: []ChoiceInput{
				{Text: "right", IsCorrect: true},
				{Text: "wrong"},
			},
		})
	}
	return questions
}

func (e *testEnv) createProblemSet(t *testing.T, owner *model.User, visibility model.Visibility, status model.ContentStatus, questions []QuestionInput) uint {
	t.Helper()
	id, err := e.content.Create(owner.ID, owner.TenantID, false, &CreateContentRequest{
		Meta: ContentMeta{
			Title:      "integrals quiz",
			Status:     status,
			Visibility: visibility,
		},
		Kind:      model.KindProblemSet,
		Questions: questions,
	})
	require.NoError(t, err)
	return id
}

func (e *testEnv) createNote(t *testing.T, owner *model.User, visibility model.Visibility, status model.ContentStatus) uint {
	t.Helper()
	id, err := e.content.Create(owner.ID, owner.TenantID, false, &CreateContentRequest{
		Meta: ContentMeta{
			Title:      "lecture notes",
			Status:     status,
			Visibility: visibility,
		},
		Kind: model.KindNote,
		Note: &NotePayloadInput{Body: "some notes"},
	})
	require.NoError(t, err)
	return id
}
