package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"studyshare_backend/internal/apperr"
	"studyshare_backend/internal/model"
	"studyshare_backend/internal/repository"

	"gorm.io/gorm"
)

type ExamService struct {
	ContentRepo *repository.ContentRepository
	SetRepo     *repository.ProblemSetRepository
	AttemptRepo *repository.ExamAttemptRepository
	SetService  *ProblemSetService
	Keys        ExamKeyStore
	DB          *gorm.DB
}

func NewExamService(
	contentRepo *repository.ContentRepository,
	setRepo *repository.ProblemSetRepository,
	attemptRepo *repository.ExamAttemptRepository,
	setService *ProblemSetService,
	keys ExamKeyStore,
	db *gorm.DB,
) *ExamService {
	return &ExamService{
		ContentRepo: contentRepo,
		SetRepo:     setRepo,
		AttemptRepo: attemptRepo,
		SetService:  setService,
		Keys:        keys,
		DB:          db,
	}
}

// ChoiceView and QuestionView strip correctness flags and explanations; the
// client only ever sees text.
type ChoiceView struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type QuestionView struct {
	ID           uint         `json:"id"`
	Text         string       `json:"text"`
	DisplayOrder int          `json:"displayOrder"`
	Choices      []ChoiceView `json:"choices"`
}

type ExamStartResult struct {
	ContentID        uint           `json:"contentId"`
	VersionID        uint           `json:"versionId"`
	Version          int            `json:"version"`
	TimeLimitMinutes *int           `json:"timeLimitMinutes,omitempty"`
	Questions        []QuestionView `json:"questions"`
}

type AttemptResult struct {
	Attempt         *model.ExamAttempt `json:"attempt"`
	ProblemSetTitle string             `json:"problemSetTitle"`
}

func (s *ExamService) resolveProblemSet(contentID, viewerUserID, viewerTenantID uint) (*model.Content, error) {
	content, err := s.ContentRepo.FindByID(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("content not found")
		}
		return nil, apperr.Storage(err)
	}
	if content.PayloadKind != model.KindProblemSet {
		return nil, apperr.Validation("content is not a problem set")
	}
	if !CanView(content, viewerUserID, viewerTenantID) {
		return nil, apperr.NotFound("content not found")
	}
	return content, nil
}

// Start issues the answer key for the latest version and caches it against
// the caller's session, overwriting any prior un-submitted key. The response
// never carries the key.
func (s *ExamService) Start(ctx context.Context, contentID, viewerUserID, viewerTenantID uint) (*ExamStartResult, error) {
	content, err := s.resolveProblemSet(contentID, viewerUserID, viewerTenantID)
	if err != nil {
		return nil, err
	}

	version, err := s.SetService.LatestVersion(content.PayloadID)
	if err != nil {
		return nil, err
	}
	questions, err := s.SetService.QuestionsOf(version.ID)
	if err != nil {
		return nil, err
	}

	key := &ExamKey{
		ProblemSetID: content.PayloadID,
		VersionID:    version.ID,
		Answers:      buildAnswerKey(questions),
		IssuedAt:     time.Now(),
	}
	if err := s.Keys.Put(ctx, viewerUserID, key); err != nil {
		return nil, apperr.Storage(err)
	}

	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		view := QuestionView{
			ID:           q.ID,
			Text:         q.Text,
			DisplayOrder: q.DisplayOrder,
			Choices:      make([]ChoiceView, 0, len(q.Choices)),
		}
		for _, c := range q.Choices {
			view.Choices = append(view.Choices, ChoiceView{ID: c.ID, Text: c.Text})
		}
		views = append(views, view)
	}

	return &ExamStartResult{
		ContentID:        content.ID,
		VersionID:        version.ID,
		Version:          version.Version,
		TimeLimitMinutes: version.TimeLimitMinutes,
		Questions:        views,
	}, nil
}

// buildAnswerKey keeps one entry per question so the key's cardinality always
// equals the version's question count. A question authored with no correct
// choice maps to 0: unanswerable, never an error.
func buildAnswerKey(questions []model.Question) map[uint]uint {
	key := make(map[uint]uint, len(questions))
	for _, q := range questions {
		var correct uint
		for _, c := range q.Choices {
			if c.IsCorrect {
				correct = c.ID
				break
			}
		}
		key[q.ID] = correct
	}
	return key
}

// Submit validates the cached key against the live latest version and scores
// the submission. Validation order is fixed: key exists, then submitted count
// does not exceed the live question count, then key cardinality matches the
// live count. The live count is fetched exactly once per call so the three
// checks see a single consistent snapshot.
func (s *ExamService) Submit(ctx context.Context, contentID, userID uint, submitted map[uint]uint) (*model.ExamAttempt, error) {
	content, err := s.ContentRepo.FindByID(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("content not found")
		}
		return nil, apperr.Storage(err)
	}
	if content.PayloadKind != model.KindProblemSet {
		return nil, apperr.Validation("content is not a problem set")
	}

	key, err := s.Keys.Get(ctx, userID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if key == nil || key.ProblemSetID != content.PayloadID {
		return nil, apperr.StaleSession("no exam in progress, start the exam first")
	}

	liveVersion, err := s.SetService.LatestVersion(content.PayloadID)
	if err != nil {
		return nil, err
	}
	liveCount64, err := s.SetRepo.CountQuestions(s.DB, liveVersion.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	liveCount := int(liveCount64)

	if len(submitted) > liveCount {
		return nil, apperr.Validation("more answers than questions")
	}
	if len(key.Answers) != liveCount {
		// the set was edited mid-attempt; the key is useless now
		s.Keys.Delete(ctx, userID)
		return nil, apperr.StaleSession("the problem set changed, restart the exam")
	}

	score := 0
	for questionID, correctChoiceID := range key.Answers {
		if correctChoiceID != 0 && submitted[questionID] == correctChoiceID {
			score++
		}
	}

	answers := make([]model.UserAnswer, 0, len(submitted))
	for questionID, choiceID := range submitted {
		if _, known := key.Answers[questionID]; !known {
			continue
		}
		answers = append(answers, model.UserAnswer{
			QuestionID:       questionID,
			SelectedChoiceID: choiceID,
		})
	}
	sort.Slice(answers, func(i, j int) bool {
		return answers[i].QuestionID < answers[j].QuestionID
	})

	attempt := &model.ExamAttempt{
		UserID:              userID,
		ProblemSetVersionID: key.VersionID,
		Score:               score,
		TotalQuestions:      liveCount,
		CompletedAt:         time.Now(),
	}
	writeErr := s.AttemptRepo.CreateWithAnswers(attempt, answers)

	// scoring is done: the key is spent either way
	s.Keys.Delete(ctx, userID)

	if writeErr != nil {
		return nil, apperr.Storage(writeErr)
	}
	return attempt, nil
}

// Score returns one attempt, scoped to its owner.
func (s *ExamService) Score(attemptID, viewerUserID uint) (*AttemptResult, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("attempt not found")
		}
		return nil, apperr.Storage(err)
	}
	if attempt.UserID != viewerUserID {
		return nil, apperr.NotFound("attempt not found")
	}

	title, err := s.titleOfVersion(attempt.ProblemSetVersionID)
	if err != nil {
		return nil, err
	}
	return &AttemptResult{Attempt: attempt, ProblemSetTitle: title}, nil
}

// History lists the caller's attempts across all versions of the set.
func (s *ExamService) History(contentID, userID uint, limit int) ([]AttemptResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	content, err := s.ContentRepo.FindByIDUnscoped(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("content not found")
		}
		return nil, apperr.Storage(err)
	}
	if content.PayloadKind != model.KindProblemSet {
		return nil, apperr.Validation("content is not a problem set")
	}

	attempts, err := s.AttemptRepo.HistoryByUserAndSet(userID, content.PayloadID, limit)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	results := make([]AttemptResult, 0, len(attempts))
	for i := range attempts {
		results = append(results, AttemptResult{
			Attempt:         &attempts[i],
			ProblemSetTitle: content.Title,
		})
	}
	return results, nil
}

// titleOfVersion resolves version -> set -> envelope title. The envelope may
// be soft-deleted; historical attempts must still display.
func (s *ExamService) titleOfVersion(versionID uint) (string, error) {
	version, err := s.SetRepo.FindVersionByID(versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", apperr.Storage(err)
	}
	content, err := s.ContentRepo.FindByPayloadUnscoped(model.KindProblemSet, version.ProblemSetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", apperr.Storage(err)
	}
	return content.Title, nil
}
