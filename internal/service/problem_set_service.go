package service

import (
	"errors"

	"studyshare_backend/internal/apperr"
	"studyshare_backend/internal/model"
	"studyshare_backend/internal/repository"

	"gorm.io/gorm"
)

// versionCreateRetries bounds the retry loop when two edits of the same set
// race on the (problem_set_id, version) unique index.
const versionCreateRetries = 3

type ChoiceInput struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionInput struct {
	Text        string        `json:"text" binding:"required"`
	Explanation string        `json:"explanation"`
	Choices     []ChoiceInput `json:"choices" binding:"required"`
}

type ProblemSetService struct {
	SetRepo *repository.ProblemSetRepository
	DB      *gorm.DB
}

func NewProblemSetService(setRepo *repository.ProblemSetRepository, db *gorm.DB) *ProblemSetService {
	return &ProblemSetService{SetRepo: setRepo, DB: db}
}

// ValidateQuestions enforces the authoring invariant: at least one question,
// each with two or more choices and exactly one marked correct. This is a
// write-time rule only; historical versions are never re-validated.
func ValidateQuestions(questions []QuestionInput) error {
	if len(questions) == 0 {
		return apperr.Validation("at least one question is required")
	}
	for _, q := range questions {
		if q.Text == "" {
			return apperr.Validation("question text is required")
		}
		if len(q.Choices) < 2 {
			return apperr.Validation("each question needs at least two choices")
		}
		correct := 0
		for _, c := range q.Choices {
			if c.Text == "" {
				return apperr.Validation("choice text is required")
			}
			if c.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return apperr.Validation("each question must have exactly one correct choice")
		}
	}
	return nil
}

// CreateInitialVersion writes version 1 inside the caller's transaction; it
// is only valid immediately after the ProblemSet row itself was created, so
// there is nothing to race with.
func (s *ProblemSetService) CreateInitialVersion(tx *gorm.DB, problemSetID uint, timeLimit *int, questions []QuestionInput) (uint, error) {
	if err := ValidateQuestions(questions); err != nil {
		return 0, err
	}
	return s.writeVersion(tx, problemSetID, 1, timeLimit, questions)
}

// CreateNextVersion appends max(version)+1. The read-max-then-insert is a
// race window between concurrent editors; the unique index turns the losing
// insert into gorm.ErrDuplicatedKey and the loop retries with a fresh max.
func (s *ProblemSetService) CreateNextVersion(problemSetID uint, timeLimit *int, questions []QuestionInput) (uint, error) {
	if err := ValidateQuestions(questions); err != nil {
		return 0, err
	}

	if _, err := s.SetRepo.FindByID(problemSetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("problem set not found")
		}
		return 0, apperr.Storage(err)
	}

	var versionID uint
	for attempt := 0; attempt < versionCreateRetries; attempt++ {
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			max, err := s.SetRepo.MaxVersion(tx, problemSetID)
			if err != nil {
				return err
			}
			id, err := s.writeVersionTx(tx, problemSetID, max+1, timeLimit, questions)
			if err != nil {
				return err
			}
			versionID = id
			return nil
		})
		if err == nil {
			return versionID, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return 0, apperr.Storage(err)
	}
	return 0, apperr.Conflict("problem set was edited concurrently, please retry")
}

func (s *ProblemSetService) writeVersion(tx *gorm.DB, problemSetID uint, version int, timeLimit *int, questions []QuestionInput) (uint, error) {
	id, err := s.writeVersionTx(tx, problemSetID, version, timeLimit, questions)
	if err != nil {
		return 0, apperr.Storage(err)
	}
	return id, nil
}

// writeVersionTx writes the version row plus all questions and choices; the
// surrounding transaction makes the whole snapshot all-or-nothing.
func (s *ProblemSetService) writeVersionTx(tx *gorm.DB, problemSetID uint, version int, timeLimit *int, questions []QuestionInput) (uint, error) {
	v := &model.ProblemSetVersion{
		ProblemSetID:     problemSetID,
		Version:          version,
		TimeLimitMinutes: timeLimit,
	}
	if err := tx.Create(v).Error; err != nil {
		return 0, err
	}

	for idx, q := range questions {
		question := &model.Question{
			VersionID:    v.ID,
			Text:         q.Text,
			Explanation:  q.Explanation,
			DisplayOrder: idx + 1,
		}
		if err := tx.Create(question).Error; err != nil {
			return 0, err
		}
		choices := make([]model.Choice, 0, len(q.Choices))
		for _, c := range q.Choices {
			choices = append(choices, model.Choice{
				QuestionID: question.ID,
				Text:       c.Text,
				IsCorrect:  c.IsCorrect,
			})
		}
		if err := tx.Create(&choices).Error; err != nil {
			return 0, err
		}
	}
	return v.ID, nil
}

// LatestVersion is deterministic: the highest version number. Ties cannot
// occur, the unique index forbids them.
func (s *ProblemSetService) LatestVersion(problemSetID uint) (*model.ProblemSetVersion, error) {
	version, err := s.SetRepo.LatestVersion(problemSetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("problem set has no versions")
		}
		return nil, apperr.Storage(err)
	}
	return version, nil
}

func (s *ProblemSetService) Version(versionID uint) (*model.ProblemSetVersion, error) {
	version, err := s.SetRepo.FindVersionByID(versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("version not found")
		}
		return nil, apperr.Storage(err)
	}
	return version, nil
}

func (s *ProblemSetService) ListVersions(problemSetID uint) ([]model.ProblemSetVersion, error) {
	versions, err := s.SetRepo.ListVersions(problemSetID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return versions, nil
}

// QuestionsOf returns the version's questions ordered by display_order with
// choices preloaded.
func (s *ProblemSetService) QuestionsOf(versionID uint) ([]model.Question, error) {
	questions, err := s.SetRepo.QuestionsOfVersion(versionID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return questions, nil
}
