package repository

import (
	"studyshare_backend/internal/model"

	"gorm.io/gorm"
)

type ExamAttemptRepository struct {
	DB *gorm.DB
}

func NewExamAttemptRepository(db *gorm.DB) *ExamAttemptRepository {
	return &ExamAttemptRepository{DB: db}
}

// CreateWithAnswers writes the attempt and its answer rows all-or-nothing.
func (r *ExamAttemptRepository) CreateWithAnswers(attempt *model.ExamAttempt, answers []model.UserAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		if len(answers) == 0 {
			return nil
		}
		for i := range answers {
			answers[i].ExamAttemptID = attempt.ID
		}
		return tx.Create(&answers).Error
	})
}

func (r *ExamAttemptRepository) FindByID(id uint) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.DB.Preload("Answers").First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// HistoryByUserAndSet returns the user's attempts across every version of the
// problem set, newest first.
func (r *ExamAttemptRepository) HistoryByUserAndSet(userID, problemSetID uint, limit int) ([]model.ExamAttempt, error) {
	var attempts []model.ExamAttempt
	err := r.DB.
		Joins("JOIN problem_set_versions psv ON psv.id = exam_attempts.problem_set_version_id").
		Where("exam_attempts.user_id = ? AND psv.problem_set_id = ?", userID, problemSetID).
		Order("exam_attempts.completed_at desc").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

// ExistsByUserAndSet reports whether the user has at least one attempt on any
// version of the set. Old versions count; the right to rate never expires.
func (r *ExamAttemptRepository) ExistsByUserAndSet(userID, problemSetID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ExamAttempt{}).
		Joins("JOIN problem_set_versions psv ON psv.id = exam_attempts.problem_set_version_id").
		Where("exam_attempts.user_id = ? AND psv.problem_set_id = ?", userID, problemSetID).
		Count(&count).Error
	return count > 0, err
}
