package repository

import (
	"studyshare_backend/internal/model"

	"gorm.io/gorm"
)

type ProblemSetRepository struct {
	DB *gorm.DB
}

func NewProblemSetRepository(db *gorm.DB) *ProblemSetRepository {
	return &ProblemSetRepository{DB: db}
}

func (r *ProblemSetRepository) Create(set *model.ProblemSet) error {
	return r.DB.Create(set).Error
}

func (r *ProblemSetRepository) FindByID(id uint) (*model.ProblemSet, error) {
	var set model.ProblemSet
	if err := r.DB.First(&set, id).Error; err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *ProblemSetRepository) MaxVersion(db *gorm.DB, problemSetID uint) (int, error) {
	var max int
	err := db.Model(&model.ProblemSetVersion{}).
		Where("problem_set_id = ?", problemSetID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&max).Error
	return max, err
}

func (r *ProblemSetRepository) LatestVersion(problemSetID uint) (*model.ProblemSetVersion, error) {
	var version model.ProblemSetVersion
	err := r.DB.Where("problem_set_id = ?", problemSetID).
		Order("version desc").First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *ProblemSetRepository) FindVersionByID(id uint) (*model.ProblemSetVersion, error) {
	var version model.ProblemSetVersion
	if err := r.DB.First(&version, id).Error; err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *ProblemSetRepository) ListVersions(problemSetID uint) ([]model.ProblemSetVersion, error) {
	var versions []model.ProblemSetVersion
	err := r.DB.Where("problem_set_id = ?", problemSetID).
		Order("version asc").Find(&versions).Error
	return versions, err
}

func (r *ProblemSetRepository) QuestionsOfVersion(versionID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("version_id = ?", versionID).
		Order("display_order asc").
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id asc")
		}).
		Find(&questions).Error
	return questions, err
}

func (r *ProblemSetRepository) CountQuestions(db *gorm.DB, versionID uint) (int64, error) {
	var count int64
	err := db.Model(&model.Question{}).Where("version_id = ?", versionID).Count(&count).Error
	return count, err
}
