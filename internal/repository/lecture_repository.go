package repository

import (
	"studyshare_backend/internal/model"

	"gorm.io/gorm"
)

type LectureRepository struct {
	DB *gorm.DB
}

func NewLectureRepository(db *gorm.DB) *LectureRepository {
	return &LectureRepository{DB: db}
}

func (r *LectureRepository) Create(lecture *model.Lecture) error {
	return r.DB.Create(lecture).Error
}

func (r *LectureRepository) FindByCode(tenantID uint, code string) (*model.Lecture, error) {
	var lecture model.Lecture
	err := r.DB.Where("tenant_id = ? AND code = ?", tenantID, code).First(&lecture).Error
	if err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (r *LectureRepository) ListByTenant(tenantID uint) ([]model.Lecture, error) {
	var lectures []model.Lecture
	err := r.DB.Where("tenant_id = ?", tenantID).Order("code asc").Find(&lectures).Error
	return lectures, err
}
