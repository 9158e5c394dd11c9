package service

import (
	"errors"
	"regexp"

	"studyshare_backend/internal/apperr"
	"studyshare_backend/internal/model"
	"studyshare_backend/internal/repository"

	"gorm.io/gorm"
)

var lectureCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

type LectureService struct {
	LectureRepo *repository.LectureRepository
}

func NewLectureService(lectureRepo *repository.LectureRepository) *LectureService {
	return &LectureService{LectureRepo: lectureRepo}
}

// Create registers a lecture code in the caller's tenant. Codes are unique
// per tenant, not globally.
func (s *LectureService) Create(tenantID uint, code, title string) (*model.Lecture, error) {
	if !lectureCodePattern.MatchString(code) {
		return nil, apperr.Validation("lecture code must be 1-32 letters, digits, hyphens or underscores")
	}
	if title == "" {
		return nil, apperr.Validation("lecture title is required")
	}

	lecture := &model.Lecture{
		TenantID: tenantID,
		Code:     code,
		Title:    title,
	}
	if err := s.LectureRepo.Create(lecture); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("lecture code already exists in this tenant")
		}
		return nil, apperr.Storage(err)
	}
	return lecture, nil
}

func (s *LectureService) ListByTenant(tenantID uint) ([]model.Lecture, error) {
	lectures, err := s.LectureRepo.ListByTenant(tenantID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return lectures, nil
}
