package service

import (
	"errors"

	"studyshare_backend/internal/apperr"
	"studyshare_backend/internal/model"
	"studyshare_backend/internal/repository"

	"gorm.io/gorm"
)

type RatingService struct {
	RatingRepo  *repository.RatingRepository
	ContentRepo *repository.ContentRepository
	AttemptRepo *repository.ExamAttemptRepository
}

func NewRatingService(ratingRepo *repository.RatingRepository, contentRepo *repository.ContentRepository, attemptRepo *repository.ExamAttemptRepository) *RatingService {
	return &RatingService{
		RatingRepo:  ratingRepo,
		ContentRepo: contentRepo,
		AttemptRepo: attemptRepo,
	}
}

type RatingResult struct {
	Avg   float64 `json:"avg"`
	Count int64   `json:"count"`
	Mine  int     `json:"mine"`
}

// CanRate is unconditional for notes and flash cards. Problem sets require
// proof-of-attempt on any version, not just the latest: attempting an old
// version keeps the right to rate after the set evolves.
func (s *RatingService) CanRate(userID, rateableID uint, rateableType model.PayloadKind) (bool, error) {
	if rateableType != model.KindProblemSet {
		return true, nil
	}
	ok, err := s.AttemptRepo.ExistsByUserAndSet(userID, rateableID)
	if err != nil {
		return false, apperr.Storage(err)
	}
	return ok, nil
}

// Rate upserts the caller's rating of a content item and returns the
// recomputed aggregate.
func (s *RatingService) Rate(userID, contentID uint, value int) (*RatingResult, error) {
	if value < 1 || value > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	content, err := s.ContentRepo.FindByID(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("content not found")
		}
		return nil, apperr.Storage(err)
	}

	ok, err := s.CanRate(userID, content.PayloadID, content.PayloadKind)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Authorization("take the exam before rating this problem set")
	}

	rating := &model.Rating{
		UserID:       userID,
		RateableID:   content.PayloadID,
		RateableType: content.PayloadKind,
		Rating:       value,
	}
	if err := s.RatingRepo.Upsert(rating); err != nil {
		return nil, apperr.Storage(err)
	}

	return s.Summary(userID, contentID)
}

// Summary recomputes the aggregate from scratch plus the caller's own rating.
func (s *RatingService) Summary(userID, contentID uint) (*RatingResult, error) {
	content, err := s.ContentRepo.FindByID(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("content not found")
		}
		return nil, apperr.Storage(err)
	}

	agg, err := s.RatingRepo.Aggregate(content.PayloadID, content.PayloadKind)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	result := &RatingResult{Avg: agg.Avg, Count: agg.Count}
	mine, err := s.RatingRepo.FindMine(userID, content.PayloadID, content.PayloadKind)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if mine != nil {
		result.Mine = mine.Rating
	}
	return result, nil
}
