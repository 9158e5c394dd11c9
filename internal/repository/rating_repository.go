package repository

import (
	"errors"

	"studyshare_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

// Upsert leans on the composite unique index, so concurrent resubmissions
// cannot duplicate a row.
func (r *RatingRepository) Upsert(rating *model.Rating) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "rateable_id"}, {Name: "rateable_type"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(rating).Error
}

type RatingAggregate struct {
	Avg   float64 `json:"avg"`
	Count int64   `json:"count"`
}

// Aggregate recomputes from scratch; no incremental counters to drift.
func (r *RatingRepository) Aggregate(rateableID uint, rateableType model.PayloadKind) (*RatingAggregate, error) {
	var agg RatingAggregate
	err := r.DB.Model(&model.Rating{}).
		Where("rateable_id = ? AND rateable_type = ?", rateableID, rateableType).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *RatingRepository) FindMine(userID, rateableID uint, rateableType model.PayloadKind) (*model.Rating, error) {
	var rating model.Rating
	err := r.DB.Where("user_id = ? AND rateable_id = ? AND rateable_type = ?",
		userID, rateableID, rateableType).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}
