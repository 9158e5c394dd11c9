package repository

import (
	"studyshare_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

// ContentSearchParams carries the validated search inputs.
type ContentSearchParams struct {
	Keyword     string
	Kind        model.PayloadKind
	LectureCode string
	Sort        string
	Page        int
	Limit       int
}

const (
	SortUpdatedDesc = "updated_desc"
	SortUpdatedAsc  = "updated_asc"
	SortRatingDesc  = "rating_desc"
	SortRatingAsc   = "rating_asc"
)

// ContentWithRating is a search row: the envelope plus the rating aggregate.
type ContentWithRating struct {
	model.Content
	AvgRating   *float64 `json:"avgRating"`
	RatingCount int64    `json:"ratingCount"`
}

func (r *ContentRepository) Create(content *model.Content) error {
	return r.DB.Create(content).Error
}

func (r *ContentRepository) FindByID(id uint) (*model.Content, error) {
	var content model.Content
	if err := r.DB.First(&content, id).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

// FindByIDUnscoped also returns soft-deleted rows; exam history needs the
// title of sets whose envelope was deleted after the attempt.
func (r *ContentRepository) FindByIDUnscoped(id uint) (*model.Content, error) {
	var content model.Content
	if err := r.DB.Unscoped().First(&content, id).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *ContentRepository) FindByPayload(kind model.PayloadKind, payloadID uint) (*model.Content, error) {
	var content model.Content
	err := r.DB.Where("payload_kind = ? AND payload_id = ?", kind, payloadID).First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *ContentRepository) FindByPayloadUnscoped(kind model.PayloadKind, payloadID uint) (*model.Content, error) {
	var content model.Content
	err := r.DB.Unscoped().Where("payload_kind = ? AND payload_id = ?", kind, payloadID).First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *ContentRepository) Update(content *model.Content) error {
	return r.DB.Save(content).Error
}

func (r *ContentRepository) SoftDelete(id uint) error {
	return r.DB.Delete(&model.Content{}, id).Error
}

// CountActiveByOwner counts non-deleted envelopes for the quota check. Soft
// delete keeps this a plain count: deleted rows fall out of the default scope.
func (r *ContentRepository) CountActiveByOwner(db *gorm.DB, ownerID uint) (int64, error) {
	var count int64
	err := db.Model(&model.Content{}).Where("owner_user_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *ContentRepository) ListOwnedBy(ownerID uint, page, limit int) ([]model.Content, int64, error) {
	var contents []model.Content
	var total int64
	query := r.DB.Model(&model.Content{}).Where("owner_user_id = ?", ownerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("updated_at desc").Offset(offset).Limit(limit).Find(&contents).Error
	return contents, total, err
}

// ratingJoin aggregates ratings per (rateable_id, rateable_type) so the sort
// can use the average without incremental counters.
const ratingJoin = "LEFT JOIN (SELECT rateable_id, rateable_type, AVG(rating) AS avg_rating, COUNT(*) AS rating_count " +
	"FROM ratings WHERE deleted_at IS NULL GROUP BY rateable_id, rateable_type) rt " +
	"ON rt.rateable_id = contents.payload_id AND rt.rateable_type = contents.payload_kind"

func (r *ContentRepository) Search(params ContentSearchParams, visible func(*gorm.DB) *gorm.DB) ([]ContentWithRating, int64, error) {
	base := r.DB.Model(&model.Content{}).Scopes(visible)
	if params.Kind != "" {
		base = base.Where("contents.payload_kind = ?", params.Kind)
	}
	if params.LectureCode != "" {
		base = base.Where("contents.lecture_code = ?", params.LectureCode)
	}
	if params.Keyword != "" {
		like := "%" + params.Keyword + "%"
		base = base.Where("contents.title LIKE ? OR contents.description LIKE ?", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Select("contents.*, rt.avg_rating, rt.rating_count").Joins(ratingJoin)

	switch params.Sort {
	case SortUpdatedAsc:
		query = query.Order("contents.updated_at asc")
	case SortRatingDesc:
		// NULL averages already sort last in descending order
		query = query.Order("rt.avg_rating desc")
	case SortRatingAsc:
		// unrated rows go last, not first
		query = query.Order("rt.avg_rating IS NULL, rt.avg_rating asc")
	default:
		query = query.Order("contents.updated_at desc")
	}

	offset := (params.Page - 1) * params.Limit
	var rows []ContentWithRating
	err := query.Offset(offset).Limit(params.Limit).Find(&rows).Error
	return rows, total, err
}
