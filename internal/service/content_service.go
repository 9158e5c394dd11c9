package service

import (
	"errors"

	"studyshare_backend/internal/apperr"
	"studyshare_backend/internal/model"
	"studyshare_backend/internal/repository"

	"gorm.io/gorm"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
	maxBodyBytes         = 64 * 1024
)

type ContentService struct {
	ContentRepo *repository.ContentRepository
	SetRepo     *repository.ProblemSetRepository
	LectureRepo *repository.LectureRepository
	UserRepo    *repository.UserRepository
	SetService  *ProblemSetService
	DB          *gorm.DB
}

func NewContentService(
	contentRepo *repository.ContentRepository,
	setRepo *repository.ProblemSetRepository,
	lectureRepo *repository.LectureRepository,
	userRepo *repository.UserRepository,
	setService *ProblemSetService,
	db *gorm.DB,
) *ContentService {
	return &ContentService{
		ContentRepo: contentRepo,
		SetRepo:     setRepo,
		LectureRepo: lectureRepo,
		UserRepo:    userRepo,
		SetService:  setService,
		DB:          db,
	}
}

type ContentMeta struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	LectureCode string              `json:"lectureCode"`
	Status      model.ContentStatus `json:"status"`
	Visibility  model.Visibility    `json:"visibility"`
}

type FlashCardItemInput struct {
	Front string `json:"front" binding:"required"`
	Back  string `json:"back" binding:"required"`
}

type NotePayloadInput struct {
	Body          string `json:"body"`
	AttachmentURL string `json:"attachmentUrl"`
}

type CreateContentRequest struct {
	Meta             ContentMeta          `json:"meta"`
	Kind             model.PayloadKind    `json:"kind"`
	Note             *NotePayloadInput    `json:"note,omitempty"`
	Cards            []FlashCardItemInput `json:"cards,omitempty"`
	TimeLimitMinutes *int                 `json:"timeLimitMinutes,omitempty"`
	Questions        []QuestionInput      `json:"questions,omitempty"`
}

type UpdateContentRequest struct {
	Meta             ContentMeta     `json:"meta"`
	TimeLimitMinutes *int            `json:"timeLimitMinutes,omitempty"`
	Questions        []QuestionInput `json:"questions,omitempty"`
}

// ContentDetail is the read projection for a single item. Questions are only
// populated for the owner; everyone else goes through the exam flow where
// correctness flags are stripped.
type ContentDetail struct {
	Content       *model.Content           `json:"content"`
	LectureTitle  string                   `json:"lectureTitle,omitempty"`
	Note          *model.Note              `json:"note,omitempty"`
	Items         []model.FlashCardItem    `json:"items,omitempty"`
	LatestVersion *model.ProblemSetVersion `json:"latestVersion,omitempty"`
	QuestionCount int                      `json:"questionCount,omitempty"`
	Questions     []model.Question         `json:"questions,omitempty"`
}

func validateMeta(meta *ContentMeta) error {
	if meta.Title == "" || len(meta.Title) > maxTitleLength {
		return apperr.Validation("title is required and must not exceed 200 characters")
	}
	if len(meta.Description) > maxDescriptionLength {
		return apperr.Validation("description must not exceed 2000 characters")
	}
	if meta.Status == "" {
		meta.Status = model.StatusDraft
	}
	if !meta.Status.Valid() {
		return apperr.Validation("status must be draft or published")
	}
	if meta.Visibility == "" {
		meta.Visibility = model.VisibilityPrivate
	}
	if !meta.Visibility.Valid() {
		return apperr.Validation("visibility must be private, domain or public")
	}
	return nil
}

// Create writes the payload row, the envelope and (for problem sets) the
// initial version in one transaction. The quota count and the insert live in
// the same transaction so two concurrent creations by the same user cannot
// both slip under the limit.
func (s *ContentService) Create(ownerUserID, ownerTenantID uint, isAdmin bool, req *CreateContentRequest) (uint, error) {
	if err := validateMeta(&req.Meta); err != nil {
		return 0, err
	}
	if !req.Kind.Valid() {
		return 0, apperr.Validation("kind must be note, flash_card or problem_set")
	}
	if req.Meta.Visibility == model.VisibilityPublic && !isAdmin {
		return 0, apperr.Authorization("public visibility requires an administrator")
	}

	switch req.Kind {
	case model.KindNote:
		if req.Note == nil || len(req.Note.Body) > maxBodyBytes {
			return 0, apperr.Validation("note body is required and must not exceed 64KiB")
		}
	case model.KindFlashCard:
		if len(req.Cards) == 0 {
			return 0, apperr.Validation("at least one card is required")
		}
	case model.KindProblemSet:
		if err := ValidateQuestions(req.Questions); err != nil {
			return 0, err
		}
	}

	owner, err := s.UserRepo.FindByID(ownerUserID)
	if err != nil {
		return 0, apperr.Storage(err)
	}

	var contentID uint
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		count, err := s.ContentRepo.CountActiveByOwner(tx, ownerUserID)
		if err != nil {
			return err
		}
		if count >= int64(owner.ContentLimit) {
			return apperr.Conflict("content limit reached, delete something first")
		}

		var payloadID uint
		switch req.Kind {
		case model.KindNote:
			note := &model.Note{
				OwnerUserID:   ownerUserID,
				Body:          req.Note.Body,
				AttachmentURL: req.Note.AttachmentURL,
			}
			if err := tx.Create(note).Error; err != nil {
				return err
			}
			payloadID = note.ID
		case model.KindFlashCard:
			card := &model.FlashCard{OwnerUserID: ownerUserID}
			if err := tx.Create(card).Error; err != nil {
				return err
			}
			items := make([]model.FlashCardItem, 0, len(req.Cards))
			for idx, item := range req.Cards {
				items = append(items, model.FlashCardItem{
					FlashCardID:  card.ID,
					Front:        item.Front,
					Back:         item.Back,
					DisplayOrder: idx + 1,
				})
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
			payloadID = card.ID
		case model.KindProblemSet:
			set := &model.ProblemSet{OwnerUserID: ownerUserID}
			if err := tx.Create(set).Error; err != nil {
				return err
			}
			if _, err := s.SetService.CreateInitialVersion(tx, set.ID, req.TimeLimitMinutes, req.Questions); err != nil {
				return err
			}
			payloadID = set.ID
		}

		content := &model.Content{
			OwnerUserID: ownerUserID,
			TenantID:    ownerTenantID,
			LectureCode: req.Meta.LectureCode,
			Title:       req.Meta.Title,
			Description: req.Meta.Description,
			Status:      req.Meta.Status,
			Visibility:  req.Meta.Visibility,
			PayloadKind: req.Kind,
			PayloadID:   payloadID,
		}
		if err := tx.Create(content).Error; err != nil {
			return err
		}
		contentID = content.ID
		return nil
	})
	if err != nil {
		if apperr.KindOf(err) != apperr.KindStorage {
			return 0, err
		}
		return 0, apperr.Storage(err)
	}
	return contentID, nil
}

// Update edits the envelope metadata; for a problem set with questions in
// the request it also appends a new version. The (payload_kind, payload_id)
// pair is never touched.
func (s *ContentService) Update(contentID, viewerUserID uint, isAdmin bool, req *UpdateContentRequest) error {
	content, err := s.ContentRepo.FindByID(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("content not found")
		}
		return apperr.Storage(err)
	}
	if !CanEdit(content, viewerUserID) {
		return apperr.Authorization("only the owner may edit this content")
	}
	if err := validateMeta(&req.Meta); err != nil {
		return err
	}
	if req.Meta.Visibility == model.VisibilityPublic && content.Visibility != model.VisibilityPublic && !isAdmin {
		return apperr.Authorization("public visibility requires an administrator")
	}

	if content.PayloadKind == model.KindProblemSet && len(req.Questions) > 0 {
		if _, err := s.SetService.CreateNextVersion(content.PayloadID, req.TimeLimitMinutes, req.Questions); err != nil {
			return err
		}
	}

	content.Title = req.Meta.Title
	content.Description = req.Meta.Description
	content.LectureCode = req.Meta.LectureCode
	content.Status = req.Meta.Status
	content.Visibility = req.Meta.Visibility
	if err := s.ContentRepo.Update(content); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// SoftDelete marks the envelope deleted. The payload and any versions stay
// untouched so historical exam attempts remain resolvable.
func (s *ContentService) SoftDelete(contentID, viewerUserID uint) error {
	content, err := s.ContentRepo.FindByID(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("content not found")
		}
		return apperr.Storage(err)
	}
	if !CanEdit(content, viewerUserID) {
		return apperr.Authorization("only the owner may delete this content")
	}
	if err := s.ContentRepo.SoftDelete(contentID); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// Get applies the read predicate; a failed check is indistinguishable from a
// missing row.
func (s *ContentService) Get(contentID, viewerUserID, viewerTenantID uint) (*ContentDetail, error) {
	content, err := s.ContentRepo.FindByID(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("content not found")
		}
		return nil, apperr.Storage(err)
	}
	if !CanView(content, viewerUserID, viewerTenantID) {
		return nil, apperr.NotFound("content not found")
	}

	detail := &ContentDetail{Content: content}

	if content.LectureCode != "" {
		// enrichment only: a missing lecture degrades to an empty title
		if lecture, err := s.LectureRepo.FindByCode(content.TenantID, content.LectureCode); err == nil {
			detail.LectureTitle = lecture.Title
		}
	}

	switch content.PayloadKind {
	case model.KindNote:
		var note model.Note
		if err := s.DB.First(&note, content.PayloadID).Error; err != nil {
			return nil, apperr.Storage(err)
		}
		detail.Note = &note
	case model.KindFlashCard:
		var items []model.FlashCardItem
		if err := s.DB.Where("flash_card_id = ?", content.PayloadID).
			Order("display_order asc").Find(&items).Error; err != nil {
			return nil, apperr.Storage(err)
		}
		detail.Items = items
	case model.KindProblemSet:
		version, err := s.SetService.LatestVersion(content.PayloadID)
		if err != nil {
			return nil, err
		}
		detail.LatestVersion = version
		count, err := s.SetRepo.CountQuestions(s.DB, version.ID)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		detail.QuestionCount = int(count)
		if content.OwnerUserID == viewerUserID {
			questions, err := s.SetService.QuestionsOf(version.ID)
			if err != nil {
				return nil, err
			}
			detail.Questions = questions
		}
	}

	return detail, nil
}

// ListVersions exposes the version history of an owned problem set. Version
// snapshots carry answer keys downstream, so this is owner-only.
func (s *ContentService) ListVersions(contentID, viewerUserID uint) ([]model.ProblemSetVersion, error) {
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
	if !CanEdit(content, viewerUserID) {
		return nil, apperr.NotFound("content not found")
	}
	return s.SetService.ListVersions(content.PayloadID)
}

// VersionQuestions returns the full question snapshot of one historical
// version, correctness flags included, for the owner.
func (s *ContentService) VersionQuestions(contentID, versionID, viewerUserID uint) ([]model.Question, error) {
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
	if !CanEdit(content, viewerUserID) {
		return nil, apperr.NotFound("content not found")
	}
	version, err := s.SetService.Version(versionID)
	if err != nil {
		return nil, err
	}
	if version.ProblemSetID != content.PayloadID {
		return nil, apperr.NotFound("version not found")
	}
	return s.SetService.QuestionsOf(version.ID)
}

func (s *ContentService) ListOwnedBy(ownerUserID uint, page, limit int) ([]model.Content, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	contents, total, err := s.ContentRepo.ListOwnedBy(ownerUserID, page, limit)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	return contents, total, nil
}

func (s *ContentService) Search(params repository.ContentSearchParams, viewerUserID, viewerTenantID uint) ([]repository.ContentWithRating, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}
	if params.Kind != "" && !params.Kind.Valid() {
		return nil, 0, apperr.Validation("unknown content kind")
	}
	switch params.Sort {
	case "", repository.SortUpdatedDesc, repository.SortUpdatedAsc,
		repository.SortRatingDesc, repository.SortRatingAsc:
	default:
		return nil, 0, apperr.Validation("unknown sort order")
	}

	rows, total, err := s.ContentRepo.Search(params, VisibleScope(viewerUserID, viewerTenantID))
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	return rows, total, nil
}
