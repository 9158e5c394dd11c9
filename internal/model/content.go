package model

type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
)

type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityDomain  Visibility = "domain"
	VisibilityPublic  Visibility = "public"
)

type PayloadKind string

const (
	KindNote       PayloadKind = "note"
	KindFlashCard  PayloadKind = "flash_card"
	KindProblemSet PayloadKind = "problem_set"
)

func (k PayloadKind) Valid() bool {
	switch k {
	case KindNote, KindFlashCard, KindProblemSet:
		return true
	}
	return false
}

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityDomain, VisibilityPublic:
		return true
	}
	return false
}

func (s ContentStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Content is the polymorphic envelope shared by all study-material kinds.
// (PayloadKind, PayloadID) is immutable after creation; the payload table is
// never repointed. TenantID is a copy of the owner's tenant taken at creation
// so visibility can be evaluated as a SQL predicate without a join.
//
// swagger:model Content
type Content struct {
	BaseModel
	OwnerUserID uint          `gorm:"index;not null" json:"ownerUserId"`
	TenantID    uint          `gorm:"index" json:"tenantId"`
	LectureCode string        `gorm:"size:50;index" json:"lectureCode,omitempty"`
	Title       string        `gorm:"size:200;not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Status      ContentStatus `gorm:"size:20;default:'draft';index" json:"status"`
	Visibility  Visibility    `gorm:"size:20;default:'private';index" json:"visibility"`
	PayloadKind PayloadKind   `gorm:"size:20;index:idx_content_payload" json:"payloadKind"`
	PayloadID   uint          `gorm:"index:idx_content_payload" json:"payloadId"`
}

func (Content) TableName() string {
	return "contents"
}
