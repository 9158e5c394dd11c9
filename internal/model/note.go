package model

// swagger:model Note
type Note struct {
	BaseModel
	OwnerUserID   uint   `gorm:"index" json:"ownerUserId"`
	Body          string `gorm:"type:text" json:"body"`
	AttachmentURL string `gorm:"size:500" json:"attachmentUrl,omitempty"`
}

func (Note) TableName() string {
	return "notes"
}
