package model

// swagger:model FlashCard
type FlashCard struct {
	BaseModel
	OwnerUserID uint            `gorm:"index" json:"ownerUserId"`
	Items       []FlashCardItem `gorm:"foreignKey:FlashCardID" json:"items,omitempty"`
}

func (FlashCard) TableName() string {
	return "flash_cards"
}

// swagger:model FlashCardItem
type FlashCardItem struct {
	BaseModel
	FlashCardID  uint   `gorm:"index" json:"flashCardId"`
	Front        string `gorm:"type:text" json:"front"`
	Back         string `gorm:"type:text" json:"back"`
	DisplayOrder int    `json:"displayOrder"`
}

func (FlashCardItem) TableName() string {
	return "flash_card_items"
}
