package model

// Rating has upsert semantics on (user_id, rateable_id, rateable_type):
// resubmission overwrites, never duplicates.
//
// swagger:model Rating
type Rating struct {
	BaseModel
	UserID       uint        `gorm:"uniqueIndex:idx_rating_user_target;not null" json:"userId"`
	RateableID   uint        `gorm:"uniqueIndex:idx_rating_user_target;not null" json:"rateableId"`
	RateableType PayloadKind `gorm:"size:20;uniqueIndex:idx_rating_user_target;not null" json:"rateableType"`
	Rating       int         `gorm:"not null" json:"rating"`
}

func (Rating) TableName() string {
	return "ratings"
}
