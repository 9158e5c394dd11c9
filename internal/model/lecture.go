package model

// swagger:model Lecture
type Lecture struct {
	BaseModel
	TenantID uint   `gorm:"uniqueIndex:idx_lecture_tenant_code" json:"tenantId"`
	Code     string `gorm:"size:50;uniqueIndex:idx_lecture_tenant_code" json:"code"`
	Title    string `gorm:"size:200" json:"title"`
}

func (Lecture) TableName() string {
	return "lectures"
}
