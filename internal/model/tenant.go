package model

// Tenant is an organization derived from the domain part of a user's email.
// It exists only to scope `domain` visibility; there is no cross-tenant sharing.
//
// swagger:model Tenant
type Tenant struct {
	BaseModel
	Domain string `gorm:"size:191;uniqueIndex;not null" json:"domain"`
	Name   string `gorm:"size:100" json:"name"`
}

func (Tenant) TableName() string {
	return "tenants"
}
