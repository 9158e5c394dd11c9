package model

import "time"

type UserRole string

const (
	Member UserRole = "member"
	Admin  UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;unique;not null" json:"email"`
	Password     string    `gorm:"size:100;not null" json:"-"`
	Role         UserRole  `gorm:"size:20;default:'member'" json:"role"`
	TenantID     uint      `gorm:"index" json:"tenantId"`
	ContentLimit int       `gorm:"default:100" json:"contentLimit"`
	Disabled     bool      `gorm:"default:false" json:"disabled"`
	LastLogin    time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
