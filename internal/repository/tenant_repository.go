package repository

import (
	"errors"

	"studyshare_backend/internal/model"

	"gorm.io/gorm"
)

type TenantRepository struct {
	DB *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{DB: db}
}

func (r *TenantRepository) FindByDomain(domain string) (*model.Tenant, error) {
	var tenant model.Tenant
	if err := r.DB.Where("domain = ?", domain).First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// FindOrCreateByDomain races with concurrent registrations from the same
// domain; the unique index decides the winner and the loser re-reads.
func (r *TenantRepository) FindOrCreateByDomain(domain string) (*model.Tenant, error) {
	tenant, err := r.FindByDomain(domain)
	if err == nil {
		return tenant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &model.Tenant{Domain: domain, Name: domain}
	if err := r.DB.Create(created).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindByDomain(domain)
		}
		return nil, err
	}
	return created, nil
}
