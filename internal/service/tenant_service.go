package service

import (
	"strings"

	"studyshare_backend/internal/apperr"
	"studyshare_backend/internal/model"
	"studyshare_backend/internal/repository"
)

// TenantService maps users to tenants. A tenant is nothing more than the
// domain part of the email address, created on first sight.
type TenantService struct {
	TenantRepo *repository.TenantRepository
}

func NewTenantService(tenantRepo *repository.TenantRepository) *TenantService {
	return &TenantService{TenantRepo: tenantRepo}
}

func (s *TenantService) TenantForEmail(email string) (*model.Tenant, error) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return nil, apperr.Validation("invalid email address")
	}
	domain := strings.ToLower(email[at+1:])

	tenant, err := s.TenantRepo.FindOrCreateByDomain(domain)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return tenant, nil
}

func (s *TenantService) FindByDomain(domain string) (*model.Tenant, error) {
	tenant, err := s.TenantRepo.FindByDomain(strings.ToLower(domain))
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return tenant, nil
}
