package service

import (
	"errors"

	"studyshare_backend/internal/apperr"
	"studyshare_backend/internal/config"
	"studyshare_backend/internal/model"
	"studyshare_backend/internal/repository"
	"studyshare_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo      *repository.UserRepository
	TenantService *TenantService
	Cfg           *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, tenantService *TenantService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:      userRepo,
		TenantService: tenantService,
		Cfg:           cfg,
	}
}

func (s *AuthService) Register(name, email, password string) (*model.User, error) {
	if name == "" || email == "" || len(password) < 8 {
		return nil, apperr.Validation("name, email and a password of at least 8 characters are required")
	}

	tenant, err := s.TenantService.TenantForEmail(email)
	if err != nil {
		return nil, err
	}

	if _, err := s.UserRepo.FindByEmail(email); err == nil {
		return nil, apperr.Conflict("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Storage(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		Password:     string(hashedPassword),
		Role:         model.Member,
		TenantID:     tenant.ID,
		ContentLimit: s.Cfg.Quota.DefaultContentLimit,
	}
	if err := s.UserRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, apperr.Storage(err)
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", apperr.Authorization("invalid credentials")
	}

	if user.Disabled {
		return "", apperr.Authorization("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperr.Authorization("invalid credentials")
	}

	s.UserRepo.UpdateLastLogin(user.ID)

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", apperr.Storage(err)
	}
	return token, nil
}

func (s *AuthService) Profile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Storage(err)
	}
	return user, nil
}
