package service

import (
	"testing"
	"time"

	"studyshare_backend/internal/apperr"
	"studyshare_backend/internal/config"
	"studyshare_backend/internal/repository"
	"studyshare_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T, env *testEnv) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Quota.DefaultContentLimit = 100
	return NewAuthService(repository.NewUserRepository(env.db), env.tenant, cfg)
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	t.Run("registration assigns the tenant from the email domain", func(t *testing.T) {
		user, err := auth.Register("Alice", "alice@uni-a.edu", "password123")
		require.NoError(t, err)
		assert.NotZero(t, user.TenantID)
		assert.Equal(t, 100, user.ContentLimit)

		tenant, err := env.tenant.FindByDomain("uni-a.edu")
		require.NoError(t, err)
		assert.Equal(t, tenant.ID, user.TenantID)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, err := auth.Register("Alice Again", "alice@uni-a.edu", "password123")
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	t.Run("short password is rejected", func(t *testing.T) {
		_, err := auth.Register("Bob", "bob@uni-a.edu", "short")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	_, err := auth.Register("Alice", "alice@uni-a.edu", "password123")
	require.NoError(t, err)

	t.Run("valid credentials yield a parseable token", func(t *testing.T) {
		token, err := auth.Login("alice@uni-a.edu", "password123")
		require.NoError(t, err)

		claims, err := util.ParseJWT(token, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, "alice@uni-a.edu", claims.Email)
		assert.NotZero(t, claims.UserID)
		assert.NotZero(t, claims.TenantID)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := auth.Login("alice@uni-a.edu", "wrongpass123")
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	})

	t.Run("unknown email is rejected the same way", func(t *testing.T) {
		_, err := auth.Login("ghost@uni-a.edu", "password123")
		assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	})
}
