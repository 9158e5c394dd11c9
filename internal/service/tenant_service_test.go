package service

import (
	"testing"

	"studyshare_backend/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantForEmail(t *testing.T) {
	env := newTestEnv(t)

	t.Run("derives the tenant from the domain part", func(t *testing.T) {
		tenant, err := env.tenant.TenantForEmail("alice@uni-a.edu")
		require.NoError(t, err)
		assert.Equal(t, "uni-a.edu", tenant.Domain)
	})

	t.Run("same domain maps to the same tenant", func(t *testing.T) {
		first, err := env.tenant.TenantForEmail("alice@uni-b.edu")
		require.NoError(t, err)
		second, err := env.tenant.TenantForEmail("bob@uni-b.edu")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("domain comparison is case insensitive", func(t *testing.T) {
		first, err := env.tenant.TenantForEmail("carol@Uni-C.EDU")
		require.NoError(t, err)
		second, err := env.tenant.TenantForEmail("dave@uni-c.edu")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		for _, email := range []string{"", "nodomain", "@uni-a.edu", "trailing@"} {
			_, err := env.tenant.TenantForEmail(email)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "email %q", email)
		}
	})
}
