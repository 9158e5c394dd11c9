package service

import (
	"testing"

	"studyshare_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanView(t *testing.T) {
	const (
		owner       = uint(1)
		sameTenant  = uint(2)
		otherTenant = uint(3)
	)
	const (
		tenantA = uint(10)
		tenantB = uint(20)
	)

	content := func(status model.ContentStatus, vis model.Visibility) *model.Content {
		return &model.Content{
			OwnerUserID: owner,
			TenantID:    tenantA,
			Status:      status,
			Visibility:  vis,
		}
	}

	tests := []struct {
		name         string
		content      *model.Content
		viewerID     uint
		viewerTenant uint
		want         bool
	}{
		{"published public, stranger", content(model.StatusPublished, model.VisibilityPublic), otherTenant, tenantB, true},
		{"published public, owner", content(model.StatusPublished, model.VisibilityPublic), owner, tenantA, true},
		{"published domain, same tenant", content(model.StatusPublished, model.VisibilityDomain), sameTenant, tenantA, true},
		{"published domain, other tenant", content(model.StatusPublished, model.VisibilityDomain), otherTenant, tenantB, false},
		{"published domain, owner", content(model.StatusPublished, model.VisibilityDomain), owner, tenantA, true},
		{"published private, owner", content(model.StatusPublished, model.VisibilityPrivate), owner, tenantA, true},
		{"published private, same tenant", content(model.StatusPublished, model.VisibilityPrivate), sameTenant, tenantA, false},
		{"draft public, stranger", content(model.StatusDraft, model.VisibilityPublic), otherTenant, tenantB, false},
		{"draft private, owner", content(model.StatusDraft, model.VisibilityPrivate), owner, tenantA, false},
		{"nil content", nil, owner, tenantA, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanView(tt.content, tt.viewerID, tt.viewerTenant))
		})
	}

	t.Run("deleted content is invisible to everyone", func(t *testing.T) {
		c := content(model.StatusPublished, model.VisibilityPublic)
		c.DeletedAt.Valid = true
		assert.False(t, CanView(c, owner, tenantA))
		assert.False(t, CanView(c, otherTenant, tenantB))
	})
}

func TestCanEdit(t *testing.T) {
	c := &model.Content{OwnerUserID: 1, Status: model.StatusDraft, Visibility: model.VisibilityPrivate}
	assert.True(t, CanEdit(c, 1))
	assert.False(t, CanEdit(c, 2))
	assert.False(t, CanEdit(nil, 1))
}

func TestVisibleScopeMatchesCanView(t *testing.T) {
	env := newTestEnv(t)
	ownerUser := env.createUser(t, "owner@uni-a.edu", 10, 100)
	ownerUser2 := env.createUser(t, "peer@uni-a.edu", 10, 100)

	// one content per predicate branch
	publicID := env.createNote(t, ownerUser, model.VisibilityPublic, model.StatusPublished)
	domainID := env.createNote(t, ownerUser, model.VisibilityDomain, model.StatusPublished)
	privateID := env.createNote(t, ownerUser, model.VisibilityPrivate, model.StatusPublished)
	draftID := env.createNote(t, ownerUser, model.VisibilityPublic, model.StatusDraft)

	fetchVisible := func(viewerID, viewerTenant uint) map[uint]bool {
		var rows []model.Content
		require.NoError(t, env.db.Model(&model.Content{}).
			Scopes(VisibleScope(viewerID, viewerTenant)).
			Find(&rows).Error)
		got := make(map[uint]bool, len(rows))
		for _, r := range rows {
			got[r.ID] = true
		}
		return got
	}

	t.Run("stranger in another tenant sees public only", func(t *testing.T) {
		got := fetchVisible(99, 20)
		assert.True(t, got[publicID])
		assert.False(t, got[domainID])
		assert.False(t, got[privateID])
		assert.False(t, got[draftID])
	})

	t.Run("same-tenant peer sees public and domain", func(t *testing.T) {
		got := fetchVisible(ownerUser2.ID, 10)
		assert.True(t, got[publicID])
		assert.True(t, got[domainID])
		assert.False(t, got[privateID])
		assert.False(t, got[draftID])
	})

	t.Run("owner sees everything published, but not drafts", func(t *testing.T) {
		got := fetchVisible(ownerUser.ID, 10)
		assert.True(t, got[publicID])
		assert.True(t, got[domainID])
		assert.True(t, got[privateID])
		assert.False(t, got[draftID])
	})
}
