package service

import (
	"studyshare_backend/internal/model"

	"gorm.io/gorm"
)

// CanView is the single read predicate. It is evaluated identically for
// single-item reads and, via VisibleScope, for bulk search filtering:
//
//	published AND not deleted AND
//	(public OR owned by viewer OR (domain AND same tenant))
//
// Note that drafts are invisible even to their owner here; owner-facing
// surfaces go through ListOwnedBy and the edit predicate instead.
func CanView(content *model.Content, viewerUserID, viewerTenantID uint) bool {
	if content == nil {
		return false
	}
	if content.Status != model.StatusPublished || content.DeletedAt.Valid {
		return false
	}
	if content.Visibility == model.VisibilityPublic {
		return true
	}
	if content.OwnerUserID == viewerUserID {
		return true
	}
	return content.Visibility == model.VisibilityDomain && content.TenantID == viewerTenantID
}

// CanEdit gates writes: ownership only, visibility is irrelevant.
func CanEdit(content *model.Content, viewerUserID uint) bool {
	return content != nil && content.OwnerUserID == viewerUserID
}

// VisibleScope is CanView as a composable query predicate.
func VisibleScope(viewerUserID, viewerTenantID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("contents.status = ?", model.StatusPublished).
			Where(db.Session(&gorm.Session{NewDB: true}).
				Where("contents.visibility = ?", model.VisibilityPublic).
				Or("contents.owner_user_id = ?", viewerUserID).
				Or("contents.visibility = ? AND contents.tenant_id = ?", model.VisibilityDomain, viewerTenantID))
	}
}
