package api

import (
	"testing"

	"github.com/rpupo63/blog-platform-backend/errs"
	"github.com/rpupo63/blog-platform-backend/models"
	"github.com/stretchr/testify/assert"
)

func TestAdminOnly(t *testing.T) {
	assert.NoError(t, adminOnly(&models.User{Role: models.RoleAdmin}))

	err := adminOnly(&models.User{Role: models.RoleMember})
	assert.True(t, errs.IsInsufficientRoleError(err))
	assert.True(t, errs.IsForbidden(err))
	assert.Equal(t, 403, errs.StatusCode(err))

	err = adminOnly(nil)
	assert.True(t, errs.IsMissingTokenError(err))
	assert.True(t, errs.IsUnauthorized(err))
	assert.False(t, errs.IsInsufficientRoleError(err))
}
