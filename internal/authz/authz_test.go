package authz

import (
	"testing"

	"github.com/piyush5566/job-portal-go/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	employer := &models.User{ID: 2, Role: models.RoleEmployer}
	seeker := &models.User{ID: 3, Role: models.RoleJobSeeker}

	tests := []struct {
		name  string
		actor *models.User
		roles []string
		want  bool
	}{
		{"nil actor never passes", nil, []string{models.RoleJobSeeker}, false},
		{"admin passes employer gate", admin, []string{models.RoleEmployer}, true},
		{"admin passes seeker gate", admin, []string{models.RoleJobSeeker}, true},
		{"employer passes own gate", employer, []string{models.RoleEmployer}, true},
		{"seeker fails employer gate", seeker, []string{models.RoleEmployer}, false},
		{"multi-role gate", seeker, []string{models.RoleEmployer, models.RoleJobSeeker}, true},
		{"empty gate only admits admin", employer, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.actor, tt.roles...))
		})
	}
}

func TestAuthorizeOwner(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	employer := &models.User{ID: 2, Role: models.RoleEmployer}

	assert.True(t, AuthorizeOwner(admin, 99), "admin may touch any resource")
	assert.True(t, AuthorizeOwner(employer, 2), "owner may touch own resource")
	assert.False(t, AuthorizeOwner(employer, 3), "non-owner denied")
	assert.False(t, AuthorizeOwner(nil, 2), "anonymous denied")
}

func TestRequireReturnsSentinel(t *testing.T) {
	seeker := &models.User{ID: 3, Role: models.RoleJobSeeker}

	assert.ErrorIs(t, Require(seeker, models.RoleEmployer), ErrPermissionDenied)
	assert.NoError(t, Require(seeker, models.RoleJobSeeker))
	assert.ErrorIs(t, RequireOwner(seeker, 4), ErrPermissionDenied)
	assert.NoError(t, RequireOwner(seeker, 3))
}
