package services

import (
	"fmt"
	"testing"

	"github.com/piyush5566/job-portal-go/internal/dto"
	"github.com/piyush5566/job-portal-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoles(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	tests := []struct {
		name       string
		role       string
		allowAdmin bool
		wantErr    error
	}{
		{"job seeker", models.RoleJobSeeker, false, nil},
		{"employer", models.RoleEmployer, false, nil},
		{"admin self-registration rejected", models.RoleAdmin, false, ErrInvalidRole},
		{"admin via admin path", models.RoleAdmin, true, nil},
		{"unknown role", "superuser", false, ErrInvalidRole},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Register(&dto.RegisterRequest{
				Username: fmt.Sprintf("user%d", i),
				Email:    fmt.Sprintf("user%d@example.com", i),
				Password: "password123",
				Role:     tt.role,
			}, tt.allowAdmin)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, user.Role)
			assert.Equal(t, models.DefaultProfilePicture, user.ProfilePicture)
			assert.NotEqual(t, "password123", user.Password)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "password123", Role: models.RoleJobSeeker,
	}, false)
	require.NoError(t, err)

	// Same email, different case
	_, err = svc.Register(&dto.RegisterRequest{
		Username: "alice2", Email: "Alice@Example.com", Password: "password123", Role: models.RoleJobSeeker,
	}, false)
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(&dto.RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "password123", Role: models.RoleJobSeeker,
	}, false)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginCaseInsensitiveEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "bob", Email: "bob@example.com", Password: "password123", Role: models.RoleEmployer,
	}, false)
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Email: "BOB@Example.COM", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bob", resp.User.Username)
}

func TestLoginUniformFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "carol", Email: "carol@example.com", Password: "password123", Role: models.RoleJobSeeker,
	}, false)
	require.NoError(t, err)

	// Unknown email and wrong password must be indistinguishable.
	_, errUnknown := svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	_, errWrongPw := svc.Login(&dto.LoginRequest{Email: "carol@example.com", Password: "wrong-password"})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestRefreshRotatesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "dave", Email: "dave@example.com", Password: "password123", Role: models.RoleJobSeeker,
	}, false)
	require.NoError(t, err)

	login, err := svc.Login(&dto.LoginRequest{Email: "dave@example.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The consumed token is revoked and cannot be replayed.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "erin", Email: "erin@example.com", Password: "password123", Role: models.RoleJobSeeker,
	}, false)
	require.NoError(t, err)

	login, err := svc.Login(&dto.LoginRequest{Email: "erin@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: login.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
