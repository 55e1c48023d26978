package services

import (
	"errors"
	"testing"

	"github.com/piyush5566/job-portal-go/internal/authz"
	"github.com/piyush5566/job-portal-go/internal/dto"
	"github.com/piyush5566/job-portal-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func adminUserReq(username, email, role string) *dto.AdminUserRequest {
	return &dto.AdminUserRequest{Username: username, Email: email, Role: role}
}

func TestUserListAdminOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	admin := seedUser(t, db, "admin1", models.RoleAdmin)
	employer := seedUser(t, db, "employer1", models.RoleEmployer)

	_, err := svc.List(employer)
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)

	users, err := svc.List(admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserUpdateRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	admin := seedUser(t, db, "admin1", models.RoleAdmin)
	seeker := seedUser(t, db, "seeker1", models.RoleJobSeeker)

	updated, err := svc.Update(admin, seeker.ID, adminUserReq("seeker1", "seeker1@example.com", models.RoleEmployer))
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployer, updated.Role)

	_, err = svc.Update(admin, seeker.ID, adminUserReq("seeker1", "seeker1@example.com", "superuser"))
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.Update(seeker, admin.ID, adminUserReq("admin1", "admin1@example.com", models.RoleAdmin))
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)

	_, err = svc.Update(admin, 9999, adminUserReq("ghost", "ghost@example.com", models.RoleJobSeeker))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserDeleteSelfGuard(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	admin := seedUser(t, db, "admin1", models.RoleAdmin)

	err := svc.Delete(admin, admin.ID)
	assert.ErrorIs(t, err, ErrSelfDeletion)

	// The guarded account is still there.
	var count int64
	db.Model(&models.User{}).Where("id = ?", admin.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUserDeleteCascadesOwnedGraph(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	admin := seedUser(t, db, "admin1", models.RoleAdmin)
	employer := seedUser(t, db, "employer1", models.RoleEmployer)
	otherEmployer := seedUser(t, db, "employer2", models.RoleEmployer)
	seeker := seedUser(t, db, "seeker1", models.RoleJobSeeker)

	// employer's job with an application from seeker
	job := seedJob(t, db, employer, "Backend Engineer")
	seedApplication(t, db, job, seeker, "")

	// a job employer does not own, untouched by the cascade
	otherJob := seedJob(t, db, otherEmployer, "Frontend Engineer")
	keep := seedApplication(t, db, otherJob, seeker, "")

	require.NoError(t, svc.Delete(admin, employer.ID))

	var count int64
	db.Model(&models.User{}).Where("id = ?", employer.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Job{}).Where("poster_id = ?", employer.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Application{}).Where("job_id = ?", job.ID).Count(&count)
	assert.Zero(t, count)

	var survivor models.Application
	assert.NoError(t, db.First(&survivor, keep.ID).Error)
}

func TestUserDeleteRollsBackOnMidCascadeFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	admin := seedUser(t, db, "admin1", models.RoleAdmin)
	employer := seedUser(t, db, "employer1", models.RoleEmployer)
	seeker := seedUser(t, db, "seeker1", models.RoleJobSeeker)
	job := seedJob(t, db, employer, "Backend Engineer")
	application := seedApplication(t, db, job, seeker, "")

	// Fail the final user-row delete after jobs, applications and tokens
	// were already deleted inside the transaction.
	require.NoError(t, db.Callback().Delete().After("gorm:delete").Register("fail_users_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == "users" {
			tx.AddError(errors.New("connection lost"))
		}
	}))

	require.Error(t, svc.Delete(admin, employer.ID))

	require.NoError(t, db.Callback().Delete().Remove("fail_users_delete"))

	// All or nothing: the whole owned graph survived the rollback.
	var count int64
	db.Model(&models.User{}).Where("id = ?", employer.ID).Count(&count)
	assert.EqualValues(t, 1, count)
	db.Model(&models.Job{}).Where("id = ?", job.ID).Count(&count)
	assert.EqualValues(t, 1, count)
	db.Model(&models.Application{}).Where("id = ?", application.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUserDeleteRemovesApplicantRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	admin := seedUser(t, db, "admin1", models.RoleAdmin)
	employer := seedUser(t, db, "employer1", models.RoleEmployer)
	seeker := seedUser(t, db, "seeker1", models.RoleJobSeeker)

	job := seedJob(t, db, employer, "Backend Engineer")
	seedApplication(t, db, job, seeker, "")

	require.NoError(t, svc.Delete(admin, seeker.ID))

	// The job survives, the seeker's application does not.
	var count int64
	db.Model(&models.Job{}).Where("id = ?", job.ID).Count(&count)
	assert.EqualValues(t, 1, count)
	db.Model(&models.Application{}).Where("applicant_id = ?", seeker.ID).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	seeker := seedUser(t, db, "seeker1", models.RoleJobSeeker)

	updated, err := svc.UpdateProfile(seeker, "renamed", "img/profiles/abc123.png")
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)
	assert.Equal(t, "img/profiles/abc123.png", updated.ProfilePicture)

	// Empty fields keep current values.
	updated, err = svc.UpdateProfile(seeker, "", "")
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)
	assert.Equal(t, "img/profiles/abc123.png", updated.ProfilePicture)

	_, err = svc.UpdateProfile(nil, "ghost", "")
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)
}
