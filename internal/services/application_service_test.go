package services

import (
	"context"
	"errors"
	"testing"

	"github.com/piyush5566/job-portal-go/internal/authz"
	"github.com/piyush5566/job-portal-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyHappyPath(t *testing.T) {
	db := newTestDB(t)
	media, remote := newTestMedia(t)
	svc := NewApplicationService(db, media)

	employer := seedUser(t, db, "employer1", models.RoleEmployer)
	seeker := seedUser(t, db, "seeker1", models.RoleJobSeeker)
	job := seedJob(t, db, employer, "Backend Engineer")

	application, err := svc.Apply(context.Background(), seeker, job.ID, "resume.pdf", []byte("%PDF-1.4 cv"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, application.Status)
	assert.NotEmpty(t, application.ResumePath)

	// The resume landed in the remote tier under the applicant's prefix.
	ok, err := remote.Exists(context.Background(), "resumes/"+application.ResumePath)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestApplyGates(t *testing.T) {
	db := newTestDB(t)
	media, _ := newTestMedia(t)
	svc := NewApplicationService(db, media)

	employer := seedUser(t, db, "employer1", models.RoleEmployer)
	seeker := seedUser(t, db, "seeker1", models.RoleJobSeeker)
	job := seedJob(t, db, employer, "Backend Engineer")

	_, err := svc.Apply(context.Background(), employer, job.ID, "", nil)
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)

	_, err = svc.Apply(context.Background(), nil, job.ID, "", nil)
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)

	_, err = svc.Apply(context.Background(), seeker, 9999, "", nil)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestApplyTwiceRejected(t *testing.T) {
	db := newTestDB(t)
	media, _ := newTestMedia(t)
	svc := NewApplicationService(db, media)

	employer := seedUser(t, db, "employer1", models.RoleEmployer)
	seeker := seedUser(t, db, "seeker1", models.RoleJobSeeker)
	job := seedJob(t, db, employer, "Backend Engineer")

	_, err := svc.Apply(context.Background(), seeker, job.ID, "", nil)
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), seeker, job.ID, "", nil)
	assert.ErrorIs(t, err, ErrAlreadyApplied)

	var count int64
	db.Model(&models.Application{}).Where("job_id = ? AND applicant_id = ?", job.ID, seeker.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestApplyResumeUploadFailureAborts(t *testing.T) {
	db := newTestDB(t)
	media, remote := newTestMedia(t)
	svc := NewApplicationService(db, media)

	employer := seedUser(t, db, "employer1", models.RoleEmployer)
	seeker := seedUser(t, db, "seeker1", models.RoleJobSeeker)
	job := seedJob(t, db, employer, "Backend Engineer")

	remote.PutErr = errors.New("bucket unavailable")

	_, err := svc.Apply(context.Background(), seeker, job.ID, "resume.pdf", []byte("cv"))
	require.Error(t, err)

	// No row without the upload.
	var count int64
	db.Model(&models.Application{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateStatusVocabulary(t *testing.T) {
	db := newTestDB(t)
	media, _ := newTestMedia(t)
	svc := NewApplicationService(db, media)

	employer := seedUser(t, db, "employer1", models.RoleEmployer)
	seeker := seedUser(t, db, "seeker1", models.RoleJobSeeker)
	job := seedJob(t, db, employer, "Backend Engineer")
	application := seedApplication(t, db, job, seeker, "")

	for _, status := range []string{
		models.StatusApplied, models.StatusPending, models.StatusReviewed,
		models.StatusRejected, models.StatusShortlisted, models.StatusHired,
	} {
		updated, err := svc.UpdateStatus(employer, application.ID, status)
		require.NoError(t, err, "status %q", status)
		assert.Equal(t, status, updated.Status)
	}

	_, err := svc.UpdateStatus(employer, application.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// A rejected value leaves the stored status untouched.
	var stored models.Application
	require.NoError(t, db.First(&stored, application.ID).Error)
	assert.Equal(t, models.StatusHired, stored.Status)
}

func TestUpdateStatusOwnership(t *testing.T) {
	db := newTestDB(t)
	media, _ := newTestMedia(t)
	svc := NewApplicationService(db, media)

	employer := seedUser(t, db, "employer1", models.RoleEmployer)
	other := seedUser(t, db, "employer2", models.RoleEmployer)
	admin := seedUser(t, db, "admin1", models.RoleAdmin)
	seeker := seedUser(t, db, "seeker1", models.RoleJobSeeker)
	job := seedJob(t, db, employer, "Backend Engineer")
	application := seedApplication(t, db, job, seeker, "")

	_, err := svc.UpdateStatus(other, application.ID, models.StatusReviewed)
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)

	_, err = svc.UpdateStatus(seeker, application.ID, models.StatusReviewed)
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)

	_, err = svc.UpdateStatus(admin, application.ID, models.StatusReviewed)
	assert.NoError(t, err)

	_, err = svc.UpdateStatus(employer, 9999, models.StatusReviewed)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestListForJobGate(t *testing.T) {
	db := newTestDB(t)
	media, _ := newTestMedia(t)
	svc := NewApplicationService(db, media)

	employer := seedUser(t, db, "employer1", models.RoleEmployer)
	other := seedUser(t, db, "employer2", models.RoleEmployer)
	seeker := seedUser(t, db, "seeker1", models.RoleJobSeeker)
	job := seedJob(t, db, employer, "Backend Engineer")
	seedApplication(t, db, job, seeker, "")

	_, err := svc.ListForJob(other, job.ID)
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)

	applications, err := svc.ListForJob(employer, job.ID)
	require.NoError(t, err)
	require.Len(t, applications, 1)
	assert.Equal(t, seeker.ID, applications[0].ApplicantID)
	assert.Equal(t, "seeker1", applications[0].Applicant.Username)
}

func TestListMine(t *testing.T) {
	db := newTestDB(t)
	media, _ := newTestMedia(t)
	svc := NewApplicationService(db, media)

	employer := seedUser(t, db, "employer1", models.RoleEmployer)
	seeker := seedUser(t, db, "seeker1", models.RoleJobSeeker)
	otherSeeker := seedUser(t, db, "seeker2", models.RoleJobSeeker)
	job := seedJob(t, db, employer, "Backend Engineer")
	seedApplication(t, db, job, seeker, "")
	seedApplication(t, db, job, otherSeeker, "")

	applications, err := svc.ListMine(seeker)
	require.NoError(t, err)
	require.Len(t, applications, 1)
	assert.Equal(t, seeker.ID, applications[0].ApplicantID)

	_, err = svc.ListMine(employer)
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)
}
