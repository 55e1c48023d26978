package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/piyush5566/job-portal-go/internal/authz"
	"github.com/piyush5566/job-portal-go/internal/models"
	"github.com/piyush5566/job-portal-go/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("you have already applied to this job")
	ErrInvalidStatus       = errors.New("invalid application status")
)

type ApplicationService struct {
	db    *gorm.DB
	media *storage.MediaStore
}

func NewApplicationService(db *gorm.DB, media *storage.MediaStore) *ApplicationService {
	return &ApplicationService{db: db, media: media}
}

// Apply submits an application for actor. A user may apply to a given job at
// most once. When a resume is supplied its upload must succeed before the
// row is inserted; an upload failure aborts the whole apply.
func (s *ApplicationService) Apply(ctx context.Context, actor *models.User, jobID uint, resumeName string, resumeData []byte) (*models.Application, error) {
	if err := authz.Require(actor, models.RoleJobSeeker); err != nil {
		slog.Warn("apply denied", "actor_id", actorID(actor), "target_id", jobID, "action", "apply_to_job")
		return nil, err
	}

	var job models.Job
	if err := s.db.First(&job, jobID).Error; err != nil {
		return nil, ErrJobNotFound
	}

	var existing models.Application
	err := s.db.Where("job_id = ? AND applicant_id = ?", jobID, actor.ID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyApplied
	}

	var resumePath string
	if len(resumeData) > 0 {
		resumePath, err = s.media.StoreResume(ctx, actor.ID, resumeName, resumeData)
		if err != nil {
			return nil, fmt.Errorf("resume upload failed: %w", err)
		}
	}

	application := models.Application{
		JobID:           jobID,
		ApplicantID:     actor.ID,
		ApplicationDate: time.Now().UTC(),
		Status:          models.StatusApplied,
		ResumePath:      resumePath,
	}

	if err := s.db.Create(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	slog.Info("application submitted", "actor_id", actor.ID, "target_id", jobID, "action", "apply_to_job")
	return &application, nil
}

// UpdateStatus moves an application to a new status. The status vocabulary
// is fixed; ownership is resolved through the parent job's poster.
func (s *ApplicationService) UpdateStatus(actor *models.User, applicationID uint, newStatus string) (*models.Application, error) {
	var application models.Application
	if err := s.db.Preload("Job").First(&application, applicationID).Error; err != nil {
		return nil, ErrApplicationNotFound
	}

	if err := authz.RequireOwner(actor, application.Job.PosterID); err != nil {
		slog.Warn("status update denied", "actor_id", actorID(actor), "target_id", applicationID, "action", "update_application_status")
		return nil, err
	}

	if !models.IsValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	if err := s.db.Model(&application).Update("status", newStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to update application %d: %w", applicationID, err)
	}

	application.Status = newStatus
	slog.Info("application status updated", "actor_id", actor.ID, "target_id", applicationID, "status", newStatus, "action", "update_application_status")
	return &application, nil
}

// ListForJob returns a job's applications to its poster or an admin. The
// gate runs before the query so non-owners learn nothing about the job's
// applicant pool.
func (s *ApplicationService) ListForJob(actor *models.User, jobID uint) ([]models.Application, error) {
	var job models.Job
	if err := s.db.First(&job, jobID).Error; err != nil {
		return nil, ErrJobNotFound
	}

	if err := authz.RequireOwner(actor, job.PosterID); err != nil {
		slog.Warn("applicant list denied", "actor_id", actorID(actor), "target_id", jobID, "action", "list_applications")
		return nil, err
	}

	var applications []models.Application
	if err := s.db.Preload("Applicant").Where("job_id = ?", jobID).
		Order("application_date DESC").Find(&applications).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications for job %d: %w", jobID, err)
	}
	return applications, nil
}

// ListMine returns the actor's own applications, newest first.
func (s *ApplicationService) ListMine(actor *models.User) ([]models.Application, error) {
	if err := authz.Require(actor, models.RoleJobSeeker); err != nil {
		return nil, err
	}

	var applications []models.Application
	if err := s.db.Preload("Job").Where("applicant_id = ?", actor.ID).
		Order("application_date DESC").Find(&applications).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}

// ListAll is the admin view over every application.
func (s *ApplicationService) ListAll(actor *models.User) ([]models.Application, error) {
	if err := authz.Require(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	var applications []models.Application
	if err := s.db.Preload("Job").Preload("Applicant").
		Order("application_date DESC").Find(&applications).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}
