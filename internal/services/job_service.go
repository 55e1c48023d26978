package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/piyush5566/job-portal-go/internal/authz"
	"github.com/piyush5566/job-portal-go/internal/dto"
	"github.com/piyush5566/job-portal-go/internal/models"
	"gorm.io/gorm"
)

var (
	ErrJobNotFound  = errors.New("job not found")
	ErrDuplicateJob = errors.New("an identical job posting already exists")
)

type JobService struct {
	db *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

// normalizeSalary prepends the currency symbol when missing. Values already
// starting with "$" pass through untouched.
func normalizeSalary(salary string) string {
	if salary != "" && !strings.HasPrefix(salary, "$") {
		return "$" + salary
	}
	return salary
}

// Create posts a new job for actor. Only employers and admins may post. The
// (title, company, poster, location) tuple must be unique; the pre-check is
// backed by the composite unique index for concurrent inserts.
func (s *JobService) Create(actor *models.User, req *dto.JobRequest, logoPath string) (*models.Job, error) {
	if err := authz.Require(actor, models.RoleEmployer); err != nil {
		slog.Warn("job create denied", "actor_id", actorID(actor), "action", "create_job")
		return nil, err
	}

	salary := normalizeSalary(req.Salary)
	if salary != req.Salary {
		slog.Info("salary format corrected", "actor_id", actor.ID, "salary", salary)
	}

	var existing models.Job
	err := s.db.Where("title = ? AND company = ? AND poster_id = ? AND location = ?",
		req.Title, req.Company, actor.ID, req.Location).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateJob
	}

	if logoPath == "" {
		logoPath = models.DefaultCompanyLogo
	}

	job := models.Job{
		Title:       req.Title,
		Description: req.Description,
		Salary:      salary,
		Location:    req.Location,
		Category:    req.Category,
		Company:     req.Company,
		CompanyLogo: logoPath,
		PostedDate:  time.Now().UTC(),
		PosterID:    actor.ID,
	}

	if err := s.db.Create(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateJob
		}
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	slog.Info("job created", "actor_id", actor.ID, "target_id", job.ID, "action", "create_job")
	return &job, nil
}

// Update edits a job. Only the posting employer or an admin may edit.
func (s *JobService) Update(actor *models.User, jobID uint, req *dto.JobRequest, logoPath string) (*models.Job, error) {
	var job models.Job
	if err := s.db.First(&job, jobID).Error; err != nil {
		return nil, ErrJobNotFound
	}

	if err := authz.RequireOwner(actor, job.PosterID); err != nil {
		slog.Warn("job update denied", "actor_id", actorID(actor), "target_id", jobID, "action", "update_job")
		return nil, err
	}

	job.Title = req.Title
	job.Description = req.Description
	job.Salary = normalizeSalary(req.Salary)
	job.Location = req.Location
	job.Category = req.Category
	job.Company = req.Company
	if logoPath != "" {
		job.CompanyLogo = logoPath
	}

	if err := s.db.Save(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateJob
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return &job, nil
}

// Delete removes a job and all its applications in one transaction. Partial
// cascades must never survive: either the job and every dependent row go, or
// nothing does.
func (s *JobService) Delete(actor *models.User, jobID uint) error {
	var job models.Job
	if err := s.db.First(&job, jobID).Error; err != nil {
		return ErrJobNotFound
	}

	if err := authz.RequireOwner(actor, job.PosterID); err != nil {
		slog.Warn("job delete denied", "actor_id", actorID(actor), "target_id", jobID, "action", "delete_job")
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", jobID).Delete(&models.Application{}).Error; err != nil {
			return fmt.Errorf("delete applications: %w", err)
		}
		if err := tx.Delete(&job).Error; err != nil {
			return fmt.Errorf("delete job: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete job %d: %w", jobID, err)
	}

	slog.Info("job deleted with applications", "actor_id", actor.ID, "target_id", jobID, "action", "delete_job")
	return nil
}

func (s *JobService) Get(jobID uint) (*models.Job, error) {
	var job models.Job
	if err := s.db.First(&job, jobID).Error; err != nil {
		return nil, ErrJobNotFound
	}
	return &job, nil
}

// List returns jobs matching the filter, newest first. Each present filter is
// a case-insensitive substring match; filters compose with AND.
func (s *JobService) List(filter *dto.JobFilter) ([]models.Job, error) {
	query := s.db.Model(&models.Job{}).Order("posted_date DESC")

	if filter != nil {
		if loc := strings.TrimSpace(filter.Location); loc != "" {
			query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(loc)+"%")
		}
		if cat := strings.TrimSpace(filter.Category); cat != "" {
			query = query.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(cat)+"%")
		}
		if com := strings.TrimSpace(filter.Company); com != "" {
			query = query.Where("LOWER(company) LIKE ?", "%"+strings.ToLower(com)+"%")
		}
	}

	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// ListByPoster returns the jobs posted by one user, newest first.
func (s *JobService) ListByPoster(posterID uint) ([]models.Job, error) {
	var jobs []models.Job
	if err := s.db.Where("poster_id = ?", posterID).Order("posted_date DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs for poster %d: %w", posterID, err)
	}
	return jobs, nil
}

// Search runs List and shapes the result for the JSON search endpoint.
func (s *JobService) Search(filter *dto.JobFilter) (*dto.SearchJobsResponse, error) {
	jobs, err := s.List(filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.JobSummary, 0, len(jobs))
	for _, job := range jobs {
		var logoURL *string
		if job.CompanyLogo != "" {
			u := "/media/" + job.CompanyLogo
			logoURL = &u
		}
		summaries = append(summaries, dto.JobSummary{
			ID:             job.ID,
			Title:          job.Title,
			Company:        job.Company,
			Location:       job.Location,
			Category:       job.Category,
			Salary:         job.Salary,
			CompanyLogoURL: logoURL,
			PostedDate:     job.PostedDate.Format(time.RFC3339),
		})
	}

	return &dto.SearchJobsResponse{Jobs: summaries}, nil
}

func actorID(actor *models.User) uint {
	if actor == nil {
		return 0
	}
	return actor.ID
}
