package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/piyush5566/job-portal-go/internal/authz"
	"github.com/piyush5566/job-portal-go/internal/models"
	"github.com/piyush5566/job-portal-go/internal/storage"
	"gorm.io/gorm"
)

var ErrResumeNotFound = errors.New("resume not found")

// ResumeService gates resume downloads. Permission resolves through the
// owning application: its applicant, the employer who posted its job, or an
// admin. The gate runs before any storage I/O.
type ResumeService struct {
	db    *gorm.DB
	media *storage.MediaStore
}

func NewResumeService(db *gorm.DB, media *storage.MediaStore) *ResumeService {
	return &ResumeService{db: db, media: media}
}

// Serve resolves the application owning suffix, checks access, then streams
// the bytes through the two-tier retrieval path.
func (s *ResumeService) Serve(ctx context.Context, actor *models.User, suffix string) ([]byte, string, error) {
	if actor == nil {
		return nil, "", authz.ErrPermissionDenied
	}

	var application models.Application
	if err := s.db.Preload("Job").Where("resume_path = ?", suffix).First(&application).Error; err != nil {
		return nil, "", ErrResumeNotFound
	}

	allowed := actor.Role == models.RoleAdmin ||
		actor.ID == application.Job.PosterID ||
		actor.ID == application.ApplicantID
	if !allowed {
		slog.Warn("resume access denied", "actor_id", actor.ID, "target_id", application.ID, "action", "serve_resume")
		return nil, "", authz.ErrPermissionDenied
	}

	data, filename, err := s.media.Retrieve(ctx, suffix)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, "", ErrResumeNotFound
		}
		return nil, "", err
	}

	slog.Info("resume served", "actor_id", actor.ID, "target_id", application.ID, "action", "serve_resume")
	return data, filename, nil
}
