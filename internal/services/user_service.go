package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/piyush5566/job-portal-go/internal/authz"
	"github.com/piyush5566/job-portal-go/internal/dto"
	"github.com/piyush5566/job-portal-go/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrSelfDeletion = errors.New("you cannot delete your own account")

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List returns all users to an admin.
func (s *UserService) List(actor *models.User) ([]models.User, error) {
	if err := authz.Require(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	var users []models.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(actor *models.User, userID uint) (*models.User, error) {
	if err := authz.Require(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// Update edits username, email and role. Role is mutable here and nowhere
// else: normal flows never change it.
func (s *UserService) Update(actor *models.User, userID uint, req *dto.AdminUserRequest) (*models.User, error) {
	if err := authz.Require(actor, models.RoleAdmin); err != nil {
		slog.Warn("user update denied", "actor_id", actorID(actor), "target_id", userID, "action", "update_user")
		return nil, err
	}

	if !models.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	user.Username = req.Username
	user.Email = req.Email
	user.Role = req.Role
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}

	if err := s.db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user %d: %w", userID, err)
	}

	slog.Info("user updated by admin", "actor_id", actor.ID, "target_id", userID, "action", "update_user")
	return &user, nil
}

// Delete removes a user and everything they own: their posted jobs, the
// applications on those jobs, their own applications and their sessions.
// One transaction; a failure rolls the whole graph back. Admins cannot
// delete themselves.
func (s *UserService) Delete(actor *models.User, userID uint) error {
	if err := authz.Require(actor, models.RoleAdmin); err != nil {
		slog.Warn("user delete denied", "actor_id", actorID(actor), "target_id", userID, "action", "delete_user")
		return err
	}

	if actor.ID == userID {
		slog.Warn("self-deletion attempt", "actor_id", actor.ID, "target_id", userID, "action", "delete_user")
		return ErrSelfDeletion
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return ErrUserNotFound
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var jobIDs []uint
		if err := tx.Model(&models.Job{}).Where("poster_id = ?", userID).Pluck("id", &jobIDs).Error; err != nil {
			return fmt.Errorf("collect posted jobs: %w", err)
		}

		if len(jobIDs) > 0 {
			if err := tx.Where("job_id IN ?", jobIDs).Delete(&models.Application{}).Error; err != nil {
				return fmt.Errorf("delete applications on posted jobs: %w", err)
			}
			if err := tx.Where("id IN ?", jobIDs).Delete(&models.Job{}).Error; err != nil {
				return fmt.Errorf("delete posted jobs: %w", err)
			}
		}

		if err := tx.Where("applicant_id = ?", userID).Delete(&models.Application{}).Error; err != nil {
			return fmt.Errorf("delete own applications: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return fmt.Errorf("delete refresh tokens: %w", err)
		}
		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}

	slog.Info("user deleted with owned data", "actor_id", actor.ID, "target_id", userID, "action", "delete_user")
	return nil
}

// UpdateProfile lets a user change their own username and, optionally, their
// profile picture reference.
func (s *UserService) UpdateProfile(actor *models.User, username, picturePath string) (*models.User, error) {
	if actor == nil {
		return nil, authz.ErrPermissionDenied
	}

	var user models.User
	if err := s.db.First(&user, actor.ID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if username != "" {
		user.Username = username
	}
	if picturePath != "" {
		user.ProfilePicture = picturePath
	}

	if err := s.db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &user, nil
}
