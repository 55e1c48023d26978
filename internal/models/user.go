package models

import (
	"time"
)

// User roles. Admin implicitly passes every role gate.
const (
	RoleJobSeeker = "job_seeker"
	RoleEmployer  = "employer"
	RoleAdmin     = "admin"
)

// DefaultProfilePicture is the sentinel served when a user never uploaded one
// or an upload failed.
const DefaultProfilePicture = "img/profiles/default.jpg"

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:80;not null;uniqueIndex" json:"username"`
	Email          string    `gorm:"size:120;not null;uniqueIndex" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	Role           string    `gorm:"size:20;not null;index" json:"role"`
	ProfilePicture string    `gorm:"size:255;default:'img/profiles/default.jpg'" json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsValidRole reports whether role is one of the three known roles.
func IsValidRole(role string) bool {
	return role == RoleJobSeeker || role == RoleEmployer || role == RoleAdmin
}
