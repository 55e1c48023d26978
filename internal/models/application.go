package models

import (
	"time"
)

// Application statuses. Any status may move to any other; validity is plain
// set membership, not a transition graph.
const (
	StatusApplied     = "applied"
	StatusPending     = "pending"
	StatusReviewed    = "reviewed"
	StatusRejected    = "rejected"
	StatusShortlisted = "shortlisted"
	StatusHired       = "hired"
)

var validStatuses = map[string]bool{
	StatusApplied:     true,
	StatusPending:     true,
	StatusReviewed:    true,
	StatusRejected:    true,
	StatusShortlisted: true,
	StatusHired:       true,
}

// IsValidStatus reports whether s belongs to the fixed status vocabulary.
func IsValidStatus(s string) bool {
	return validStatuses[s]
}

// Application links a job seeker to a Job. ResumePath holds the tier-relative
// suffix "<user_id>/<filename>", never an absolute path.
type Application struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	JobID           uint      `gorm:"not null;index;uniqueIndex:uq_application_job_applicant" json:"job_id"`
	Job             Job       `gorm:"foreignKey:JobID" json:"-"`
	ApplicantID     uint      `gorm:"not null;index;uniqueIndex:uq_application_job_applicant" json:"applicant_id"`
	Applicant       User      `gorm:"foreignKey:ApplicantID" json:"-"`
	ApplicationDate time.Time `gorm:"not null;index" json:"application_date"`
	Status          string    `gorm:"size:20;not null;default:'applied';index" json:"status"`
	ResumePath      string    `gorm:"size:255" json:"resume_path,omitempty"`
}
