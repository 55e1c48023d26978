package models

import (
	"time"
)

// DefaultCompanyLogo is the sentinel logo path for jobs without an upload.
const DefaultCompanyLogo = "img/company_logos/default.png"

// Job is a posting owned by an employer or admin. The composite unique index
// backs the check-then-insert in JobService against concurrent inserts.
type Job struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null;uniqueIndex:uq_job_title_company_poster_location" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Salary      string    `gorm:"size:50" json:"salary,omitempty"`
	Location    string    `gorm:"size:100;not null;index;uniqueIndex:uq_job_title_company_poster_location" json:"location"`
	Category    string    `gorm:"size:50;not null;index" json:"category"`
	Company     string    `gorm:"size:100;not null;index;uniqueIndex:uq_job_title_company_poster_location" json:"company"`
	CompanyLogo string    `gorm:"size:255;default:'img/company_logos/default.png'" json:"company_logo"`
	PostedDate  time.Time `gorm:"not null;index" json:"posted_date"`
	PosterID    uint      `gorm:"not null;index;uniqueIndex:uq_job_title_company_poster_location" json:"poster_id"`
	Poster      User      `gorm:"foreignKey:PosterID" json:"-"`
}
