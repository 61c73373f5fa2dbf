package models

import (
	"fmt"
	"time"
)

type JobPosting struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(100);not null" json:"title"`
	Category    string    `gorm:"type:varchar(100)" json:"category"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Location    string    `gorm:"type:varchar(100);not null" json:"location"`
	Salary      string    `gorm:"type:varchar(50)" json:"salary"`
	PostedBy    uint64    `gorm:"not null;index" json:"posted_by"`
	CompanyID   *uint64   `gorm:"index" json:"company_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Poster  *User    `gorm:"foreignKey:PostedBy" json:"-"`
	Company *Company `gorm:"foreignKey:CompanyID" json:"-"`
}

// JobComment is a node of a job's comment tree. Roots have a nil ParentID; a parent
// always belongs to the same job.
type JobComment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	JobID     uint64    `gorm:"not null;index" json:"job_id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	CompanyID *uint64   `json:"company_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ParentID  *uint64   `gorm:"index" json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Job    *JobPosting `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	User   *User       `gorm:"foreignKey:UserID" json:"-"`
	Parent *JobComment `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// ParseApplicationStatus converts a raw string to an ApplicationStatus.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// JobApplication is one user's application to one job. DecisionNotes stay private
// while the status is pending.
type JobApplication struct {
	ID             uint64            `gorm:"primarykey" json:"id"`
	UserID         uint64            `gorm:"not null;uniqueIndex:idx_application_user_job,priority:1" json:"user_id"`
	JobID          uint64            `gorm:"not null;uniqueIndex:idx_application_user_job,priority:2;index" json:"job_id"`
	CompanyID      *uint64           `gorm:"index" json:"company_id"`
	AppliedAt      time.Time         `gorm:"autoCreateTime" json:"applied_at"`
	Status         ApplicationStatus `gorm:"type:varchar(20);not null" json:"status"`
	ResumeFilePath string            `gorm:"type:varchar(255)" json:"resume_file_path"`
	DecisionNotes  string            `gorm:"type:text" json:"-"`

	// Relations
	User *User       `gorm:"foreignKey:UserID" json:"-"`
	Job  *JobPosting `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}
