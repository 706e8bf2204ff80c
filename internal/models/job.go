package models

import (
	"time"
)

// Job application statuses.
const (
	JobStatusApplied   = "Applied"
	JobStatusInterview = "Interview"
	JobStatusOffer     = "Offer"
	JobStatusRejected  = "Rejected"
	JobStatusWishlist  = "Wishlist"
)

// ValidJobStatus reports whether s is one of the fixed status values.
func ValidJobStatus(s string) bool {
	switch s {
	case JobStatusApplied, JobStatusInterview, JobStatusOffer, JobStatusRejected, JobStatusWishlist:
		return true
	}
	return false
}

// Job is a tracked job application, owned by the user whose email is
// stored on the record.
type Job struct {
	JobID     string    `gorm:"type:char(36);primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Company   string    `gorm:"size:255;not null" json:"company"`
	Role      string    `gorm:"size:255" json:"role"`
	Status    string    `gorm:"size:32;not null" json:"status"`
	AppliedAt time.Time `json:"appliedAt"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Job
func (Job) TableName() string {
	return "jobs"
}
