package models

import (
	"time"
)

// Feature request statuses, admin-curated.
const (
	FeatureStatusOpen     = "open"
	FeatureStatusPlanned  = "planned"
	FeatureStatusShipped  = "shipped"
	FeatureStatusDeclined = "declined"
)

// ValidFeatureStatus reports whether s is a known feature request status.
func ValidFeatureStatus(s string) bool {
	switch s {
	case FeatureStatusOpen, FeatureStatusPlanned, FeatureStatusShipped, FeatureStatusDeclined:
		return true
	}
	return false
}

// Testimonial is a user-submitted quote, hidden until an admin approves it.
type Testimonial struct {
	TestimonialID string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserEmail     string    `gorm:"size:255;index" json:"userEmail"`
	AuthorName    string    `gorm:"size:255;not null" json:"authorName"`
	AuthorTitle   string    `gorm:"size:255" json:"authorTitle"`
	Quote         string    `gorm:"type:text;not null" json:"quote"`
	Approved      bool      `gorm:"not null;default:false" json:"approved"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Testimonial
func (Testimonial) TableName() string {
	return "testimonials"
}

// ContactMessage is a public contact form submission, admin-read.
type ContactMessage struct {
	MessageID string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Subject   string    `gorm:"size:255" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsRead    bool      `gorm:"not null;default:false" json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for ContactMessage
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// FeatureRequest is a user-submitted product suggestion.
type FeatureRequest struct {
	RequestID   string    `gorm:"type:char(36);primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:64" json:"category"`
	Priority    string    `gorm:"size:32" json:"priority"`
	SubmittedBy string    `gorm:"size:255;index" json:"submittedBy"`
	Status      string    `gorm:"size:32;not null;default:open" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName overrides the table name for FeatureRequest
func (FeatureRequest) TableName() string {
	return "feature_requests"
}

// UpdateLog is an admin-published changelog entry.
type UpdateLog struct {
	LogID       string    `gorm:"type:char(36);primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Version     string    `gorm:"size:64" json:"version"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName overrides the table name for UpdateLog
func (UpdateLog) TableName() string {
	return "update_logs"
}
