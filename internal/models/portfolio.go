package models

import (
	"time"

	"github.com/eminenthub/eminenthub-api/internal/types"
)

// Portfolio is the one-to-one companion of a User, keyed by email.
// The list fields are JSON columns holding ordered sub-documents.
type Portfolio struct {
	PortfolioID uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	Email       string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Title       string    `gorm:"size:255" json:"title"`
	Bio         string    `gorm:"type:text" json:"bio"`
	Location    string    `gorm:"size:255" json:"location"`
	Phone       string    `gorm:"size:64" json:"phone"`
	SocialLinks JSON      `json:"socialLinks"`
	Experience  JSON      `json:"experience"`
	Education   JSON      `json:"education"`
	Projects    JSON      `json:"projects"`
	Skills      JSON      `json:"skills"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Portfolio
func (Portfolio) TableName() string {
	return "portfolios"
}

// SocialLink is one entry of the socialLinks list, keyed by name.
type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ExperienceEntry is one entry of the experience list.
type ExperienceEntry struct {
	ID          string `json:"_id"`
	Company     string `json:"company"`
	Title       string `json:"title"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is one entry of the education list.
type EducationEntry struct {
	ID          string `json:"_id"`
	School      string `json:"school"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProjectEntry is one entry of the projects list.
type ProjectEntry struct {
	ID           string                 `json:"_id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description,omitempty"`
	URL          string                 `json:"url,omitempty"`
	RepoURL      string                 `json:"repoUrl,omitempty"`
	Technologies types.FlexList[string] `json:"technologies,omitempty"`
}

// SkillGroup is one entry of the skills list. Category is unique
// within the list; items stay in insertion order.
type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}
