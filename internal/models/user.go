package models

import (
	"time"
)

// Roles a user record may carry. The Authorizer service issues tokens;
// the stored role decides what the token is allowed to do here.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account record, created on first successful sign-in.
type User struct {
	UserID         uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	Email          string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username       string    `gorm:"size:255;not null;uniqueIndex" json:"username"`
	DisplayName    string    `gorm:"size:255" json:"displayName"`
	PhotoURL       string    `gorm:"size:512" json:"photoURL"`
	Role           string    `gorm:"size:32;not null;default:user" json:"role"`
	AvailableRoles JSON      `json:"availableRoles"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
