package models

import (
	"time"
)

// BlogPost is an authored article. The slug is unique per author, not
// globally; public reads address a post by slug.
type BlogPost struct {
	PostID      string    `gorm:"type:char(36);primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Slug        string    `gorm:"size:255;not null;index:idx_author_slug,unique" json:"slug"`
	Content     string    `gorm:"type:text" json:"content"`
	BannerImage string    `gorm:"size:512" json:"bannerImage"`
	Tags        JSON      `json:"tags"`
	Date        time.Time `json:"date"`
	AuthorEmail string    `gorm:"size:255;not null;index:idx_author_slug,unique" json:"authorEmail"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName overrides the table name for BlogPost
func (BlogPost) TableName() string {
	return "blog_posts"
}
