package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/eminenthub/eminenthub-api/internal/models"
	"github.com/eminenthub/eminenthub-api/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// BlogPostInput carries the writable post fields.
type BlogPostInput struct {
	Title       string                 `json:"title"`
	Slug        string                 `json:"slug"`
	Content     string                 `json:"content"`
	BannerImage string                 `json:"bannerImage"`
	Tags        types.FlexList[string] `json:"tags"`
	Date        *time.Time             `json:"date"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title
func Slugify(title string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// ListBlogPosts retrieves posts, newest first, optionally filtered by
// author and by tags (a post matches when it carries any requested tag).
func ListBlogPosts(db *gorm.DB, tags []string, author string) ([]models.BlogPost, error) {
	query := db.Order("date DESC")
	if author != "" {
		query = query.Where("author_email = ?", author)
	}

	var posts []models.BlogPost
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return posts, nil
	}

	// Tags live inside the JSON column, so the filter runs here rather
	// than in dialect-specific SQL.
	filtered := make([]models.BlogPost, 0, len(posts))
	for _, post := range posts {
		var postTags []string
		if err := post.Tags.Decode(&postTags); err != nil {
			return nil, err
		}
		if hasAnyTag(postTags, tags) {
			filtered = append(filtered, post)
		}
	}
	return filtered, nil
}

// GetBlogPostBySlug retrieves a single post by slug. Slugs are unique
// per author, so a shared slug resolves to the newest post.
func GetBlogPostBySlug(db *gorm.DB, slug string) (*models.BlogPost, error) {
	query := db.Where("slug = ?", slug).Order("date DESC")
	if db.Dialector.Name() == "mysql" {
		query = query.Clauses(hints.UseIndex("idx_author_slug"))
	}

	var post models.BlogPost
	if err := query.First(&post).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &post, nil
}

// GetBlogPostByID retrieves a single post by its id
func GetBlogPostByID(db *gorm.DB, id string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := db.Where("post_id = ?", id).First(&post).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &post, nil
}

// CreateBlogPost stores a new post for the author. The slug falls back
// to the slugified title; a slug the author already used is rejected.
func CreateBlogPost(db *gorm.DB, author string, in BlogPostInput) (*models.BlogPost, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Title)
	}
	if slug == "" {
		return nil, fmt.Errorf("slug is required")
	}

	tagList := in.Tags.Slice()
	if tagList == nil {
		tagList = []string{}
	}
	tags, err := models.NewJSON(tagList)
	if err != nil {
		return nil, err
	}

	date := time.Now().UTC()
	if in.Date != nil {
		date = *in.Date
	}

	post := models.BlogPost{
		PostID:      uuid.NewString(),
		Title:       in.Title,
		Slug:        slug,
		Content:     in.Content,
		BannerImage: in.BannerImage,
		Tags:        tags,
		Date:        date,
		AuthorEmail: author,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.BlogPost{}).
			Where("author_email = ? AND slug = ?", author, slug).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("duplicate slug")
		}
		return tx.Create(&post).Error
	})
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// UpdateBlogPost applies the writable fields to a post the caller wrote
func UpdateBlogPost(db *gorm.DB, id, caller string, in BlogPostInput) (*models.BlogPost, error) {
	var post models.BlogPost

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("post_id = ?", id).First(&post).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("not found")
			}
			return err
		}
		if post.AuthorEmail != caller {
			return fmt.Errorf("forbidden")
		}

		updates := map[string]interface{}{}
		if in.Title != "" {
			updates["title"] = in.Title
		}
		if in.Slug != "" && in.Slug != post.Slug {
			var count int64
			if err := tx.Model(&models.BlogPost{}).
				Where("author_email = ? AND slug = ? AND post_id <> ?", caller, in.Slug, id).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("duplicate slug")
			}
			updates["slug"] = in.Slug
		}
		if in.Content != "" {
			updates["content"] = in.Content
		}
		if in.BannerImage != "" {
			updates["banner_image"] = in.BannerImage
		}
		if len(in.Tags) > 0 {
			tags, err := models.NewJSON(in.Tags.Slice())
			if err != nil {
				return err
			}
			updates["tags"] = tags
		}
		if in.Date != nil {
			updates["date"] = *in.Date
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&post).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// DeleteBlogPost removes a post. Admins may delete any post, authors
// only their own.
func DeleteBlogPost(db *gorm.DB, id, caller string, isAdmin bool) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var post models.BlogPost
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("post_id = ?", id).First(&post).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("not found")
			}
			return err
		}
		if !isAdmin && post.AuthorEmail != caller {
			return fmt.Errorf("forbidden")
		}
		return tx.Delete(&post).Error
	})
}

func hasAnyTag(postTags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range postTags {
			if strings.EqualFold(t, w) {
				return true
			}
		}
	}
	return false
}
