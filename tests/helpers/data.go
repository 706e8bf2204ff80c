package helpers

import (
	"testing"
	"time"

	"github.com/eminenthub/eminenthub-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTestAccount creates a user row and its empty portfolio
func CreateTestAccount(t *testing.T, db *gorm.DB, email, role string) {
	t.Helper()

	roles, err := models.NewJSON([]string{models.RoleUser, models.RoleAdmin})
	if err != nil {
		t.Fatalf("Failed to encode roles: %v", err)
	}

	user := models.User{
		Email:          email,
		Username:       email,
		DisplayName:    "Test Account",
		Role:           role,
		AvailableRoles: roles,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	portfolio := models.Portfolio{
		Email:       email,
		SocialLinks: models.EmptyList,
		Experience:  models.EmptyList,
		Education:   models.EmptyList,
		Projects:    models.EmptyList,
		Skills:      models.EmptyList,
	}
	if err := db.Create(&portfolio).Error; err != nil {
		t.Fatalf("Failed to create portfolio: %v", err)
	}
}

// CreateTestBlogPost creates a blog post for an author
func CreateTestBlogPost(t *testing.T, db *gorm.DB, author, slug string, tags []string) string {
	t.Helper()

	tagsJSON, err := models.NewJSON(tags)
	if err != nil {
		t.Fatalf("Failed to encode tags: %v", err)
	}

	post := models.BlogPost{
		PostID:      uuid.NewString(),
		Title:       "Post " + slug,
		Slug:        slug,
		Content:     "content",
		Tags:        tagsJSON,
		Date:        time.Now().UTC(),
		AuthorEmail: author,
	}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("Failed to create blog post: %v", err)
	}
	return post.PostID
}

// CreateTestJob creates a job application for an owner
func CreateTestJob(t *testing.T, db *gorm.DB, owner, company string) string {
	t.Helper()

	job := models.Job{
		JobID:     uuid.NewString(),
		Email:     owner,
		Company:   company,
		Role:      "Engineer",
		Status:    models.JobStatusApplied,
		AppliedAt: time.Now().UTC(),
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("Failed to create job: %v", err)
	}
	return job.JobID
}
