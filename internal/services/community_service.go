package services

import (
	"fmt"
	"time"

	"github.com/eminenthub/eminenthub-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TestimonialInput carries the user-writable testimonial fields.
type TestimonialInput struct {
	AuthorName  string `json:"authorName"`
	AuthorTitle string `json:"authorTitle"`
	Quote       string `json:"quote"`
}

// ContactMessageInput carries the public contact form fields.
type ContactMessageInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// FeatureRequestInput carries the user-writable feature request fields.
type FeatureRequestInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// UpdateLogInput carries the admin-writable changelog fields.
type UpdateLogInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Version     string     `json:"version"`
	Date        *time.Time `json:"date"`
}

// CreateTestimonial stores a testimonial pending approval
func CreateTestimonial(db *gorm.DB, userEmail string, in TestimonialInput) (*models.Testimonial, error) {
	if in.AuthorName == "" || in.Quote == "" {
		return nil, fmt.Errorf("authorName and quote are required")
	}

	testimonial := models.Testimonial{
		TestimonialID: uuid.NewString(),
		UserEmail:     userEmail,
		AuthorName:    in.AuthorName,
		AuthorTitle:   in.AuthorTitle,
		Quote:         in.Quote,
		Approved:      false,
	}
	if err := db.Create(&testimonial).Error; err != nil {
		return nil, err
	}
	return &testimonial, nil
}

// ListApprovedTestimonials retrieves the public testimonial list
func ListApprovedTestimonials(db *gorm.DB) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	if err := db.Where("approved = ?", true).
		Order("created_at DESC").Find(&testimonials).Error; err != nil {
		return nil, err
	}
	return testimonials, nil
}

// ListAllTestimonials retrieves every testimonial, approved or not
func ListAllTestimonials(db *gorm.DB) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	if err := db.Order("created_at DESC").Find(&testimonials).Error; err != nil {
		return nil, err
	}
	return testimonials, nil
}

// ApproveTestimonial marks a testimonial as publicly visible
func ApproveTestimonial(db *gorm.DB, id string) (SubdocResult, error) {
	return markByID(db, &models.Testimonial{}, "testimonial_id", id, "approved")
}

// DeleteTestimonial removes a testimonial
func DeleteTestimonial(db *gorm.DB, id string) error {
	return deleteByID(db, &models.Testimonial{}, "testimonial_id", id)
}

// CreateContactMessage stores a contact form submission
func CreateContactMessage(db *gorm.DB, in ContactMessageInput) (*models.ContactMessage, error) {
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return nil, fmt.Errorf("name, email and message are required")
	}

	message := models.ContactMessage{
		MessageID: uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
	}
	if err := db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListContactMessages retrieves all contact messages, newest first
func ListContactMessages(db *gorm.DB) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	if err := db.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkContactMessageRead flags a contact message as read
func MarkContactMessageRead(db *gorm.DB, id string) (SubdocResult, error) {
	return markByID(db, &models.ContactMessage{}, "message_id", id, "is_read")
}

// DeleteContactMessage removes a contact message
func DeleteContactMessage(db *gorm.DB, id string) error {
	return deleteByID(db, &models.ContactMessage{}, "message_id", id)
}

// CreateFeatureRequest stores a feature request with status open
func CreateFeatureRequest(db *gorm.DB, submittedBy string, in FeatureRequestInput) (*models.FeatureRequest, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	request := models.FeatureRequest{
		RequestID:   uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		SubmittedBy: submittedBy,
		Status:      models.FeatureStatusOpen,
	}
	if err := db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// ListFeatureRequests retrieves all feature requests, newest first
func ListFeatureRequests(db *gorm.DB) ([]models.FeatureRequest, error) {
	var requests []models.FeatureRequest
	if err := db.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateFeatureRequestStatus moves a request to a new curation status
func UpdateFeatureRequestStatus(db *gorm.DB, id, status string) (*models.FeatureRequest, error) {
	if !models.ValidFeatureStatus(status) {
		return nil, fmt.Errorf("unknown status %q", status)
	}

	var request models.FeatureRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("request_id = ?", id).First(&request).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("not found")
			}
			return err
		}
		request.Status = status
		return tx.Model(&request).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListUpdateLogs retrieves the public changelog, newest first
func ListUpdateLogs(db *gorm.DB) ([]models.UpdateLog, error) {
	var logs []models.UpdateLog
	if err := db.Order("date DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// CreateUpdateLog stores a changelog entry
func CreateUpdateLog(db *gorm.DB, in UpdateLogInput) (*models.UpdateLog, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	date := time.Now().UTC()
	if in.Date != nil {
		date = *in.Date
	}

	entry := models.UpdateLog{
		LogID:       uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Version:     in.Version,
		Date:        date,
	}
	if err := db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateUpdateLog applies the writable fields to a changelog entry
func UpdateUpdateLog(db *gorm.DB, id string, in UpdateLogInput) (*models.UpdateLog, error) {
	var entry models.UpdateLog

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("log_id = ?", id).First(&entry).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("not found")
			}
			return err
		}

		updates := map[string]interface{}{}
		if in.Title != "" {
			updates["title"] = in.Title
		}
		if in.Description != "" {
			updates["description"] = in.Description
		}
		if in.Version != "" {
			updates["version"] = in.Version
		}
		if in.Date != nil {
			updates["date"] = *in.Date
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&entry).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// DeleteUpdateLog removes a changelog entry
func DeleteUpdateLog(db *gorm.DB, id string) error {
	return deleteByID(db, &models.UpdateLog{}, "log_id", id)
}

// markByID sets a boolean column to true on the row addressed by id.
// Setting an already-true flag reports matched without modified.
func markByID(db *gorm.DB, model interface{}, idColumn, id, flag string) (SubdocResult, error) {
	var result SubdocResult

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(model).
			Where(fmt.Sprintf("%s = ?", idColumn), id).
			Where(fmt.Sprintf("%s = ?", flag), false).
			Update(flag, true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			result.Matched = true
			result.Modified = true
			return nil
		}

		var count int64
		if err := tx.Model(model).
			Where(fmt.Sprintf("%s = ?", idColumn), id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("not found")
		}
		result.Matched = true
		return nil
	})

	return result, err
}

// deleteByID removes the row addressed by id, "not found" when absent
func deleteByID(db *gorm.DB, model interface{}, idColumn, id string) error {
	res := db.Where(fmt.Sprintf("%s = ?", idColumn), id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("not found")
	}
	return nil
}
