package services

import (
	"fmt"
	"time"

	"github.com/eminenthub/eminenthub-api/internal/models"
	"github.com/eminenthub/eminenthub-api/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobInput carries the writable job fields. appliedAt arrives as epoch
// milliseconds, number or string, depending on the client.
type JobInput struct {
	Company   string            `json:"company"`
	Role      string            `json:"role"`
	Status    string            `json:"status"`
	AppliedAt *types.FlexUint64 `json:"appliedAt"`
	Notes     *string           `json:"notes"`
}

// ListJobs retrieves the caller's job applications, newest first
func ListJobs(db *gorm.DB, email string) ([]models.Job, error) {
	var jobs []models.Job
	if err := db.Where("email = ?", email).
		Order("applied_at DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// CreateJob stores a new job application for the caller
func CreateJob(db *gorm.DB, email string, in JobInput) (*models.Job, error) {
	if in.Company == "" {
		return nil, fmt.Errorf("company is required")
	}
	status := in.Status
	if status == "" {
		status = models.JobStatusApplied
	}
	if !models.ValidJobStatus(status) {
		return nil, fmt.Errorf("unknown status %q", status)
	}

	appliedAt := time.Now().UTC()
	if in.AppliedAt != nil {
		appliedAt = in.AppliedAt.Time()
	}

	job := models.Job{
		JobID:     uuid.NewString(),
		Email:     email,
		Company:   in.Company,
		Role:      in.Role,
		Status:    status,
		AppliedAt: appliedAt,
	}
	if in.Notes != nil {
		job.Notes = *in.Notes
	}

	if err := db.Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJob applies the writable fields to a job the caller owns.
// Ownership is checked on every mutation, never trusted from the payload.
func UpdateJob(db *gorm.DB, jobID, caller string, in JobInput) (*models.Job, error) {
	var job models.Job

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("job_id = ?", jobID).First(&job).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("not found")
			}
			return err
		}
		if job.Email != caller {
			return fmt.Errorf("forbidden")
		}

		updates := map[string]interface{}{}
		if in.Company != "" {
			updates["company"] = in.Company
		}
		if in.Role != "" {
			updates["role"] = in.Role
		}
		if in.Status != "" {
			if !models.ValidJobStatus(in.Status) {
				return fmt.Errorf("unknown status %q", in.Status)
			}
			updates["status"] = in.Status
		}
		if in.AppliedAt != nil {
			updates["applied_at"] = in.AppliedAt.Time()
		}
		if in.Notes != nil {
			updates["notes"] = *in.Notes
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&job).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return &job, nil
}

// DeleteJob removes a job the caller owns
func DeleteJob(db *gorm.DB, jobID, caller string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("job_id = ?", jobID).First(&job).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("not found")
			}
			return err
		}
		if job.Email != caller {
			return fmt.Errorf("forbidden")
		}
		return tx.Delete(&job).Error
	})
}
