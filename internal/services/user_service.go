package services

import (
	"fmt"
	"strings"

	"github.com/eminenthub/eminenthub-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SyncUserInput carries the profile fields the client learned from the
// identity provider during sign-in.
type SyncUserInput struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// UpdateUserInput carries the editable profile fields.
type UpdateUserInput struct {
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoURL"`
}

// SyncUser creates the account and its empty portfolio on first sign-in.
// Subsequent calls refresh displayName/photoURL and are otherwise no-ops.
func SyncUser(db *gorm.DB, in SyncUserInput) (*models.User, error) {
	var user models.User

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", in.Email).First(&user).Error
		if err == nil {
			// Existing account: refresh the provider-supplied fields.
			updates := map[string]interface{}{}
			if in.DisplayName != "" && in.DisplayName != user.DisplayName {
				updates["display_name"] = in.DisplayName
			}
			if in.PhotoURL != "" && in.PhotoURL != user.PhotoURL {
				updates["photo_url"] = in.PhotoURL
			}
			if len(updates) > 0 {
				if err := tx.Model(&user).Updates(updates).Error; err != nil {
					return err
				}
			}
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		roles, err := models.NewJSON([]string{models.RoleUser})
		if err != nil {
			return err
		}

		user = models.User{
			Email:          in.Email,
			Username:       usernameFromEmail(in.Email),
			DisplayName:    in.DisplayName,
			PhotoURL:       in.PhotoURL,
			Role:           models.RoleUser,
			AvailableRoles: roles,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		// Every account gets exactly one portfolio with empty lists.
		portfolio := models.Portfolio{
			Email:       in.Email,
			SocialLinks: models.EmptyList,
			Experience:  models.EmptyList,
			Education:   models.EmptyList,
			Projects:    models.EmptyList,
			Skills:      models.EmptyList,
		}
		return tx.Create(&portfolio).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByEmail retrieves a single account record
func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers retrieves all account records (admin dashboards)
func ListUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser applies the editable profile fields
func UpdateUser(db *gorm.DB, email string, in UpdateUserInput) (*models.User, error) {
	var user models.User

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("email = ?", email).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("not found")
			}
			return err
		}

		updates := map[string]interface{}{}
		if in.DisplayName != nil {
			updates["display_name"] = *in.DisplayName
		}
		if in.PhotoURL != nil {
			updates["photo_url"] = *in.PhotoURL
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&user).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// SwitchRole changes the stored role. The target role must be present
// in the account's availableRoles set.
func SwitchRole(db *gorm.DB, email, role string) (*models.User, error) {
	var user models.User

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("email = ?", email).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("not found")
			}
			return err
		}

		var available []string
		if err := user.AvailableRoles.Decode(&available); err != nil {
			return err
		}

		allowed := false
		for _, r := range available {
			if r == role {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("role %q is not available for this account", role)
		}

		user.Role = role
		return tx.Model(&user).Update("role", role).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// usernameFromEmail derives the unique username from the email local part
func usernameFromEmail(email string) string {
	local := email
	if i := strings.Index(email, "@"); i > 0 {
		local = email[:i]
	}
	return strings.ToLower(local)
}
