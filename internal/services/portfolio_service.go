package services

import (
	"fmt"

	"github.com/eminenthub/eminenthub-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubdocResult reports the outcome of a sub-document mutation. A miss
// on the element (parent present, id absent) is a result, not an error.
type SubdocResult struct {
	Matched  bool `json:"matched"`
	Modified bool `json:"modified"`
}

// PortfolioInfoInput carries the scalar portfolio fields.
type PortfolioInfoInput struct {
	Title    *string `json:"title"`
	Bio      *string `json:"bio"`
	Location *string `json:"location"`
	Phone    *string `json:"phone"`
}

// GetPortfolio retrieves the portfolio for an email
func GetPortfolio(db *gorm.DB, email string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := db.Where("email = ?", email).First(&portfolio).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &portfolio, nil
}

// UpdatePortfolioInfo applies the scalar fields (title, bio, location, phone)
func UpdatePortfolioInfo(db *gorm.DB, email string, in PortfolioInfoInput) (*models.Portfolio, error) {
	var portfolio models.Portfolio

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockPortfolio(tx, email, &portfolio); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if in.Title != nil {
			updates["title"] = *in.Title
		}
		if in.Bio != nil {
			updates["bio"] = *in.Bio
		}
		if in.Location != nil {
			updates["location"] = *in.Location
		}
		if in.Phone != nil {
			updates["phone"] = *in.Phone
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&portfolio).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return &portfolio, nil
}

// SetSocialLink upserts a social link, keyed by name
func SetSocialLink(db *gorm.DB, email string, link models.SocialLink) (SubdocResult, error) {
	var result SubdocResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var portfolio models.Portfolio
		if err := lockPortfolio(tx, email, &portfolio); err != nil {
			return err
		}

		var links []models.SocialLink
		if err := portfolio.SocialLinks.Decode(&links); err != nil {
			return err
		}

		result.Matched = true
		replaced := false
		for i := range links {
			if links[i].Name == link.Name {
				if links[i] == link {
					// Identical link already stored, nothing to write.
					return nil
				}
				links[i] = link
				replaced = true
				break
			}
		}
		if !replaced {
			links = append(links, link)
		}

		result.Modified = true
		return saveList(tx, &portfolio, "social_links", links)
	})

	return result, err
}

// RemoveSocialLink deletes a social link by name
func RemoveSocialLink(db *gorm.DB, email, name string) (SubdocResult, error) {
	var result SubdocResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var portfolio models.Portfolio
		if err := lockPortfolio(tx, email, &portfolio); err != nil {
			return err
		}

		var links []models.SocialLink
		if err := portfolio.SocialLinks.Decode(&links); err != nil {
			return err
		}

		result.Matched = true
		kept := links[:0]
		for _, l := range links {
			if l.Name != name {
				kept = append(kept, l)
			}
		}
		if len(kept) == len(links) {
			return nil
		}

		result.Modified = true
		return saveList(tx, &portfolio, "social_links", kept)
	})

	return result, err
}

// AddExperienceEntry appends an experience entry with a generated id
func AddExperienceEntry(db *gorm.DB, email string, entry models.ExperienceEntry) (models.ExperienceEntry, error) {
	entry.ID = uuid.NewString()

	err := db.Transaction(func(tx *gorm.DB) error {
		var portfolio models.Portfolio
		if err := lockPortfolio(tx, email, &portfolio); err != nil {
			return err
		}

		var list []models.ExperienceEntry
		if err := portfolio.Experience.Decode(&list); err != nil {
			return err
		}

		list = append(list, entry)
		return saveList(tx, &portfolio, "experience", list)
	})

	return entry, err
}

// UpdateExperienceEntry replaces the entry addressed by id
func UpdateExperienceEntry(db *gorm.DB, email, id string, entry models.ExperienceEntry) (SubdocResult, error) {
	var result SubdocResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var portfolio models.Portfolio
		if err := lockPortfolio(tx, email, &portfolio); err != nil {
			return err
		}

		var list []models.ExperienceEntry
		if err := portfolio.Experience.Decode(&list); err != nil {
			return err
		}

		result.Matched = true
		for i := range list {
			if list[i].ID == id {
				entry.ID = id
				list[i] = entry
				result.Modified = true
				return saveList(tx, &portfolio, "experience", list)
			}
		}

		// Parent matched, element absent: zero modified, no error.
		return nil
	})

	return result, err
}

// RemoveExperienceEntry deletes the entry addressed by id
func RemoveExperienceEntry(db *gorm.DB, email, id string) (SubdocResult, error) {
	var result SubdocResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var portfolio models.Portfolio
		if err := lockPortfolio(tx, email, &portfolio); err != nil {
			return err
		}

		var list []models.ExperienceEntry
		if err := portfolio.Experience.Decode(&list); err != nil {
			return err
		}

		result.Matched = true
		kept := list[:0]
		for _, e := range list {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(list) {
			return nil
		}

		result.Modified = true
		return saveList(tx, &portfolio, "experience", kept)
	})

	return result, err
}

// AddEducationEntry appends an education entry with a generated id
func AddEducationEntry(db *gorm.DB, email string, entry models.EducationEntry) (models.EducationEntry, error) {
	entry.ID = uuid.NewString()

	err := db.Transaction(func(tx *gorm.DB) error {
		var portfolio models.Portfolio
		if err := lockPortfolio(tx, email, &portfolio); err != nil {
			return err
		}

		var list []models.EducationEntry
		if err := portfolio.Education.Decode(&list); err != nil {
			return err
		}

		list = append(list, entry)
		return saveList(tx, &portfolio, "education", list)
	})

	return entry, err
}

// UpdateEducationEntry replaces the entry addressed by id
func UpdateEducationEntry(db *gorm.DB, email, id string, entry models.EducationEntry) (SubdocResult, error) {
	var result SubdocResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var portfolio models.Portfolio
		if err := lockPortfolio(tx, email, &portfolio); err != nil {
			return err
		}

		var list []models.EducationEntry
		if err := portfolio.Education.Decode(&list); err != nil {
			return err
		}

		result.Matched = true
		for i := range list {
			if list[i].ID == id {
				entry.ID = id
				list[i] = entry
				result.Modified = true
				return saveList(tx, &portfolio, "education", list)
			}
		}

		return nil
	})

	return result, err
}

// RemoveEducationEntry deletes the entry addressed by id
func RemoveEducationEntry(db *gorm.DB, email, id string) (SubdocResult, error) {
	var result SubdocResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var portfolio models.Portfolio
		if err := lockPortfolio(tx, email, &portfolio); err != nil {
			return err
		}

		var list []models.EducationEntry
		if err := portfolio.Education.Decode(&list); err != nil {
			return err
		}

		result.Matched = true
		kept := list[:0]
		for _, e := range list {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(list) {
			return nil
		}

		result.Modified = true
		return saveList(tx, &portfolio, "education", kept)
	})

	return result, err
}

// AddProjectEntry appends a project with a generated id
func AddProjectEntry(db *gorm.DB, email string, entry models.ProjectEntry) (models.ProjectEntry, error) {
	entry.ID = uuid.NewString()

	err := db.Transaction(func(tx *gorm.DB) error {
		var portfolio models.Portfolio
		if err := lockPortfolio(tx, email, &portfolio); err != nil {
			return err
		}

		var list []models.ProjectEntry
		if err := portfolio.Projects.Decode(&list); err != nil {
			return err
		}

		list = append(list, entry)
		return saveList(tx, &portfolio, "projects", list)
	})

	return entry, err
}

// UpdateProjectEntry replaces the project addressed by id
func UpdateProjectEntry(db *gorm.DB, email, id string, entry models.ProjectEntry) (SubdocResult, error) {
	var result SubdocResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var portfolio models.Portfolio
		if err := lockPortfolio(tx, email, &portfolio); err != nil {
			return err
		}

		var list []models.ProjectEntry
		if err := portfolio.Projects.Decode(&list); err != nil {
			return err
		}

		result.Matched = true
		for i := range list {
			if list[i].ID == id {
				entry.ID = id
				list[i] = entry
				result.Modified = true
				return saveList(tx, &portfolio, "projects", list)
			}
		}

		return nil
	})

	return result, err
}

// RemoveProjectEntry deletes the project addressed by id
func RemoveProjectEntry(db *gorm.DB, email, id string) (SubdocResult, error) {
	var result SubdocResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var portfolio models.Portfolio
		if err := lockPortfolio(tx, email, &portfolio); err != nil {
			return err
		}

		var list []models.ProjectEntry
		if err := portfolio.Projects.Decode(&list); err != nil {
			return err
		}

		result.Matched = true
		kept := list[:0]
		for _, e := range list {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(list) {
			return nil
		}

		result.Modified = true
		return saveList(tx, &portfolio, "projects", kept)
	})

	return result, err
}

// AddSkill adds an item under a category, creating the category on
// demand. The item is deduplicated within its category.
func AddSkill(db *gorm.DB, email, category, item string) (SubdocResult, error) {
	var result SubdocResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var portfolio models.Portfolio
		if err := lockPortfolio(tx, email, &portfolio); err != nil {
			return err
		}

		var groups []models.SkillGroup
		if err := portfolio.Skills.Decode(&groups); err != nil {
			return err
		}

		result.Matched = true
		for i := range groups {
			if groups[i].Category == category {
				for _, existing := range groups[i].Items {
					if existing == item {
						return nil
					}
				}
				groups[i].Items = append(groups[i].Items, item)
				result.Modified = true
				return saveList(tx, &portfolio, "skills", groups)
			}
		}

		groups = append(groups, models.SkillGroup{Category: category, Items: []string{item}})
		result.Modified = true
		return saveList(tx, &portfolio, "skills", groups)
	})

	return result, err
}

// RemoveSkill deletes one item from a category. An emptied category is
// removed from the list.
func RemoveSkill(db *gorm.DB, email, category, item string) (SubdocResult, error) {
	var result SubdocResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var portfolio models.Portfolio
		if err := lockPortfolio(tx, email, &portfolio); err != nil {
			return err
		}

		var groups []models.SkillGroup
		if err := portfolio.Skills.Decode(&groups); err != nil {
			return err
		}

		result.Matched = true
		for i := range groups {
			if groups[i].Category != category {
				continue
			}
			kept := groups[i].Items[:0]
			for _, existing := range groups[i].Items {
				if existing != item {
					kept = append(kept, existing)
				}
			}
			if len(kept) == len(groups[i].Items) {
				return nil
			}
			if len(kept) == 0 {
				groups = append(groups[:i], groups[i+1:]...)
			} else {
				groups[i].Items = kept
			}
			result.Modified = true
			return saveList(tx, &portfolio, "skills", groups)
		}

		return nil
	})

	return result, err
}

// RemoveSkillCategory deletes an entire category
func RemoveSkillCategory(db *gorm.DB, email, category string) (SubdocResult, error) {
	var result SubdocResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var portfolio models.Portfolio
		if err := lockPortfolio(tx, email, &portfolio); err != nil {
			return err
		}

		var groups []models.SkillGroup
		if err := portfolio.Skills.Decode(&groups); err != nil {
			return err
		}

		result.Matched = true
		kept := groups[:0]
		for _, g := range groups {
			if g.Category != category {
				kept = append(kept, g)
			}
		}
		if len(kept) == len(groups) {
			return nil
		}

		result.Modified = true
		return saveList(tx, &portfolio, "skills", kept)
	})

	return result, err
}

// lockPortfolio loads the portfolio row under a write lock so the JSON
// read-modify-write cannot interleave with a concurrent mutation.
func lockPortfolio(tx *gorm.DB, email string, portfolio *models.Portfolio) error {
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("email = ?", email).First(portfolio).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("not found")
		}
		return err
	}
	return nil
}

// saveList marshals a sub-document list back into its JSON column
func saveList(tx *gorm.DB, portfolio *models.Portfolio, column string, list interface{}) error {
	value, err := models.NewJSON(list)
	if err != nil {
		return err
	}
	return tx.Model(portfolio).Update(column, value).Error
}
