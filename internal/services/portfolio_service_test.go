package services_test

import (
	"testing"

	"github.com/eminenthub/eminenthub-api/internal/models"
	"github.com/eminenthub/eminenthub-api/internal/services"
)

func TestAddExperienceEntry(t *testing.T) {
	db := setupTestDB(t)
	if _, err := services.SyncUser(db, services.SyncUserInput{Email: "jane@example.com"}); err != nil {
		t.Fatalf("SyncUser failed: %v", err)
	}

	entry, err := services.AddExperienceEntry(db, "jane@example.com", models.ExperienceEntry{
		Company: "Acme",
		Title:   "Engineer",
	})
	if err != nil {
		t.Fatalf("AddExperienceEntry failed: %v", err)
	}
	if entry.ID == "" {
		t.Fatal("Expected a generated id")
	}

	portfolio, err := services.GetPortfolio(db, "jane@example.com")
	if err != nil {
		t.Fatalf("GetPortfolio failed: %v", err)
	}

	var list []models.ExperienceEntry
	if err := portfolio.Experience.Decode(&list); err != nil {
		t.Fatalf("Failed to decode experience: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(list))
	}
	if list[0].ID != entry.ID || list[0].Company != "Acme" {
		t.Errorf("Stored entry mismatch: %+v", list[0])
	}
}

func TestAddExperienceEntry_UniqueIDs(t *testing.T) {
	db := setupTestDB(t)
	if _, err := services.SyncUser(db, services.SyncUserInput{Email: "jane@example.com"}); err != nil {
		t.Fatalf("SyncUser failed: %v", err)
	}

	first, err := services.AddExperienceEntry(db, "jane@example.com", models.ExperienceEntry{Company: "Acme"})
	if err != nil {
		t.Fatalf("First add failed: %v", err)
	}
	second, err := services.AddExperienceEntry(db, "jane@example.com", models.ExperienceEntry{Company: "Globex"})
	if err != nil {
		t.Fatalf("Second add failed: %v", err)
	}
	if first.ID == second.ID {
		t.Errorf("Generated ids collide: %s", first.ID)
	}
}

func TestUpdateExperienceEntry_MissingElement(t *testing.T) {
	db := setupTestDB(t)
	if _, err := services.SyncUser(db, services.SyncUserInput{Email: "jane@example.com"}); err != nil {
		t.Fatalf("SyncUser failed: %v", err)
	}

	result, err := services.UpdateExperienceEntry(db, "jane@example.com", "no-such-id", models.ExperienceEntry{Company: "Acme"})
	if err != nil {
		t.Fatalf("UpdateExperienceEntry failed: %v", err)
	}
	if !result.Matched {
		t.Error("Expected matched=true when the portfolio exists")
	}
	if result.Modified {
		t.Error("Expected modified=false for a missing element")
	}
}

func TestRemoveExperienceEntry_MissingParent(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.RemoveExperienceEntry(db, "ghost@example.com", "some-id")
	if err == nil || err.Error() != "not found" {
		t.Errorf("Expected 'not found', got %v", err)
	}
}

func TestRemoveExperienceEntry(t *testing.T) {
	db := setupTestDB(t)
	if _, err := services.SyncUser(db, services.SyncUserInput{Email: "jane@example.com"}); err != nil {
		t.Fatalf("SyncUser failed: %v", err)
	}

	entry, err := services.AddExperienceEntry(db, "jane@example.com", models.ExperienceEntry{Company: "Acme"})
	if err != nil {
		t.Fatalf("AddExperienceEntry failed: %v", err)
	}

	result, err := services.RemoveExperienceEntry(db, "jane@example.com", entry.ID)
	if err != nil {
		t.Fatalf("RemoveExperienceEntry failed: %v", err)
	}
	if !result.Matched || !result.Modified {
		t.Errorf("Expected matched and modified, got %+v", result)
	}

	portfolio, _ := services.GetPortfolio(db, "jane@example.com")
	var list []models.ExperienceEntry
	if err := portfolio.Experience.Decode(&list); err != nil {
		t.Fatalf("Failed to decode experience: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected empty list, got %d entries", len(list))
	}
}

func TestSetSocialLink_Upsert(t *testing.T) {
	db := setupTestDB(t)
	if _, err := services.SyncUser(db, services.SyncUserInput{Email: "jane@example.com"}); err != nil {
		t.Fatalf("SyncUser failed: %v", err)
	}

	if _, err := services.SetSocialLink(db, "jane@example.com", models.SocialLink{
		Name: "github", URL: "https://github.com/jane",
	}); err != nil {
		t.Fatalf("First SetSocialLink failed: %v", err)
	}

	// Same name replaces instead of appending.
	if _, err := services.SetSocialLink(db, "jane@example.com", models.SocialLink{
		Name: "github", URL: "https://github.com/janedoe",
	}); err != nil {
		t.Fatalf("Second SetSocialLink failed: %v", err)
	}

	portfolio, _ := services.GetPortfolio(db, "jane@example.com")
	var links []models.SocialLink
	if err := portfolio.SocialLinks.Decode(&links); err != nil {
		t.Fatalf("Failed to decode social links: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("Expected 1 link, got %d", len(links))
	}
	if links[0].URL != "https://github.com/janedoe" {
		t.Errorf("Expected replaced URL, got %q", links[0].URL)
	}
}

func TestSetSocialLink_IdenticalIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	if _, err := services.SyncUser(db, services.SyncUserInput{Email: "jane@example.com"}); err != nil {
		t.Fatalf("SyncUser failed: %v", err)
	}

	link := models.SocialLink{Name: "github", URL: "https://github.com/jane"}
	if _, err := services.SetSocialLink(db, "jane@example.com", link); err != nil {
		t.Fatalf("First SetSocialLink failed: %v", err)
	}

	// Re-sending the stored link matches without modifying.
	result, err := services.SetSocialLink(db, "jane@example.com", link)
	if err != nil {
		t.Fatalf("Second SetSocialLink failed: %v", err)
	}
	if !result.Matched || result.Modified {
		t.Errorf("Expected matched without modified, got %+v", result)
	}
}

func TestRemoveSocialLink_Missing(t *testing.T) {
	db := setupTestDB(t)
	if _, err := services.SyncUser(db, services.SyncUserInput{Email: "jane@example.com"}); err != nil {
		t.Fatalf("SyncUser failed: %v", err)
	}

	result, err := services.RemoveSocialLink(db, "jane@example.com", "twitter")
	if err != nil {
		t.Fatalf("RemoveSocialLink failed: %v", err)
	}
	if !result.Matched || result.Modified {
		t.Errorf("Expected matched without modified, got %+v", result)
	}
}

func TestSkillRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	if _, err := services.SyncUser(db, services.SyncUserInput{Email: "jane@example.com"}); err != nil {
		t.Fatalf("SyncUser failed: %v", err)
	}

	if _, err := services.AddSkill(db, "jane@example.com", "Languages", "Go"); err != nil {
		t.Fatalf("AddSkill failed: %v", err)
	}
	// Duplicate item is a no-op.
	result, err := services.AddSkill(db, "jane@example.com", "Languages", "Go")
	if err != nil {
		t.Fatalf("Duplicate AddSkill failed: %v", err)
	}
	if result.Modified {
		t.Error("Duplicate item should not modify")
	}

	portfolio, _ := services.GetPortfolio(db, "jane@example.com")
	var groups []models.SkillGroup
	if err := portfolio.Skills.Decode(&groups); err != nil {
		t.Fatalf("Failed to decode skills: %v", err)
	}
	if len(groups) != 1 || groups[0].Category != "Languages" {
		t.Fatalf("Unexpected groups: %+v", groups)
	}
	if len(groups[0].Items) != 1 || groups[0].Items[0] != "Go" {
		t.Errorf("Expected item exactly once, got %v", groups[0].Items)
	}
}

func TestRemoveSkill_EmptiesCategory(t *testing.T) {
	db := setupTestDB(t)
	if _, err := services.SyncUser(db, services.SyncUserInput{Email: "jane@example.com"}); err != nil {
		t.Fatalf("SyncUser failed: %v", err)
	}

	if _, err := services.AddSkill(db, "jane@example.com", "Languages", "Go"); err != nil {
		t.Fatalf("AddSkill failed: %v", err)
	}

	result, err := services.RemoveSkill(db, "jane@example.com", "Languages", "Go")
	if err != nil {
		t.Fatalf("RemoveSkill failed: %v", err)
	}
	if !result.Modified {
		t.Error("Expected modification")
	}

	portfolio, _ := services.GetPortfolio(db, "jane@example.com")
	var groups []models.SkillGroup
	if err := portfolio.Skills.Decode(&groups); err != nil {
		t.Fatalf("Failed to decode skills: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("Expected emptied category to disappear, got %+v", groups)
	}
}

func TestUpdatePortfolioInfo(t *testing.T) {
	db := setupTestDB(t)
	if _, err := services.SyncUser(db, services.SyncUserInput{Email: "jane@example.com"}); err != nil {
		t.Fatalf("SyncUser failed: %v", err)
	}

	title := "Principal Engineer"
	bio := "Distributed systems"
	portfolio, err := services.UpdatePortfolioInfo(db, "jane@example.com", services.PortfolioInfoInput{
		Title: &title,
		Bio:   &bio,
	})
	if err != nil {
		t.Fatalf("UpdatePortfolioInfo failed: %v", err)
	}
	if portfolio.Title != title || portfolio.Bio != bio {
		t.Errorf("Scalar fields not applied: %+v", portfolio)
	}
}
