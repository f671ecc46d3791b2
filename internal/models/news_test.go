package models

import "testing"

func TestNewsCategoryLabels_CoverAllCategories(t *testing.T) {
	categories := []string{
		NewsCategoryAdmission,
		NewsCategoryExam,
		NewsCategoryScholarship,
		NewsCategoryAnnouncement,
		NewsCategoryGeneral,
	}

	for _, category := range categories {
		if label, ok := NewsCategoryLabels[category]; !ok || label == "" {
			t.Errorf("Expected Arabic label for category %q", category)
		}
	}
}

func TestValidNewsCategory(t *testing.T) {
	if !ValidNewsCategory(NewsCategoryExam) {
		t.Error("Expected exam to be a valid category")
	}
	for _, bad := range []string{"", "sports", "EXAM"} {
		if ValidNewsCategory(bad) {
			t.Errorf("Expected %q to be rejected", bad)
		}
	}
}
