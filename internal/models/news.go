package models

import (
	"time"

	"github.com/google/uuid"
)

// News categories as stored in the news.category column.
const (
	NewsCategoryAdmission    = "admission"
	NewsCategoryExam         = "exam"
	NewsCategoryScholarship  = "scholarship"
	NewsCategoryAnnouncement = "announcement"
	NewsCategoryGeneral      = "general"
)

// NewsCategoryLabels maps a category to its Arabic display label. Rendering
// keys off the explicit category field, never off keyword scanning.
var NewsCategoryLabels = map[string]string{
	NewsCategoryAdmission:    "قبول جامعي",
	NewsCategoryExam:         "امتحانات",
	NewsCategoryScholarship:  "منح دراسية",
	NewsCategoryAnnouncement: "إعلانات",
	NewsCategoryGeneral:      "عام",
}

func ValidNewsCategory(category string) bool {
	_, ok := NewsCategoryLabels[category]
	return ok
}

type News struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Body        *string   `json:"body"`
	Category    string    `json:"category"`
	Source      string    `json:"source"`
	IsImportant bool      `json:"is_important"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}

type NewsInput struct {
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	Body        *string `json:"body"`
	Category    string  `json:"category"`
	Source      string  `json:"source"`
	IsImportant bool    `json:"is_important"`
}
