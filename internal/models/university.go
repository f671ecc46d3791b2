package models

import (
	"time"

	"github.com/google/uuid"
)

type University struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	NameEn      string    `json:"name_en"`
	City        string    `json:"city"`
	Established *int      `json:"established"`
	Description *string   `json:"description"`
	LogoURL     *string   `json:"logo_url"`
	BannerURL   *string   `json:"banner_url"`
	Website     *string   `json:"website"`
	CreatedAt   time.Time `json:"created_at"`
}

type Branch struct {
	ID           uuid.UUID `json:"id"`
	UniversityID uuid.UUID `json:"university_id"`
	Name         string    `json:"name"`
	City         string    `json:"city"`
	Faculties    []Faculty `json:"faculties,omitempty"`
}

// Faculty types as stored in the faculties.type column.
const (
	FacultyTypeFaculty            = "faculty"
	FacultyTypeTechnicalInstitute = "technical_institute"
	FacultyTypeHigherInstitute    = "higher_institute"
)

type Faculty struct {
	ID           uuid.UUID  `json:"id"`
	UniversityID uuid.UUID  `json:"university_id"`
	BranchID     *uuid.UUID `json:"branch_id"`
	Name         string     `json:"name"`
	NameEn       *string    `json:"name_en"`
	Type         string     `json:"type"`
	Majors       []Major    `json:"majors,omitempty"`
}

type Major struct {
	ID        uuid.UUID `json:"id"`
	FacultyID uuid.UUID `json:"faculty_id"`
	Name      string    `json:"name"`
	NameEn    *string   `json:"name_en"`
}

// MajorListing is the flat row returned by GET /majors: a major together
// with the faculty and university it belongs to.
type MajorListing struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	NameEn         *string   `json:"name_en"`
	FacultyName    string    `json:"faculty_name"`
	UniversityName string    `json:"university_name"`
}

// UniversityDetails is the GET /universities/{id} payload: main-campus
// faculties carry their majors, branch faculties hang off their branch.
type UniversityDetails struct {
	University
	Faculties []Faculty `json:"faculties"`
	Branches  []Branch  `json:"branches"`
}
