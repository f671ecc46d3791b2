package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the student's academic profile. UserID comes from the external
// auth provider's token; everything else is optional and user-editable.
type Profile struct {
	UserID       uuid.UUID  `json:"user_id"`
	FullName     *string    `json:"full_name"`
	Phone        *string    `json:"phone"`
	City         *string    `json:"city"`
	UniversityID *uuid.UUID `json:"university_id"`
	FacultyID    *uuid.UUID `json:"faculty_id"`
	MajorID      *uuid.UUID `json:"major_id"`
	AcademicYear *string    `json:"academic_year"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ProfileInput struct {
	FullName     *string    `json:"full_name"`
	Phone        *string    `json:"phone"`
	City         *string    `json:"city"`
	UniversityID *uuid.UUID `json:"university_id"`
	FacultyID    *uuid.UUID `json:"faculty_id"`
	MajorID      *uuid.UUID `json:"major_id"`
	AcademicYear *string    `json:"academic_year"`
}

// Like targets.
const (
	LikeTargetUniversity = "university"
	LikeTargetNews       = "news"
)

type Like struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	TargetType string    `json:"target_type"`
	TargetID   uuid.UUID `json:"target_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type LikeStatus struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}
