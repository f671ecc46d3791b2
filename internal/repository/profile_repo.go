package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"daleel-backend/internal/models"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileColumns = `user_id, full_name, phone, city, university_id, faculty_id, major_id, academic_year, updated_at`

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	p := &models.Profile{}
	err := r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID).Scan(
		&p.UserID, &p.FullName, &p.Phone, &p.City,
		&p.UniversityID, &p.FacultyID, &p.MajorID, &p.AcademicYear, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Upsert creates the profile on first save and overwrites it afterwards.
func (r *ProfileRepo) Upsert(ctx context.Context, userID uuid.UUID, in *models.ProfileInput) (*models.Profile, error) {
	query := `INSERT INTO profiles (user_id, full_name, phone, city, university_id, faculty_id, major_id, academic_year)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			city = EXCLUDED.city,
			university_id = EXCLUDED.university_id,
			faculty_id = EXCLUDED.faculty_id,
			major_id = EXCLUDED.major_id,
			academic_year = EXCLUDED.academic_year,
			updated_at = NOW()
		RETURNING ` + profileColumns

	p := &models.Profile{}
	err := r.pool.QueryRow(ctx, query,
		userID, in.FullName, in.Phone, in.City,
		in.UniversityID, in.FacultyID, in.MajorID, in.AcademicYear,
	).Scan(
		&p.UserID, &p.FullName, &p.Phone, &p.City,
		&p.UniversityID, &p.FacultyID, &p.MajorID, &p.AcademicYear, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
