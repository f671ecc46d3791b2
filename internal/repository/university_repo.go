package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"daleel-backend/internal/models"
)

type UniversityRepo struct {
	pool *pgxpool.Pool
}

func NewUniversityRepo(pool *pgxpool.Pool) *UniversityRepo {
	return &UniversityRepo{pool: pool}
}

const universityColumns = `id, name, name_en, city, established, description, logo_url, banner_url, website, created_at`

func scanUniversity(row pgx.Row) (*models.University, error) {
	u := &models.University{}
	err := row.Scan(
		&u.ID, &u.Name, &u.NameEn, &u.City, &u.Established, &u.Description,
		&u.LogoURL, &u.BannerURL, &u.Website, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// List returns universities, newest first. A non-empty search filters on
// Arabic name, English name and city.
func (r *UniversityRepo) List(ctx context.Context, search string) ([]*models.University, error) {
	query := `SELECT ` + universityColumns + ` FROM universities`
	args := []interface{}{}
	if search != "" {
		query += ` WHERE name ILIKE $1 OR name_en ILIKE $1 OR city ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var universities []*models.University
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, err
		}
		universities = append(universities, u)
	}
	return universities, rows.Err()
}

func (r *UniversityRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.University, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+universityColumns+` FROM universities WHERE id = $1`, id)
	return scanUniversity(row)
}

// GetDetails loads one university with its main-campus faculties (branch_id
// IS NULL) and its branches, majors nested under each faculty.
func (r *UniversityRepo) GetDetails(ctx context.Context, id uuid.UUID) (*models.UniversityDetails, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	faculties, err := r.listFaculties(ctx, "university_id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to load faculties: %w", err)
	}

	branches, err := r.listBranches(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load branches: %w", err)
	}

	details := &models.UniversityDetails{University: *u, Faculties: []models.Faculty{}, Branches: branches}
	byBranch := make(map[uuid.UUID]int)
	for i := range branches {
		byBranch[branches[i].ID] = i
	}
	for _, f := range faculties {
		if f.BranchID == nil {
			details.Faculties = append(details.Faculties, f)
			continue
		}
		if i, ok := byBranch[*f.BranchID]; ok {
			details.Branches[i].Faculties = append(details.Branches[i].Faculties, f)
		}
	}
	return details, nil
}

// ListCatalog returns every university fully nested. The assistant rebuilds
// its prompt context from this on each request; nothing is cached.
func (r *UniversityRepo) ListCatalog(ctx context.Context) ([]*models.UniversityDetails, error) {
	universities, err := r.List(ctx, "")
	if err != nil {
		return nil, err
	}

	faculties, err := r.listFaculties(ctx, "TRUE")
	if err != nil {
		return nil, fmt.Errorf("failed to load faculties: %w", err)
	}

	catalog := make([]*models.UniversityDetails, len(universities))
	byUniversity := make(map[uuid.UUID]*models.UniversityDetails, len(universities))
	for i, u := range universities {
		catalog[i] = &models.UniversityDetails{University: *u, Faculties: []models.Faculty{}}
		byUniversity[u.ID] = catalog[i]
	}

	// The prompt context flattens branch faculties into their university, so
	// branch grouping is not rebuilt here.
	for _, f := range faculties {
		if d, ok := byUniversity[f.UniversityID]; ok {
			d.Faculties = append(d.Faculties, f)
		}
	}
	return catalog, nil
}

// ListFacultiesByUniversity feeds the profile form's cascading selects.
func (r *UniversityRepo) ListFacultiesByUniversity(ctx context.Context, universityID uuid.UUID) ([]models.Faculty, error) {
	return r.listFaculties(ctx, "university_id = $1", universityID)
}

func (r *UniversityRepo) ListMajorsByFaculty(ctx context.Context, facultyID uuid.UUID) ([]models.Major, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, faculty_id, name, name_en FROM majors WHERE faculty_id = $1 ORDER BY name`, facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMajors(rows)
}

// ListMajors returns the flat catalog of majors with owning faculty and
// university names.
func (r *UniversityRepo) ListMajors(ctx context.Context, search string) ([]models.MajorListing, error) {
	query := `SELECT m.id, m.name, m.name_en, f.name, u.name
		FROM majors m
		JOIN faculties f ON f.id = m.faculty_id
		JOIN universities u ON u.id = f.university_id`
	args := []interface{}{}
	if search != "" {
		query += ` WHERE m.name ILIKE $1 OR m.name_en ILIKE $1 OR f.name ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY u.name, f.name, m.name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []models.MajorListing
	for rows.Next() {
		var l models.MajorListing
		if err := rows.Scan(&l.ID, &l.Name, &l.NameEn, &l.FacultyName, &l.UniversityName); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// listFaculties loads faculties matching the given WHERE clause with their
// majors attached in one extra query.
func (r *UniversityRepo) listFaculties(ctx context.Context, where string, args ...interface{}) ([]models.Faculty, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, university_id, branch_id, name, name_en, type FROM faculties WHERE `+where+` ORDER BY name`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var faculties []models.Faculty
	byID := make(map[uuid.UUID]int)
	for rows.Next() {
		var f models.Faculty
		if err := rows.Scan(&f.ID, &f.UniversityID, &f.BranchID, &f.Name, &f.NameEn, &f.Type); err != nil {
			return nil, err
		}
		f.Majors = []models.Major{}
		byID[f.ID] = len(faculties)
		faculties = append(faculties, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(faculties) == 0 {
		return faculties, nil
	}

	ids := make([]uuid.UUID, 0, len(faculties))
	for _, f := range faculties {
		ids = append(ids, f.ID)
	}
	majorRows, err := r.pool.Query(ctx,
		`SELECT id, faculty_id, name, name_en FROM majors WHERE faculty_id = ANY($1) ORDER BY name`, ids)
	if err != nil {
		return nil, err
	}
	defer majorRows.Close()

	majors, err := scanMajors(majorRows)
	if err != nil {
		return nil, err
	}
	for _, m := range majors {
		if i, ok := byID[m.FacultyID]; ok {
			faculties[i].Majors = append(faculties[i].Majors, m)
		}
	}
	return faculties, nil
}

func (r *UniversityRepo) listBranches(ctx context.Context, universityID uuid.UUID) ([]models.Branch, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, university_id, name, city FROM branches WHERE university_id = $1 ORDER BY name`, universityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []models.Branch
	for rows.Next() {
		var b models.Branch
		if err := rows.Scan(&b.ID, &b.UniversityID, &b.Name, &b.City); err != nil {
			return nil, err
		}
		b.Faculties = []models.Faculty{}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

func scanMajors(rows pgx.Rows) ([]models.Major, error) {
	var majors []models.Major
	for rows.Next() {
		var m models.Major
		if err := rows.Scan(&m.ID, &m.FacultyID, &m.Name, &m.NameEn); err != nil {
			return nil, err
		}
		majors = append(majors, m)
	}
	return majors, rows.Err()
}
