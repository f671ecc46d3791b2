package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"daleel-backend/internal/models"
)

type NewsRepo struct {
	pool *pgxpool.Pool
}

func NewNewsRepo(pool *pgxpool.Pool) *NewsRepo {
	return &NewsRepo{pool: pool}
}

const newsColumns = `id, title, summary, body, category, source, is_important, published_at, created_at`

func (r *NewsRepo) Create(ctx context.Context, in *models.NewsInput) (*models.News, error) {
	n := &models.News{
		ID:          uuid.New(),
		Title:       in.Title,
		Summary:     in.Summary,
		Body:        in.Body,
		Category:    in.Category,
		Source:      in.Source,
		IsImportant: in.IsImportant,
	}

	query := `INSERT INTO news (id, title, summary, body, category, source, is_important)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING published_at, created_at`

	err := r.pool.QueryRow(ctx, query,
		n.ID, n.Title, n.Summary, n.Body, n.Category, n.Source, n.IsImportant,
	).Scan(&n.PublishedAt, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NewsRepo) Update(ctx context.Context, id uuid.UUID, in *models.NewsInput) (*models.News, error) {
	query := `UPDATE news SET title = $1, summary = $2, body = $3, category = $4, source = $5, is_important = $6
		WHERE id = $7 RETURNING ` + newsColumns

	n := &models.News{}
	err := r.pool.QueryRow(ctx, query,
		in.Title, in.Summary, in.Body, in.Category, in.Source, in.IsImportant, id,
	).Scan(&n.ID, &n.Title, &n.Summary, &n.Body, &n.Category, &n.Source, &n.IsImportant, &n.PublishedAt, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NewsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	return err
}

func (r *NewsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.News, error) {
	n := &models.News{}
	err := r.pool.QueryRow(ctx, `SELECT `+newsColumns+` FROM news WHERE id = $1`, id).Scan(
		&n.ID, &n.Title, &n.Summary, &n.Body, &n.Category, &n.Source, &n.IsImportant, &n.PublishedAt, &n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// List returns news newest first. search filters on title/summary/source,
// category on the explicit category column.
func (r *NewsRepo) List(ctx context.Context, search, category string) ([]*models.News, error) {
	query := `SELECT ` + newsColumns + ` FROM news WHERE TRUE`
	args := []interface{}{}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += ` AND (title ILIKE $1 OR summary ILIKE $1 OR source ILIKE $1)`
	}
	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	query += ` ORDER BY is_important DESC, published_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.News
	for rows.Next() {
		n := &models.News{}
		if err := rows.Scan(&n.ID, &n.Title, &n.Summary, &n.Body, &n.Category, &n.Source, &n.IsImportant, &n.PublishedAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}
