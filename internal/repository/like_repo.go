package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"daleel-backend/internal/models"
)

// likeStore is the slice of the pool Toggle and Status need.
type likeStore interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type LikeRepo struct {
	db likeStore
}

func NewLikeRepo(pool *pgxpool.Pool) *LikeRepo {
	return &LikeRepo{db: pool}
}

// Toggle adds the like if absent, removes it if present, and returns the
// resulting status with the fresh count. The insert tolerates a concurrent
// toggle on the same (user, target) pair: the unique constraint resolves the
// race and the loser reports not-liked instead of failing.
func (r *LikeRepo) Toggle(ctx context.Context, userID uuid.UUID, targetType string, targetID uuid.UUID) (*models.LikeStatus, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND target_type = $2 AND target_id = $3`,
		userID, targetType, targetID)
	if err != nil {
		return nil, err
	}

	liked := false
	if tag.RowsAffected() == 0 {
		insTag, err := r.db.Exec(ctx,
			`INSERT INTO likes (id, user_id, target_type, target_id) VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, target_type, target_id) DO NOTHING`,
			uuid.New(), userID, targetType, targetID)
		if err != nil {
			return nil, err
		}
		liked = insTag.RowsAffected() == 1
	}

	count, err := r.Count(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}
	return &models.LikeStatus{Liked: liked, LikesCount: count}, nil
}

func (r *LikeRepo) Status(ctx context.Context, userID uuid.UUID, targetType string, targetID uuid.UUID) (*models.LikeStatus, error) {
	var liked bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE user_id = $1 AND target_type = $2 AND target_id = $3)`,
		userID, targetType, targetID).Scan(&liked)
	if err != nil {
		return nil, err
	}

	count, err := r.Count(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}
	return &models.LikeStatus{Liked: liked, LikesCount: count}, nil
}

func (r *LikeRepo) Count(ctx context.Context, targetType string, targetID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM likes WHERE target_type = $1 AND target_id = $2`,
		targetType, targetID).Scan(&count)
	return count, err
}
