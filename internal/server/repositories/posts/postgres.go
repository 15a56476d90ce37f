package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/dbx"
	"github.com/dmitrijs2005/praylink/internal/models"
)

const postColumns = `id, user_id, author_name, author_religion, author_avatar_url, content, language,
	likes, prayers, is_miracle, is_answered, promotion_tier, promotion_expires_at, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*models.Post, error) {
	p := &models.Post{}
	var expires sql.NullTime
	if err := s.Scan(&p.ID, &p.UserID, &p.AuthorName, &p.AuthorReligion, &p.AuthorAvatarURL, &p.Content, &p.Language,
		&p.Likes, &p.Prayers, &p.IsMiracle, &p.IsAnswered, &p.PromotionTier, &expires, &p.CreatedAt); err != nil {
		return nil, err
	}
	if expires.Valid {
		t := expires.Time
		p.PromotionExpiresAt = &t
	}
	p.Comments = []models.Comment{}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query :=
		`INSERT INTO posts (user_id, author_name, author_religion, author_avatar_url, content, language,
			is_miracle, promotion_tier, promotion_expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`

	var expires sql.NullTime
	if post.PromotionExpiresAt != nil {
		expires = sql.NullTime{Time: *post.PromotionExpiresAt, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		post.UserID, post.AuthorName, post.AuthorReligion, post.AuthorAvatarURL, post.Content, post.Language,
		post.IsMiracle, post.PromotionTier, expires,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	p, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Interact(ctx context.Context, id string) (models.InteractionKind, int64, error) {
	query :=
		`UPDATE posts SET
			prayers = prayers + CASE WHEN is_miracle THEN 1 ELSE 0 END,
			likes   = likes   + CASE WHEN is_miracle THEN 0 ELSE 1 END
		 WHERE id = $1
		 RETURNING is_miracle, likes, prayers`

	var miracle bool
	var likes, prayers int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&miracle, &likes, &prayers); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", 0, common.ErrorNotFound
		}
		return "", 0, fmt.Errorf("db error: %w", err)
	}

	if miracle {
		return models.InteractionPray, prayers, nil
	}
	return models.InteractionLike, likes, nil
}

func (r *PostgresRepository) MarkAnswered(ctx context.Context, id string) error {
	query := `UPDATE posts SET is_answered = TRUE WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
