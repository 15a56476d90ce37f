package comments

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/praylink/internal/dbx"
	"github.com/dmitrijs2005/praylink/internal/models"
)

const commentColumns = `id, post_id, user_id, author_name, author_avatar_url, content, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	query :=
		`INSERT INTO comments (post_id, user_id, author_name, author_avatar_url, content)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, c.PostID, c.UserID, c.AuthorName, c.AuthorAvatarURL, c.Content).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments ORDER BY created_at, id`
	return r.query(ctx, query)
}

func (r *PostgresRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY created_at, id`
	return r.query(ctx, query, postID)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanComments(rows)
}

func scanComments(rows *sql.Rows) ([]models.Comment, error) {
	result := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.AuthorName, &c.AuthorAvatarURL, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
