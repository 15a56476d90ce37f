package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/praylink/internal/dbx"
	"github.com/dmitrijs2005/praylink/internal/models"
)

// PostsRepository keeps the last feed snapshot per viewer, in feed order.
type PostsRepository struct {
	db *sql.DB
}

func NewPostsRepository(db *sql.DB) *PostsRepository {
	return &PostsRepository{db: db}
}

// Replace swaps the viewer's snapshot for posts in one transaction.
func (r *PostsRepository) Replace(ctx context.Context, viewerID string, posts []*models.Post) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cached_posts WHERE viewer_id = ?`, viewerID); err != nil {
			return fmt.Errorf("failed to clear cached posts: %w", err)
		}

		for i, p := range posts {
			payload, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("failed to encode post %s: %w", p.ID, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO cached_posts (viewer_id, post_id, position, payload) VALUES (?, ?, ?, ?)
				ON CONFLICT(viewer_id, post_id) DO UPDATE SET position = excluded.position, payload = excluded.payload
			`, viewerID, p.ID, i, string(payload))
			if err != nil {
				return fmt.Errorf("failed to cache post %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

// List returns the viewer's snapshot, or an empty slice when nothing is cached.
func (r *PostsRepository) List(ctx context.Context, viewerID string) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT payload FROM cached_posts WHERE viewer_id = ? ORDER BY position`, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached posts: %w", err)
	}
	defer rows.Close()

	result := []*models.Post{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan cached post: %w", err)
		}
		p := &models.Post{}
		if err := json.Unmarshal([]byte(payload), p); err != nil {
			return nil, fmt.Errorf("failed to decode cached post: %w", err)
		}
		if p.Comments == nil {
			p.Comments = []models.Comment{}
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cached posts: %w", err)
	}

	return result, nil
}

func (r *PostsRepository) Clear(ctx context.Context, viewerID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cached_posts WHERE viewer_id = ?`, viewerID); err != nil {
		return fmt.Errorf("failed to clear cached posts: %w", err)
	}
	return nil
}
