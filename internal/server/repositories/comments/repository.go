// Package comments stores append-only replies to posts.
package comments

import (
	"context"

	"github.com/dmitrijs2005/praylink/internal/models"
)

type Repository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	// List returns every comment, oldest first.
	List(ctx context.Context) ([]models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
}
