// Package posts stores feed posts and their interaction counters.
package posts

import (
	"context"

	"github.com/dmitrijs2005/praylink/internal/models"
)

type Repository interface {
	// Create stores the post and fills in its id and creation time.
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	// List returns every post without comments, in no particular order.
	List(ctx context.Context) ([]*models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	// Interact atomically bumps prayers on a miracle post and likes on any
	// other post, returning which counter moved and its new value.
	Interact(ctx context.Context, id string) (models.InteractionKind, int64, error)
	MarkAnswered(ctx context.Context, id string) error
}
