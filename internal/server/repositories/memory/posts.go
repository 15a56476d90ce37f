package memory

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/google/uuid"
)

type PostsRepository struct {
	s *Store
}

func (r *PostsRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = r.s.now()
	}

	stored := post.Clone()
	stored.Comments = nil
	r.s.posts[post.ID] = stored

	return post, nil
}

func (r *PostsRepository) List(ctx context.Context) ([]*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*models.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		c := p.Clone()
		c.Comments = []models.Comment{}
		result = append(result, c)
	}
	return result, nil
}

func (r *PostsRepository) Get(ctx context.Context, id string) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := p.Clone()
	c.Comments = []models.Comment{}
	return c, nil
}

func (r *PostsRepository) Interact(ctx context.Context, id string) (models.InteractionKind, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return "", 0, common.ErrorNotFound
	}
	n := p.InteractionCount() + 1
	p.SetInteractionCount(n)
	return p.InteractionKind(), n, nil
}

func (r *PostsRepository) MarkAnswered(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.IsAnswered = true
	return nil
}

type CommentsRepository struct {
	s *Store
}

func (r *CommentsRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[c.PostID]; !ok {
		return nil, common.ErrorNotFound
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = r.s.now()
	r.s.comments = append(r.s.comments, *c)
	return c, nil
}

func (r *CommentsRepository) List(ctx context.Context) ([]models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := slices.Clone(r.s.comments)
	if result == nil {
		result = []models.Comment{}
	}
	return result, nil
}

func (r *CommentsRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []models.Comment{}
	for _, c := range r.s.comments {
		if c.PostID == postID {
			result = append(result, c)
		}
	}
	return result, nil
}
