package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/google/uuid"
)

type TithesRepository struct {
	s *Store
}

func (r *TithesRepository) Create(ctx context.Context, t *models.Tithe) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, dup := r.s.refs[t.ProviderRef]; dup {
		return false, nil
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = r.s.now()

	c := *t
	r.s.tithes = append(r.s.tithes, &c)
	r.s.refs[t.ProviderRef] = struct{}{}
	return true, nil
}

func (r *TithesRepository) ListByUser(ctx context.Context, userID string) ([]*models.Tithe, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []*models.Tithe{}
	for _, t := range r.s.tithes {
		if t.UserID == userID {
			c := *t
			result = append(result, &c)
		}
	}
	slices.SortStableFunc(result, func(a, b *models.Tithe) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}
