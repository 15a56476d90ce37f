// Package feed holds the pure feed-composition rules: ordering by promotion
// tier and recency, the community/all view filter and author visibility.
// Nothing here talks to a store.
package feed

import (
	"slices"

	"github.com/dmitrijs2005/praylink/internal/models"
)

// Sort orders posts in place: higher promotion tier first, then newer first.
// Equal posts fall back to id so the order is deterministic.
func Sort(posts []*models.Post) {
	slices.SortStableFunc(posts, compare)
}

// Sorted returns a sorted copy of posts.
func Sorted(posts []*models.Post) []*models.Post {
	out := slices.Clone(posts)
	Sort(out)
	return out
}

func compare(a, b *models.Post) int {
	if ra, rb := a.PromotionTier.Rank(), b.PromotionTier.Rank(); ra != rb {
		return rb - ra
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}
