package feed

import "github.com/dmitrijs2005/praylink/internal/models"

// VisibleTo applies the author's visibility preference. Authors who chose
// same-religion-only are hidden from viewers of other faiths. A missing
// author record never hides a post.
func VisibleTo(author, viewer *models.User) bool {
	if author == nil || viewer == nil {
		return true
	}
	if author.ID == viewer.ID {
		return true
	}
	if author.Visibility == models.VisibilitySameReligion {
		return author.Religion == viewer.Religion
	}
	return true
}
