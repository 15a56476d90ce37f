package feed

import (
	"fmt"

	"github.com/dmitrijs2005/praylink/internal/models"
)

// Mode selects which slice of the fetched feed a viewer sees.
type Mode string

const (
	// ModeCommunity keeps same-religion, circle and own posts.
	ModeCommunity Mode = "community"
	// ModeAll keeps everything.
	ModeAll Mode = "all"
)

// ParseMode converts user input into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCommunity, ModeAll:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown feed mode %q", s)
}

// Keep reports whether post belongs to the viewer's view in the given mode.
func Keep(post *models.Post, mode Mode, viewer *models.User) bool {
	if mode != ModeCommunity || viewer == nil {
		return true
	}
	return post.AuthorReligion == viewer.Religion ||
		viewer.InCircle(post.UserID) ||
		post.UserID == viewer.ID
}

// Filter returns the posts kept by Keep, preserving order.
func Filter(posts []*models.Post, mode Mode, viewer *models.User) []*models.Post {
	out := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if Keep(p, mode, viewer) {
			out = append(out, p)
		}
	}
	return out
}
