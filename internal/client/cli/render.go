package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/praylink/internal/client/session"
	"github.com/dmitrijs2005/praylink/internal/models"
)

const timeLayout = "2006-01-02 15:04"

func renderPost(ctx context.Context, s *session.Session, n int, p *models.Post) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%d] %s (%s) %s", n, p.AuthorName, p.AuthorReligion, p.CreatedAt.Local().Format(timeLayout))
	if p.IsMiracle {
		b.WriteString("  MIRACLE REQUEST")
		if p.PromotionTier.Promoted() {
			fmt.Fprintf(&b, " [%s]", p.PromotionTier)
		}
		if p.IsAnswered {
			b.WriteString(" ANSWERED")
		}
	}
	fmt.Fprintf(&b, "\n    %s\n", s.DisplayContent(ctx, p))

	mark := ""
	if s.HasInteracted(p.ID) {
		mark = " (you)"
	}
	if p.IsMiracle {
		fmt.Fprintf(&b, "    prayers: %d%s  comments: %d", p.Prayers, mark, len(p.Comments))
	} else {
		fmt.Fprintf(&b, "    likes: %d%s  comments: %d", p.Likes, mark, len(p.Comments))
	}
	for _, c := range p.Comments {
		fmt.Fprintf(&b, "\n      - %s: %s", c.AuthorName, c.Content)
	}
	return b.String()
}

func renderProfile(u *models.User) string {
	if u == nil {
		return "not signed in"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s <%s>\n", u.Name(), u.Email)
	fmt.Fprintf(&b, "  id: %s\n", u.ID)
	fmt.Fprintf(&b, "  religion: %s, language: %s, visibility: %s\n", u.Religion, u.Language, u.Visibility)
	if u.AvatarURL != "" {
		fmt.Fprintf(&b, "  avatar: %s\n", u.AvatarURL)
	}
	fmt.Fprintf(&b, "  circle: %d members", len(u.CircleIDs))
	if u.IsPremium {
		b.WriteString("\n  premium member")
	}
	return b.String()
}

// formatAmount renders minor units as "10.50".
func formatAmount(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}
