package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/praylink/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the password of every seeded demo account.
const DemoPassword = "praylink-demo"

// Seed loads three demo members and two posts. It is meant for a fresh store.
func Seed(ctx context.Context, s *Store) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	users := []*models.User{
		{
			ID: "u1", FirstName: "Sarah", LastName: "Jenkins", Email: "sarah@example.com",
			DateOfBirth: "1985-04-12", Nationality: "United States", Gender: "Female",
			Religion: models.Christianity, Visibility: models.VisibilityPublic, Language: models.English,
			AvatarURL: "https://picsum.photos/150/150?random=1", IsPremium: true,
		},
		{
			ID: "u2", FirstName: "Ahmed", LastName: "Hassan", Email: "ahmed@example.com",
			DateOfBirth: "1990-08-23", Nationality: "Egypt", Gender: "Male",
			Religion: models.Islam, Visibility: models.VisibilitySameReligion, Language: models.Arabic,
			AvatarURL: "https://picsum.photos/150/150?random=2",
		},
		{
			ID: "u3", FirstName: "David", LastName: "Cohen", Email: "david@example.com",
			DateOfBirth: "1982-11-05", Nationality: "Israel", Gender: "Male",
			Religion: models.Judaism, Visibility: models.VisibilityPublic, Language: models.Hebrew,
			AvatarURL: "https://picsum.photos/150/150?random=3",
		},
	}

	ur := s.Users()
	for _, u := range users {
		u.PasswordHash = hash
		if _, err := ur.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	now := s.now()
	posts := []*models.Post{
		{
			ID: "p0", UserID: "u1", AuthorName: "Sarah Jenkins", AuthorReligion: models.Christianity,
			AuthorAvatarURL: users[0].AvatarURL, Language: models.English,
			Content:   "Feeling blessed today! The community service went great.",
			CreatedAt: now.Add(-time.Hour), Likes: 12, PromotionTier: models.TierNone,
		},
		{
			ID: "p1", UserID: "u2", AuthorName: "Ahmed Hassan", AuthorReligion: models.Islam,
			AuthorAvatarURL: users[1].AvatarURL, Language: models.Arabic,
			Content:   "Wishing peace and prosperity to all during this holy time.",
			CreatedAt: now.Add(-2 * time.Hour), Likes: 24, PromotionTier: models.TierNone,
		},
	}

	pr := s.Posts()
	for _, p := range posts {
		if _, err := pr.Create(ctx, p); err != nil {
			return fmt.Errorf("seed post %s: %w", p.ID, err)
		}
	}

	return nil
}
