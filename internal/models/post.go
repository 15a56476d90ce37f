package models

import (
	"slices"
	"time"
)

// Post is a feed item. Author fields are a snapshot taken at creation time
// and are not re-synced when the profile changes.
type Post struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	AuthorName      string        `json:"author_name"`
	AuthorReligion  Religion      `json:"author_religion"`
	AuthorAvatarURL string        `json:"author_avatar_url"`
	Content         string        `json:"content"`
	Language        Language      `json:"language"`
	CreatedAt       time.Time     `json:"created_at"`
	Likes           int64         `json:"likes"`
	Prayers         int64         `json:"prayers"`
	IsMiracle       bool          `json:"is_miracle"`
	IsAnswered      bool          `json:"is_answered"`
	PromotionTier   PromotionTier `json:"promotion_tier"`
	// PromotionExpiresAt is recorded but not consulted by feed ordering.
	PromotionExpiresAt *time.Time `json:"promotion_expires_at,omitempty"`
	Comments           []Comment  `json:"comments"`
}

// InteractionKind picks the counter an interaction targets: prayers for
// miracle requests, likes otherwise.
func (p *Post) InteractionKind() InteractionKind {
	if p.IsMiracle {
		return InteractionPray
	}
	return InteractionLike
}

// InteractionCount returns the counter matching InteractionKind.
func (p *Post) InteractionCount() int64 {
	if p.IsMiracle {
		return p.Prayers
	}
	return p.Likes
}

// SetInteractionCount overwrites the counter matching InteractionKind.
func (p *Post) SetInteractionCount(n int64) {
	if p.IsMiracle {
		p.Prayers = n
		return
	}
	p.Likes = n
}

// Clone returns a copy that does not share the comments slice.
func (p *Post) Clone() *Post {
	c := *p
	c.Comments = slices.Clone(p.Comments)
	return &c
}

// Comment is an append-only reply to a post.
type Comment struct {
	ID              string    `json:"id"`
	PostID          string    `json:"post_id"`
	UserID          string    `json:"user_id"`
	AuthorName      string    `json:"author_name"`
	AuthorAvatarURL string    `json:"author_avatar_url"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"created_at"`
}
