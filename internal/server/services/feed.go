package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/feed"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/repomanager"
)

// promotionWindow is how long a paid tier is recorded as active.
const promotionWindow = 7 * 24 * time.Hour

// NewPost is the composer payload.
type NewPost struct {
	Content string
	Miracle bool
	Tier    models.PromotionTier
}

type FeedService struct {
	repos repomanager.RepositoryManager
	now   func() time.Time
}

func NewFeedService(m repomanager.RepositoryManager) *FeedService {
	return &FeedService{repos: m, now: time.Now}
}

// Feed returns every post the viewer may see, with comments, in feed order.
func (s *FeedService) Feed(ctx context.Context, viewerID string) ([]*models.Post, error) {
	db := s.repos.DB()
	usersRepo := s.repos.Users(db)

	viewer, err := usersRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("error loading viewer: %w", err)
	}

	all, err := s.repos.Posts(db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading posts: %w", err)
	}

	comments, err := s.repos.Comments(db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading comments: %w", err)
	}
	byPost := make(map[string][]models.Comment)
	for _, c := range comments {
		byPost[c.PostID] = append(byPost[c.PostID], c)
	}

	authors := map[string]*models.User{viewer.ID: viewer}
	visible := make([]*models.Post, 0, len(all))
	for _, p := range all {
		author, ok := authors[p.UserID]
		if !ok {
			author, err = usersRepo.GetByID(ctx, p.UserID)
			if err != nil && !errors.Is(err, common.ErrorNotFound) {
				return nil, fmt.Errorf("error loading author: %w", err)
			}
			authors[p.UserID] = author
		}
		if !feed.VisibleTo(author, viewer) {
			continue
		}
		if c, ok := byPost[p.ID]; ok {
			p.Comments = c
		}
		visible = append(visible, p)
	}

	feed.Sort(visible)
	return visible, nil
}

// CreatePost stores a post with the author's current profile snapshot.
func (s *FeedService) CreatePost(ctx context.Context, authorID string, in NewPost) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: post content is empty", common.ErrorValidation)
	}
	if in.Tier == "" {
		in.Tier = models.TierNone
	}
	if !in.Tier.Valid() {
		return nil, fmt.Errorf("%w: unknown promotion tier %q", common.ErrorValidation, in.Tier)
	}
	if in.Tier.Promoted() && !in.Miracle {
		return nil, fmt.Errorf("%w: only miracle requests can be promoted", common.ErrorValidation)
	}

	author, err := s.repos.Users(s.repos.DB()).GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:          author.ID,
		AuthorName:      author.Name(),
		AuthorReligion:  author.Religion,
		AuthorAvatarURL: author.AvatarURL,
		Content:         content,
		Language:        author.Language,
		IsMiracle:       in.Miracle,
		PromotionTier:   in.Tier,
	}
	if in.Tier.Promoted() {
		expires := s.now().Add(promotionWindow)
		post.PromotionExpiresAt = &expires
	}

	if _, err := s.repos.Posts(s.repos.DB()).Create(ctx, post); err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	post.Comments = []models.Comment{}
	return post, nil
}

// Interact bumps the post's prayers or likes and returns the new count.
func (s *FeedService) Interact(ctx context.Context, postID string) (models.InteractionKind, int64, error) {
	return s.repos.Posts(s.repos.DB()).Interact(ctx, postID)
}

func (s *FeedService) AddComment(ctx context.Context, postID, authorID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment is empty", common.ErrorValidation)
	}

	db := s.repos.DB()
	if _, err := s.repos.Posts(db).Get(ctx, postID); err != nil {
		return nil, err
	}
	author, err := s.repos.Users(db).GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	c := &models.Comment{
		PostID:          postID,
		UserID:          author.ID,
		AuthorName:      author.Name(),
		AuthorAvatarURL: author.AvatarURL,
		Content:         content,
	}
	if _, err := s.repos.Comments(db).Create(ctx, c); err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}
	return c, nil
}

// MarkAnswered turns the author's own miracle request into a testimony.
func (s *FeedService) MarkAnswered(ctx context.Context, postID, userID string) (*models.Post, error) {
	repo := s.repos.Posts(s.repos.DB())

	post, err := repo.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, fmt.Errorf("%w: only the author can mark a request answered", common.ErrorForbidden)
	}
	if !post.IsMiracle {
		return nil, fmt.Errorf("%w: only miracle requests can be answered", common.ErrorForbidden)
	}
	if post.IsAnswered {
		return post, nil
	}

	if err := repo.MarkAnswered(ctx, postID); err != nil {
		return nil, err
	}
	post.IsAnswered = true
	return post, nil
}
