package session

import (
	"context"
	"slices"
	"strings"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/feed"
	"github.com/dmitrijs2005/praylink/internal/models"
)

// LoadFeed fetches the feed and keeps it in display order. When the server
// cannot be reached the cached snapshot is used, and when that is missing too
// the feed is empty. A successful fetch is written through to the cache.
func (s *Session) LoadFeed(ctx context.Context) ([]*models.Post, error) {
	viewer := s.Viewer()
	if viewer == nil {
		return nil, ErrNoSession
	}

	posts, err := s.remote.Feed(ctx)
	if err != nil {
		s.log.Warn(ctx, "feed fetch failed, using local copy", "error", err)
		posts = s.cachedFeed(ctx, viewer.ID)
	} else if s.cache != nil {
		if err := s.cache.Replace(ctx, viewer.ID, posts); err != nil {
			s.log.Warn(ctx, "failed to cache feed", "error", err)
		}
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	feed.Sort(posts)

	s.mu.Lock()
	s.posts = posts
	s.mu.Unlock()

	return s.snapshot(), nil
}

func (s *Session) cachedFeed(ctx context.Context, viewerID string) []*models.Post {
	if s.cache == nil {
		return nil
	}
	posts, err := s.cache.List(ctx, viewerID)
	if err != nil {
		s.log.Warn(ctx, "failed to read cached feed", "error", err)
		return nil
	}
	return posts
}

func (s *Session) snapshot() []*models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Post, len(s.posts))
	for i, p := range s.posts {
		out[i] = p.Clone()
	}
	return out
}

// Posts returns the current feed in display order.
func (s *Session) Posts() []*models.Post {
	return s.snapshot()
}

// Visible returns the current feed narrowed to mode.
func (s *Session) Visible(mode feed.Mode) []*models.Post {
	return feed.Filter(s.snapshot(), mode, s.Viewer())
}

// HasInteracted reports whether the viewer already liked or prayed for postID
// in this session.
func (s *Session) HasInteracted(postID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interacted[postID]
}

func (s *Session) findLocked(postID string) *models.Post {
	i := slices.IndexFunc(s.posts, func(p *models.Post) bool { return p.ID == postID })
	if i < 0 {
		return nil
	}
	return s.posts[i]
}

// Interact likes a post, or prays for a miracle request, once per session.
// The counter moves locally before the call and is restored if it fails.
// Repeated calls return the current count with no remote call.
func (s *Session) Interact(ctx context.Context, postID string) (int64, error) {
	s.mu.Lock()
	if s.viewer == nil {
		s.mu.Unlock()
		return 0, ErrNoSession
	}
	p := s.findLocked(postID)
	if p == nil {
		s.mu.Unlock()
		return 0, common.ErrorNotFound
	}
	if s.interacted[postID] {
		n := p.InteractionCount()
		s.mu.Unlock()
		return n, nil
	}
	before := p.InteractionCount()
	s.interacted[postID] = true
	p.SetInteractionCount(before + 1)
	s.mu.Unlock()

	_, count, err := s.remote.Interact(ctx, postID)

	s.mu.Lock()
	defer s.mu.Unlock()
	p = s.findLocked(postID)
	if err != nil {
		delete(s.interacted, postID)
		if p != nil {
			p.SetInteractionCount(before)
		}
		return before, err
	}
	if p != nil {
		p.SetInteractionCount(count)
	}
	return count, nil
}

// AddComment posts a reply and appends it to the local copy of the post.
func (s *Session) AddComment(ctx context.Context, postID, content string) (*models.Comment, error) {
	if s.Viewer() == nil {
		return nil, ErrNoSession
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	c, err := s.remote.AddComment(ctx, postID, content)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if p := s.findLocked(postID); p != nil {
		p.Comments = append(p.Comments, *c)
	}
	s.mu.Unlock()
	return c, nil
}

// MarkAnswered marks the viewer's own miracle request as answered.
func (s *Session) MarkAnswered(ctx context.Context, postID string) (*models.Post, error) {
	if s.Viewer() == nil {
		return nil, ErrNoSession
	}
	p, err := s.remote.MarkAnswered(ctx, postID)
	if err != nil {
		return nil, err
	}
	s.replacePost(p)
	return p.Clone(), nil
}

func (s *Session) replacePost(p *models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.posts {
		if cur.ID == p.ID {
			s.posts[i] = p.Clone()
			return
		}
	}
}
