package session

import (
	"context"

	"github.com/dmitrijs2005/praylink/internal/models"
)

// DisplayContent returns the post text in the viewer's language. Posts
// already in that language are returned as is; others are translated once
// per language and cached for the life of the session. Concurrent callers
// for the same post and language share one remote call.
func (s *Session) DisplayContent(ctx context.Context, post *models.Post) string {
	s.mu.Lock()
	if s.viewer == nil || post.Language == s.viewer.Language {
		s.mu.Unlock()
		return post.Content
	}
	key := translationKey{postID: post.ID, lang: s.viewer.Language}
	if text, ok := s.translations[key]; ok {
		s.mu.Unlock()
		return text
	}
	s.mu.Unlock()

	v, _, _ := s.inflight.Do(post.ID+"\x00"+string(key.lang), func() (any, error) {
		s.mu.Lock()
		if text, ok := s.translations[key]; ok {
			s.mu.Unlock()
			return text, nil
		}
		s.mu.Unlock()

		text, err := s.remote.Translate(ctx, post.Content, key.lang)
		if err != nil || text == "" {
			s.log.Warn(ctx, "translation failed", "post_id", post.ID, "error", err)
			text = post.Content
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.translations != nil {
			s.translations[key] = text
		}
		return text, nil
	})
	return v.(string)
}
