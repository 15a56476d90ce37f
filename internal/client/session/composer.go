package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/praylink/internal/feed"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/google/uuid"
)

var (
	ErrEmptyContent    = errors.New("post content is empty")
	ErrChoosePromotion = errors.New("choose a promotion tier")
)

// Stage is the composer step.
type Stage string

const (
	StageCompose         Stage = "compose"
	StageChoosePromotion Stage = "choose-promotion"
)

const pendingPrefix = "pending-"

type composer struct {
	text    string
	miracle bool
	tier    models.PromotionTier
	stage   Stage
}

// Draft is a read-only view of the composer.
type Draft struct {
	Text    string
	Miracle bool
	Tier    models.PromotionTier
	Stage   Stage
}

func (c composer) draft() Draft {
	d := Draft{Text: c.text, Miracle: c.miracle, Tier: c.tier, Stage: c.stage}
	if d.Stage == "" {
		d.Stage = StageCompose
	}
	if d.Tier == "" {
		d.Tier = models.TierNone
	}
	return d
}

func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.composer.draft()
}

func (s *Session) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer.text = text
}

// ToggleMiracle flips between an ordinary post and a miracle request.
// Turning it off drops any chosen tier.
func (s *Session) ToggleMiracle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer.miracle = !s.composer.miracle
	if !s.composer.miracle {
		s.composer.tier = models.TierNone
		s.composer.stage = StageCompose
	}
	return s.composer.miracle
}

func (s *Session) ChooseTier(t models.PromotionTier) error {
	if !t.Valid() {
		return fmt.Errorf("unknown promotion tier %q", t)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer.tier = t
	return nil
}

// Cancel leaves the promotion step and returns to composing.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer.stage = StageCompose
	s.composer.tier = models.TierNone
}

// Submit publishes the draft. A miracle request without a tier first moves
// the composer to the promotion step and returns ErrChoosePromotion; the next
// Submit posts with whatever tier was chosen. The post is shown at the top of
// the feed right away and replaced by the server copy, or removed if the
// server rejects it.
func (s *Session) Submit(ctx context.Context) (*models.Post, error) {
	s.mu.Lock()
	if s.viewer == nil {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	d := s.composer.draft()
	content := strings.TrimSpace(d.Text)
	if content == "" {
		s.mu.Unlock()
		return nil, ErrEmptyContent
	}
	if d.Miracle && d.Tier == models.TierNone && d.Stage == StageCompose {
		s.composer.stage = StageChoosePromotion
		s.mu.Unlock()
		return nil, ErrChoosePromotion
	}
	tier := d.Tier
	if !d.Miracle {
		tier = models.TierNone
	}

	pending := &models.Post{
		ID:              pendingPrefix + uuid.NewString(),
		UserID:          s.viewer.ID,
		AuthorName:      s.viewer.Name(),
		AuthorReligion:  s.viewer.Religion,
		AuthorAvatarURL: s.viewer.AvatarURL,
		Content:         content,
		Language:        s.viewer.Language,
		CreatedAt:       time.Now(),
		IsMiracle:       d.Miracle,
		PromotionTier:   tier,
		Comments:        []models.Comment{},
	}
	s.posts = append([]*models.Post{pending}, s.posts...)
	s.mu.Unlock()

	created, err := s.remote.CreatePost(ctx, content, d.Miracle, tier)

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, p := range s.posts {
		if p.ID == pending.ID {
			idx = i
			break
		}
	}
	if err != nil {
		if idx >= 0 {
			s.posts = append(s.posts[:idx], s.posts[idx+1:]...)
		}
		s.composer.stage = StageCompose
		return nil, err
	}
	if idx >= 0 {
		s.posts[idx] = created.Clone()
	} else {
		s.posts = append([]*models.Post{created.Clone()}, s.posts...)
	}
	feed.Sort(s.posts)
	s.composer = composer{}
	return created.Clone(), nil
}
