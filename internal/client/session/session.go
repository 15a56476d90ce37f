package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/praylink/internal/client/cache"
	"github.com/dmitrijs2005/praylink/internal/client/client"
	"github.com/dmitrijs2005/praylink/internal/logging"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/rpc"
	"golang.org/x/sync/singleflight"
)

var ErrNoSession = errors.New("not signed in")

// FeedCache is the local snapshot of the viewer's feed.
type FeedCache interface {
	Replace(ctx context.Context, viewerID string, posts []*models.Post) error
	List(ctx context.Context, viewerID string) ([]*models.Post, error)
	Clear(ctx context.Context, viewerID string) error
}

// MetadataStore keeps small client settings such as the last used email.
type MetadataStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type translationKey struct {
	postID string
	lang   models.Language
}

type Session struct {
	remote client.Client
	cache  FeedCache
	meta   MetadataStore
	log    logging.Logger

	mu           sync.Mutex
	viewer       *models.User
	posts        []*models.Post
	interacted   map[string]bool
	translations map[translationKey]string
	composer     composer

	inflight singleflight.Group
}

// Options carries the optional collaborators of a session.
type Options struct {
	Cache    FeedCache
	Metadata MetadataStore
	Logger   logging.Logger
}

func newSession(remote client.Client, viewer *models.User, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Session{
		remote:       remote,
		cache:        opts.Cache,
		meta:         opts.Metadata,
		log:          log.With("module", "session"),
		viewer:       viewer,
		interacted:   make(map[string]bool),
		translations: make(map[translationKey]string),
	}
}

// Login authenticates against the server and opens a session for the member.
func Login(ctx context.Context, remote client.Client, email, password string, opts Options) (*Session, error) {
	u, err := remote.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}
	s := newSession(remote, u, opts)
	s.rememberEmail(ctx, u.Email)
	return s, nil
}

// Register creates the account and opens a session for it.
func Register(ctx context.Context, remote client.Client, req *rpc.RegisterRequest, opts Options) (*Session, error) {
	u, err := remote.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	s := newSession(remote, u, opts)
	s.rememberEmail(ctx, u.Email)
	return s, nil
}

// LastEmail returns the email of the last member who signed in on this device.
func LastEmail(ctx context.Context, meta MetadataStore) string {
	if meta == nil {
		return ""
	}
	b, err := meta.Get(ctx, cache.KeyLastEmail)
	if err != nil {
		return ""
	}
	return string(b)
}

func (s *Session) rememberEmail(ctx context.Context, email string) {
	if s.meta == nil || email == "" {
		return
	}
	if err := s.meta.Set(ctx, cache.KeyLastEmail, []byte(email)); err != nil {
		s.log.Warn(ctx, "failed to remember email", "error", err)
	}
}

// Logout revokes the server session, drops the cached feed and clears every
// field. The session is unusable afterwards.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	viewer := s.viewer
	s.viewer = nil
	s.posts = nil
	s.interacted = make(map[string]bool)
	s.translations = make(map[translationKey]string)
	s.composer = composer{}
	s.mu.Unlock()

	if viewer == nil {
		return nil
	}
	if s.cache != nil {
		if err := s.cache.Clear(ctx, viewer.ID); err != nil {
			s.log.Warn(ctx, "failed to clear feed cache", "error", err)
		}
	}
	return s.remote.Logout(ctx)
}

// Viewer returns a copy of the signed-in profile, or nil after Logout.
func (s *Session) Viewer() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewer.Clone()
}

func (s *Session) viewerLocked() (*models.User, error) {
	if s.viewer == nil {
		return nil, ErrNoSession
	}
	return s.viewer, nil
}

// RefreshProfile reloads the profile from the server.
func (s *Session) RefreshProfile(ctx context.Context) (*models.User, error) {
	if s.Viewer() == nil {
		return nil, ErrNoSession
	}
	u, err := s.remote.Profile(ctx)
	if err != nil {
		return nil, err
	}
	s.setViewer(u)
	return u.Clone(), nil
}

// UpdateProfile applies the edit remotely and adopts the returned profile.
func (s *Session) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	if s.Viewer() == nil {
		return nil, ErrNoSession
	}
	u, err := s.remote.UpdateProfile(ctx, upd)
	if err != nil {
		return nil, err
	}
	s.setViewer(u)
	return u.Clone(), nil
}

func (s *Session) setViewer(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewer != nil {
		s.viewer = u.Clone()
	}
}
