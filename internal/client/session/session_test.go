package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/praylink/internal/client/cache"
	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/feed"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Error(t *testing.T) {
	remote := &fakeRemote{authErr: common.ErrorUnauthorized}
	s, err := Login(context.Background(), remote, "a@b.c", "x", Options{})
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Nil(t, s)
}

func TestRegister_RemembersEmail(t *testing.T) {
	ctx := context.Background()
	c, err := cache.Open(ctx, filepath.Join(t.TempDir(), cache.FileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	remote := &fakeRemote{user: viewer()}
	s, err := Register(ctx, remote, &rpc.RegisterRequest{Email: "grace@example.com"}, Options{Metadata: c.Metadata})
	require.NoError(t, err)
	assert.Equal(t, "me", s.Viewer().ID)
	assert.Equal(t, "grace@example.com", LastEmail(ctx, c.Metadata))
	assert.Empty(t, LastEmail(ctx, nil))
}

func TestLogout_ClearsEverything(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{feed: []*models.Post{newPost("p1", false, models.TierNone, time.Minute)}, interactCount: 1}
	fc := newFakeCache()
	s := login(t, remote, Options{Cache: fc})

	_, err := s.LoadFeed(ctx)
	require.NoError(t, err)
	_, err = s.Interact(ctx, "p1")
	require.NoError(t, err)
	s.SetText("draft")

	require.NoError(t, s.Logout(ctx))

	assert.Nil(t, s.Viewer())
	assert.Empty(t, s.Posts())
	assert.False(t, s.HasInteracted("p1"))
	assert.Equal(t, Draft{Stage: StageCompose, Tier: models.TierNone}, s.Draft())
	assert.Equal(t, []string{"me"}, fc.cleared)
	assert.Equal(t, 1, remote.logoutCalls)

	_, err = s.LoadFeed(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, s.Logout(ctx))
	assert.Equal(t, 1, remote.logoutCalls)
}

func TestLoadFeed_SortsAndWritesThrough(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{feed: []*models.Post{
		newPost("old", false, models.TierNone, time.Hour),
		newPost("new", false, models.TierNone, time.Minute),
		newPost("gold", true, models.TierGold, 2*time.Hour),
	}}
	fc := newFakeCache()
	s := login(t, remote, Options{Cache: fc})

	posts, err := s.LoadFeed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"gold", "new", "old"}, ids(posts))
	assert.Len(t, fc.posts["me"], 3)
}

func TestLoadFeed_FallsBackToCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.Open(ctx, filepath.Join(t.TempDir(), cache.FileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	remote := &fakeRemote{feed: []*models.Post{newPost("p1", false, models.TierNone, time.Minute)}}
	s := login(t, remote, Options{Cache: c.Posts})

	_, err = s.LoadFeed(ctx)
	require.NoError(t, err)

	remote.feedErr = errBoom
	posts, err := s.LoadFeed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids(posts))
}

func TestLoadFeed_EmptyWhenNothingCached(t *testing.T) {
	remote := &fakeRemote{feedErr: errBoom}

	s := login(t, remote, Options{})
	posts, err := s.LoadFeed(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	fc := newFakeCache()
	fc.listErr = errBoom
	s = login(t, remote, Options{Cache: fc})
	posts, err = s.LoadFeed(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestVisible_Community(t *testing.T) {
	ctx := context.Background()
	other := newPost("islam", false, models.TierNone, time.Minute)
	other.AuthorReligion = models.Islam
	friend := newPost("friend", false, models.TierNone, 2*time.Minute)
	friend.AuthorReligion = models.Hinduism
	friend.UserID = "f1"

	remote := &fakeRemote{feed: []*models.Post{
		other, friend, newPost("same", false, models.TierNone, 3*time.Minute),
	}}
	remote.user = viewer()
	remote.user.CircleIDs = []string{"f1"}
	s := login(t, remote, Options{})

	_, err := s.LoadFeed(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"friend", "same"}, ids(s.Visible(feed.ModeCommunity)))
	assert.Equal(t, []string{"islam", "friend", "same"}, ids(s.Visible(feed.ModeAll)))
}

func TestUpdateProfile_AdoptsServerCopy(t *testing.T) {
	s := login(t, &fakeRemote{}, Options{})
	lang := models.Spanish
	u, err := s.UpdateProfile(context.Background(), models.ProfileUpdate{Language: &lang})
	require.NoError(t, err)
	assert.Equal(t, models.Spanish, u.Language)
	assert.Equal(t, models.Spanish, s.Viewer().Language)
}

func TestAddCommentAndMarkAnswered(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{feed: []*models.Post{newPost("p1", true, models.TierNone, time.Minute)}}
	s := login(t, remote, Options{})
	_, err := s.LoadFeed(ctx)
	require.NoError(t, err)

	_, err = s.AddComment(ctx, "p1", "  ")
	require.ErrorIs(t, err, ErrEmptyContent)

	c, err := s.AddComment(ctx, "p1", "amen")
	require.NoError(t, err)
	assert.Equal(t, "amen", c.Content)
	require.Len(t, s.Posts()[0].Comments, 1)

	p, err := s.MarkAnswered(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.IsAnswered)
	assert.True(t, s.Posts()[0].IsAnswered)
}
