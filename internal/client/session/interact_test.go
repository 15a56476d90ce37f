package session

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedSession(t *testing.T, remote *fakeRemote) *Session {
	t.Helper()
	s := login(t, remote, Options{})
	_, err := s.LoadFeed(context.Background())
	require.NoError(t, err)
	return s
}

func TestInteract_OncePerSession(t *testing.T) {
	ctx := context.Background()
	p := newPost("p1", false, models.TierNone, time.Minute)
	p.Likes = 4
	remote := &fakeRemote{feed: []*models.Post{p}, interactCount: 5}
	s := loadedSession(t, remote)

	n, err := s.Interact(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.True(t, s.HasInteracted("p1"))

	n, err = s.Interact(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Equal(t, 1, remote.interactCalls)
	assert.Equal(t, int64(5), s.Posts()[0].Likes)
}

func TestInteract_MiraclePrays(t *testing.T) {
	p := newPost("m1", true, models.TierNone, time.Minute)
	p.Prayers = 9
	remote := &fakeRemote{feed: []*models.Post{p}, interactCount: 10}
	s := loadedSession(t, remote)

	_, err := s.Interact(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), s.Posts()[0].Prayers)
	assert.Zero(t, s.Posts()[0].Likes)
}

func TestInteract_RevertsOnFailure(t *testing.T) {
	ctx := context.Background()
	p := newPost("p1", false, models.TierNone, time.Minute)
	p.Likes = 4
	remote := &fakeRemote{feed: []*models.Post{p}, interactErr: errBoom}
	s := loadedSession(t, remote)

	n, err := s.Interact(ctx, "p1")
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, int64(4), s.Posts()[0].Likes)
	assert.False(t, s.HasInteracted("p1"))

	remote.interactErr = nil
	remote.interactCount = 5
	n, err = s.Interact(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestInteract_UnknownPost(t *testing.T) {
	s := loadedSession(t, &fakeRemote{})
	_, err := s.Interact(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestToggleCircle(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{circleIDs: []string{"u2"}}
	s := login(t, remote, Options{})

	in, err := s.ToggleCircle(ctx, "u2")
	require.NoError(t, err)
	assert.True(t, in)
	assert.Equal(t, []string{"u2"}, s.Viewer().CircleIDs)

	remote.circleIDs = []string{}
	in, err = s.ToggleCircle(ctx, "u2")
	require.NoError(t, err)
	assert.False(t, in)
	assert.Empty(t, s.Viewer().CircleIDs)
}

func TestToggleCircle_SelfIsNoop(t *testing.T) {
	remote := &fakeRemote{}
	s := login(t, remote, Options{})

	in, err := s.ToggleCircle(context.Background(), "me")
	require.NoError(t, err)
	assert.False(t, in)
	assert.Zero(t, remote.circleCalls)
}

func TestToggleCircle_RevertsOnFailure(t *testing.T) {
	remote := &fakeRemote{circleErr: errBoom}
	remote.user = viewer()
	remote.user.CircleIDs = []string{"u1"}
	s := login(t, remote, Options{})

	in, err := s.ToggleCircle(context.Background(), "u2")
	require.ErrorIs(t, err, errBoom)
	assert.False(t, in)
	assert.Equal(t, []string{"u1"}, s.Viewer().CircleIDs)
}

func TestDisplayContent(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{translated: "hola"}
	s := login(t, remote, Options{})

	same := newPost("p1", false, models.TierNone, time.Minute)
	assert.Equal(t, "content p1", s.DisplayContent(ctx, same))
	assert.Zero(t, remote.translateCalls)

	foreign := newPost("p2", false, models.TierNone, time.Minute)
	foreign.Language = models.Spanish
	assert.Equal(t, "hola", s.DisplayContent(ctx, foreign))
	assert.Equal(t, "hola", s.DisplayContent(ctx, foreign))
	assert.Equal(t, 1, remote.translateCalls)
}

func TestDisplayContent_ConcurrentCallersShareOneTranslation(t *testing.T) {
	ctx := context.Background()
	gate := make(chan struct{})
	remote := &fakeRemote{translated: "bonjour", translateGate: gate}
	s := login(t, remote, Options{})

	foreign := newPost("p3", false, models.TierNone, time.Minute)
	foreign.Language = models.French

	const callers = 8
	results := make(chan string, callers)
	for range callers {
		go func() { results <- s.DisplayContent(ctx, foreign) }()
	}

	require.Eventually(t, func() bool { return remote.translations() == 1 }, time.Second, time.Millisecond)
	close(gate)

	for range callers {
		assert.Equal(t, "bonjour", <-results)
	}
	assert.Equal(t, 1, remote.translations())
}

func TestDisplayContent_FailureShowsOriginalOnce(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{translateErr: errBoom}
	s := login(t, remote, Options{})

	foreign := newPost("p2", false, models.TierNone, time.Minute)
	foreign.Language = models.French
	assert.Equal(t, "content p2", s.DisplayContent(ctx, foreign))
	assert.Equal(t, "content p2", s.DisplayContent(ctx, foreign))
	assert.Equal(t, 1, remote.translateCalls)
}
