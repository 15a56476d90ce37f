package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/praylink/internal/client/client"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/rpc"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// fakeRemote implements the calls the session makes; the embedded nil
// interface panics on anything else.
type fakeRemote struct {
	client.Client

	mu sync.Mutex

	user    *models.User
	authErr error

	feed    []*models.Post
	feedErr error

	createPost  *models.Post
	createErr   error
	createCalls int
	// observed is the session feed as seen from inside CreatePost.
	observed func()

	interactCount int64
	interactErr   error
	interactCalls int

	circleIDs   []string
	circleErr   error
	circleCalls int

	translated     string
	translateErr   error
	translateCalls int
	// translateGate, when set, holds Translate until it is closed.
	translateGate chan struct{}

	tithe      *rpc.TitheResponse
	titheErr   error
	titheCalls int

	chatReply   string
	chatHistory [][]rpc.ChatTurn

	logoutCalls int
}

func (f *fakeRemote) Login(ctx context.Context, email, password string) (*models.User, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.user.Clone(), nil
}

func (f *fakeRemote) Register(ctx context.Context, req *rpc.RegisterRequest) (*models.User, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.user.Clone(), nil
}

func (f *fakeRemote) Logout(ctx context.Context) error {
	f.logoutCalls++
	return nil
}

func (f *fakeRemote) Profile(ctx context.Context) (*models.User, error) {
	return f.user.Clone(), nil
}

func (f *fakeRemote) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	u := f.user.Clone()
	upd.Apply(u)
	return u, nil
}

func (f *fakeRemote) Feed(ctx context.Context) ([]*models.Post, error) {
	if f.feedErr != nil {
		return nil, f.feedErr
	}
	out := make([]*models.Post, len(f.feed))
	for i, p := range f.feed {
		out[i] = p.Clone()
	}
	return out, nil
}

func (f *fakeRemote) CreatePost(ctx context.Context, content string, miracle bool, tier models.PromotionTier) (*models.Post, error) {
	f.createCalls++
	if f.observed != nil {
		f.observed()
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createPost.Clone(), nil
}

func (f *fakeRemote) Interact(ctx context.Context, postID string) (models.InteractionKind, int64, error) {
	f.interactCalls++
	if f.interactErr != nil {
		return "", 0, f.interactErr
	}
	return models.InteractionLike, f.interactCount, nil
}

func (f *fakeRemote) AddComment(ctx context.Context, postID, content string) (*models.Comment, error) {
	return &models.Comment{ID: "c1", PostID: postID, Content: content}, nil
}

func (f *fakeRemote) MarkAnswered(ctx context.Context, postID string) (*models.Post, error) {
	return &models.Post{ID: postID, IsMiracle: true, IsAnswered: true}, nil
}

func (f *fakeRemote) ToggleCircle(ctx context.Context, targetID string) ([]string, error) {
	f.circleCalls++
	return f.circleIDs, f.circleErr
}

func (f *fakeRemote) Translate(ctx context.Context, text string, target models.Language) (string, error) {
	f.mu.Lock()
	f.translateCalls++
	gate := f.translateGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.translated, f.translateErr
}

func (f *fakeRemote) translations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.translateCalls
}

func (f *fakeRemote) BeginTithe(ctx context.Context, amount int64, method models.PaymentMethod, token string) (*rpc.TitheResponse, error) {
	f.titheCalls++
	return f.tithe, f.titheErr
}

func (f *fakeRemote) CompleteTithe(ctx context.Context, method models.PaymentMethod, reference string) (*rpc.TitheResponse, error) {
	f.titheCalls++
	return f.tithe, f.titheErr
}

func (f *fakeRemote) Chat(ctx context.Context, message string, history []rpc.ChatTurn) (string, error) {
	f.chatHistory = append(f.chatHistory, append([]rpc.ChatTurn(nil), history...))
	return f.chatReply, nil
}

func (f *fakeRemote) AvatarUploadURL(ctx context.Context) (*rpc.AvatarUploadResponse, error) {
	return &rpc.AvatarUploadResponse{Key: "k", UploadURL: "http://upload/k", PublicURL: "http://cdn/k"}, nil
}

// fakeCache is an in-memory FeedCache.
type fakeCache struct {
	posts   map[string][]*models.Post
	listErr error
	cleared []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{posts: make(map[string][]*models.Post)}
}

func (c *fakeCache) Replace(ctx context.Context, viewerID string, posts []*models.Post) error {
	c.posts[viewerID] = posts
	return nil
}

func (c *fakeCache) List(ctx context.Context, viewerID string) ([]*models.Post, error) {
	if c.listErr != nil {
		return nil, c.listErr
	}
	return c.posts[viewerID], nil
}

func (c *fakeCache) Clear(ctx context.Context, viewerID string) error {
	c.cleared = append(c.cleared, viewerID)
	delete(c.posts, viewerID)
	return nil
}

func viewer() *models.User {
	return &models.User{
		ID:        "me",
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Religion:  models.Christianity,
		Language:  models.English,
	}
}

func newPost(id string, miracle bool, tier models.PromotionTier, age time.Duration) *models.Post {
	return &models.Post{
		ID:             id,
		UserID:         "author-" + id,
		AuthorReligion: models.Christianity,
		Content:        "content " + id,
		Language:       models.English,
		CreatedAt:      time.Now().Add(-age),
		IsMiracle:      miracle,
		PromotionTier:  tier,
		Comments:       []models.Comment{},
	}
}

func login(t *testing.T, remote *fakeRemote, opts Options) *Session {
	t.Helper()
	if remote.user == nil {
		remote.user = viewer()
	}
	s, err := Login(context.Background(), remote, "grace@example.com", "pw", opts)
	require.NoError(t, err)
	return s
}

func ids(posts []*models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}
