package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/dbx"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/circles"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/comments"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/posts"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/tithes"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var (
	_ users.Repository         = (*UsersRepository)(nil)
	_ circles.Repository       = (*CirclesRepository)(nil)
	_ refreshtokens.Repository = (*RefreshTokenRepository)(nil)
	_ posts.Repository         = (*PostsRepository)(nil)
	_ comments.Repository      = (*CommentsRepository)(nil)
	_ tithes.Repository        = (*TithesRepository)(nil)
	_ dbx.Transactor           = (*Store)(nil)
)

func TestUsers_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	r := NewStore().Users()

	u, err := r.Create(ctx, &models.User{Email: "Ann@Example.com", FirstName: "Ann"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	assert.Equal(t, "ann@example.com", u.Email)

	_, err = r.Create(ctx, &models.User{Email: "ann@example.COM"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	got, err := r.GetByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got.FirstName = "mutated"
	again, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", again.FirstName)

	_, err = r.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, r.SetPremium(ctx, u.ID, true))
	again, _ = r.GetByID(ctx, u.ID)
	assert.True(t, again.IsPremium)

	assert.ErrorIs(t, r.Update(ctx, &models.User{ID: "ghost"}), common.ErrorNotFound)
}

func TestCircles(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	ur, cr := s.Users(), s.Circles()

	a, _ := ur.Create(ctx, &models.User{Email: "a@x.io"})
	b, _ := ur.Create(ctx, &models.User{Email: "b@x.io"})

	ids, err := cr.List(ctx, a.ID)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)

	require.NoError(t, cr.Add(ctx, a.ID, b.ID))
	require.NoError(t, cr.Add(ctx, a.ID, b.ID))
	ids, _ = cr.List(ctx, a.ID)
	assert.Equal(t, []string{b.ID}, ids)

	ok, _ := cr.Contains(ctx, a.ID, b.ID)
	assert.True(t, ok)

	require.NoError(t, cr.Remove(ctx, a.ID, b.ID))
	ok, _ = cr.Contains(ctx, a.ID, b.ID)
	assert.False(t, ok)

	assert.ErrorIs(t, cr.Add(ctx, a.ID, "ghost"), common.ErrorNotFound)
}

func TestPosts_InteractPicksCounter(t *testing.T) {
	ctx := context.Background()
	pr := NewStore().Posts()

	regular, _ := pr.Create(ctx, &models.Post{Content: "hi", Likes: 2})
	miracle, _ := pr.Create(ctx, &models.Post{Content: "pray", IsMiracle: true, Prayers: 7})

	kind, n, err := pr.Interact(ctx, regular.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InteractionLike, kind)
	assert.Equal(t, int64(3), n)

	kind, n, err = pr.Interact(ctx, miracle.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InteractionPray, kind)
	assert.Equal(t, int64(8), n)

	got, _ := pr.Get(ctx, miracle.ID)
	assert.Equal(t, int64(0), got.Likes)

	_, _, err = pr.Interact(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPosts_ConcurrentInteractNoLostUpdates(t *testing.T) {
	ctx := context.Background()
	pr := NewStore().Posts()
	p, _ := pr.Create(ctx, &models.Post{Content: "x"})

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = pr.Interact(ctx, p.ID)
		}()
	}
	wg.Wait()

	got, _ := pr.Get(ctx, p.ID)
	assert.Equal(t, int64(50), got.Likes)
}

func TestComments(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p, _ := s.Posts().Create(ctx, &models.Post{Content: "x"})
	cr := s.Comments()

	_, err := cr.Create(ctx, &models.Comment{PostID: p.ID, Content: "Amen"})
	require.NoError(t, err)
	_, err = cr.Create(ctx, &models.Comment{PostID: "ghost", Content: "lost"})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	all, _ := cr.List(ctx)
	assert.Len(t, all, 1)
	byPost, _ := cr.ListByPost(ctx, p.ID)
	assert.Equal(t, "Amen", byPost[0].Content)
}

func TestTithes_DedupeAndOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { clock = clock.Add(time.Minute); return clock }
	tr := s.Tithes()

	created, err := tr.Create(ctx, &models.Tithe{UserID: "u1", Amount: 1000, ProviderRef: "r1"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = tr.Create(ctx, &models.Tithe{UserID: "u1", Amount: 1000, ProviderRef: "r1"})
	require.NoError(t, err)
	assert.False(t, created)

	_, _ = tr.Create(ctx, &models.Tithe{UserID: "u1", Amount: 5000, ProviderRef: "r2"})
	_, _ = tr.Create(ctx, &models.Tithe{UserID: "u2", Amount: 100, ProviderRef: "r3"})

	list, err := tr.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r2", list[0].ProviderRef)
	assert.Equal(t, "r1", list[1].ProviderRef)
}

func TestRefreshTokens(t *testing.T) {
	ctx := context.Background()
	r := NewStore().RefreshTokens()

	require.NoError(t, r.Create(ctx, "u1", "tok", time.Hour))
	rt, err := r.Find(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", rt.UserID)
	assert.True(t, rt.Expires.After(time.Now()))

	require.NoError(t, r.Delete(ctx, "tok"))
	_, err = r.Find(ctx, "tok")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestWithTx_PassesNilHandle(t *testing.T) {
	s := NewStore()
	called := false
	err := s.WithTx(context.Background(), func(ctx context.Context, tx dbx.DBTX) error {
		called = true
		assert.Nil(t, tx)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, Seed(ctx, s))

	sarah, err := s.Users().GetByEmail(ctx, "sarah@example.com")
	require.NoError(t, err)
	assert.True(t, sarah.IsPremium)
	assert.NoError(t, bcrypt.CompareHashAndPassword(sarah.PasswordHash, []byte(DemoPassword)))

	ahmed, _ := s.Users().GetByID(ctx, "u2")
	assert.Equal(t, models.VisibilitySameReligion, ahmed.Visibility)

	list, _ := s.Posts().List(ctx)
	assert.Len(t, list, 2)
}
