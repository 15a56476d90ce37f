package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/dbx"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/server/auth"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	s := newUserService(t, newRepos())

	u, pair, err := s.Register(context.Background(), params(" Ann@Example.com ", models.Buddhism))
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.Equal(t, models.VisibilityPublic, u.Visibility)
	assert.Equal(t, models.English, u.Language)
	assert.Contains(t, u.AvatarURL, "ui-avatars.com")
	assert.NotNil(t, u.CircleIDs)
	assert.False(t, u.IsPremium)

	id, err := auth.GetUserIDFromToken(pair.AccessToken, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRegister_Validation(t *testing.T) {
	s := newUserService(t, newRepos())

	tests := []struct {
		name   string
		mutate func(*RegisterParams)
	}{
		{"bad email", func(p *RegisterParams) { p.Email = "not-an-email" }},
		{"short password", func(p *RegisterParams) { p.Password = "short" }},
		{"blank first name", func(p *RegisterParams) { p.FirstName = "  " }},
		{"missing religion", func(p *RegisterParams) { p.Religion = "" }},
		{"unknown religion", func(p *RegisterParams) { p.Religion = "Pastafarian" }},
		{"unknown visibility", func(p *RegisterParams) { p.Visibility = "Friends" }},
		{"unknown language", func(p *RegisterParams) { p.Language = "Klingon" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := params("a@b.io", models.Islam)
			tt.mutate(&p)
			_, _, err := s.Register(context.Background(), p)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newUserService(t, newRepos())
	mustRegister(t, s, "dup@x.io", models.Judaism)

	_, _, err := s.Register(context.Background(), params("DUP@x.io", models.Judaism))
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestLogin(t *testing.T) {
	s := newUserService(t, newRepos())
	u := mustRegister(t, s, "sam@x.io", models.Hinduism)

	got, pair, err := s.Login(context.Background(), "SAM@x.io", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, pair.AccessToken)

	_, _, err = s.Login(context.Background(), "sam@x.io", "wrong password")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, _, err = s.Login(context.Background(), "nobody@x.io", "correct horse")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestRefreshToken_RotatesOnce(t *testing.T) {
	s := newUserService(t, newRepos())
	_, pair, err := s.Register(context.Background(), params("r@x.io", models.Sikhism))
	require.NoError(t, err)

	next, err := s.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	_, err = s.RefreshToken(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

type expiredRefresh struct {
	refreshtokens.Repository
}

func (expiredRefresh) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	return &models.RefreshToken{UserID: "u1", Token: token, Expires: time.Now().Add(-time.Minute)}, nil
}

type failingRefresh struct {
	refreshtokens.Repository
}

func (failingRefresh) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	return nil, errBoom{}
}

type refreshOverride struct {
	*repomanager.MemoryRepositoryManager
	repo refreshtokens.Repository
}

func (m refreshOverride) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.repo }

func TestRefreshToken_Expired(t *testing.T) {
	s := newUserService(t, refreshOverride{newRepos(), expiredRefresh{}})

	_, err := s.RefreshToken(context.Background(), "r")
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}

func TestRefreshToken_FindErr(t *testing.T) {
	s := newUserService(t, refreshOverride{newRepos(), failingRefresh{}})

	_, err := s.RefreshToken(context.Background(), "r")
	require.Error(t, err)
	assert.Regexp(t, `error searching refresh token: .*boom`, err.Error())
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	s := newUserService(t, newRepos())
	_, pair, err := s.Register(context.Background(), params("l@x.io", models.Agnostic))
	require.NoError(t, err)

	require.NoError(t, s.Logout(context.Background(), pair.RefreshToken))
	require.NoError(t, s.Logout(context.Background(), pair.RefreshToken))

	_, err = s.RefreshToken(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestUpdateProfile(t *testing.T) {
	s := newUserService(t, newRepos())
	u := mustRegister(t, s, "p@x.io", models.Christianity)

	lang := models.Spanish
	vis := models.VisibilitySameReligion
	avatar := "http://minio/avatars/p.png"
	got, err := s.UpdateProfile(context.Background(), u.ID, models.ProfileUpdate{
		Language: &lang, Visibility: &vis, AvatarURL: &avatar,
	})
	require.NoError(t, err)
	assert.Equal(t, models.Spanish, got.Language)
	assert.Equal(t, models.VisibilitySameReligion, got.Visibility)
	assert.Equal(t, avatar, got.AvatarURL)
	assert.Equal(t, "Test", got.FirstName)

	stored, err := s.Profile(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Spanish, stored.Language)

	bad := models.Language("Latin")
	_, err = s.UpdateProfile(context.Background(), u.ID, models.ProfileUpdate{Language: &bad})
	assert.ErrorIs(t, err, common.ErrorValidation)

	blank := " "
	_, err = s.UpdateProfile(context.Background(), u.ID, models.ProfileUpdate{FirstName: &blank})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.UpdateProfile(context.Background(), "ghost", models.ProfileUpdate{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestToggleCircle(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t, newRepos())
	a := mustRegister(t, s, "a@x.io", models.Islam)
	b := mustRegister(t, s, "b@x.io", models.Judaism)

	member, ids, err := s.ToggleCircle(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, member)
	assert.Equal(t, []string{b.ID}, ids)

	member, ids, err = s.ToggleCircle(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, member)
	assert.Empty(t, ids)

	member, ids, err = s.ToggleCircle(ctx, a.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, member)
	assert.Empty(t, ids)

	_, _, err = s.ToggleCircle(ctx, a.ID, "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	p, err := s.Profile(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, p.CircleIDs)
}
