package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/google/uuid"
)

type UsersRepository struct {
	s *Store
}

func (r *UsersRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, ok := r.s.emails[email]; ok {
		return nil, common.ErrorAlreadyExists
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Email = email
	user.CreatedAt = r.s.now()

	stored := user.Clone()
	stored.CircleIDs = nil
	r.s.users[user.ID] = stored
	r.s.emails[email] = user.ID

	return user, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[strings.ToLower(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.s.users[id].Clone(), nil
}

func (r *UsersRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.Clone(), nil
}

func (r *UsersRepository) Update(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[user.ID]
	if !ok {
		return common.ErrorNotFound
	}
	u.FirstName = user.FirstName
	u.LastName = user.LastName
	u.Religion = user.Religion
	u.Visibility = user.Visibility
	u.Language = user.Language
	u.AvatarURL = user.AvatarURL
	return nil
}

func (r *UsersRepository) SetPremium(ctx context.Context, id string, premium bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.IsPremium = premium
	return nil
}

type CirclesRepository struct {
	s *Store
}

func (r *CirclesRepository) List(ctx context.Context, userID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := slices.Clone(r.s.circles[userID])
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (r *CirclesRepository) Contains(ctx context.Context, userID, memberID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return slices.Contains(r.s.circles[userID], memberID), nil
}

func (r *CirclesRepository) Add(ctx context.Context, userID, memberID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[memberID]; !ok {
		return common.ErrorNotFound
	}
	if !slices.Contains(r.s.circles[userID], memberID) {
		r.s.circles[userID] = append(r.s.circles[userID], memberID)
	}
	return nil
}

func (r *CirclesRepository) Remove(ctx context.Context, userID, memberID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.circles[userID] = slices.DeleteFunc(r.s.circles[userID], func(id string) bool { return id == memberID })
	return nil
}

type RefreshTokenRepository struct {
	s *Store
}

func (r *RefreshTokenRepository) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	r.s.tokens[token] = &models.RefreshToken{
		ID: uuid.NewString(), UserID: userID, Token: token, Expires: now.Add(validity), CreatedAt: now,
	}
	return nil
}

func (r *RefreshTokenRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rt, ok := r.s.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *rt
	return &c, nil
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.tokens, token)
	return nil
}
