package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/server/config"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/memory"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newRepos() *repomanager.MemoryRepositoryManager {
	return repomanager.NewMemoryRepositoryManager(memory.NewStore())
}

func newUserService(t *testing.T, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	s := NewUserService(rm, cfg)
	s.bcryptCost = bcrypt.MinCost
	return s
}

func params(email string, religion models.Religion) RegisterParams {
	return RegisterParams{
		Email:     email,
		Password:  "correct horse",
		FirstName: "Test",
		LastName:  "User",
		Religion:  religion,
	}
}

// mustRegister creates a user and returns it.
func mustRegister(t *testing.T, s *UserService, email string, religion models.Religion, mutate ...func(*RegisterParams)) *models.User {
	t.Helper()
	p := params(email, religion)
	for _, m := range mutate {
		m(&p)
	}
	u, _, err := s.Register(context.Background(), p)
	require.NoError(t, err)
	return u
}
