// Package memory is the in-process storage variant. It implements the same
// repository contracts as the Postgres store and is selected at startup when
// no database is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/praylink/internal/dbx"
	"github.com/dmitrijs2005/praylink/internal/models"
)

// Store holds every table in maps guarded by one RWMutex. Values are cloned
// on the way in and out so callers never alias stored state.
type Store struct {
	mu sync.RWMutex
	// txMu serializes units of work run through WithTx. There is no rollback.
	txMu sync.Mutex

	now func() time.Time

	users    map[string]*models.User
	emails   map[string]string
	circles  map[string][]string
	tokens   map[string]*models.RefreshToken
	posts    map[string]*models.Post
	comments []models.Comment
	tithes   []*models.Tithe
	refs     map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		now:     time.Now,
		users:   make(map[string]*models.User),
		emails:  make(map[string]string),
		circles: make(map[string][]string),
		tokens:  make(map[string]*models.RefreshToken),
		posts:   make(map[string]*models.Post),
		refs:    make(map[string]struct{}),
	}
}

// WithTx runs fn with a nil handle; memory repositories ignore it.
func (s *Store) WithTx(ctx context.Context, fn dbx.TxFunc) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx, nil)
}

func (s *Store) Users() *UsersRepository               { return &UsersRepository{s: s} }
func (s *Store) Circles() *CirclesRepository           { return &CirclesRepository{s: s} }
func (s *Store) RefreshTokens() *RefreshTokenRepository { return &RefreshTokenRepository{s: s} }
func (s *Store) Posts() *PostsRepository               { return &PostsRepository{s: s} }
func (s *Store) Comments() *CommentsRepository         { return &CommentsRepository{s: s} }
func (s *Store) Tithes() *TithesRepository             { return &TithesRepository{s: s} }
