package repomanager

import (
	"context"

	"github.com/dmitrijs2005/praylink/internal/dbx"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/circles"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/comments"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/memory"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/posts"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/tithes"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/users"
)

// MemoryRepositoryManager serves every repository from one in-process store.
// The DBTX arguments are ignored.
type MemoryRepositoryManager struct {
	store *memory.Store
}

func NewMemoryRepositoryManager(store *memory.Store) *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: store}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *MemoryRepositoryManager) DB() dbx.DBTX                        { return nil }
func (m *MemoryRepositoryManager) Close() error                        { return nil }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn dbx.TxFunc) error {
	return m.store.WithTx(ctx, fn)
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.store.Users() }
func (m *MemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.store.RefreshTokens()
}
func (m *MemoryRepositoryManager) Circles(dbx.DBTX) circles.Repository   { return m.store.Circles() }
func (m *MemoryRepositoryManager) Posts(dbx.DBTX) posts.Repository       { return m.store.Posts() }
func (m *MemoryRepositoryManager) Comments(dbx.DBTX) comments.Repository { return m.store.Comments() }
func (m *MemoryRepositoryManager) Tithes(dbx.DBTX) tithes.Repository     { return m.store.Tithes() }
