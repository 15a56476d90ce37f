// Package repomanager vends repositories for the configured storage variant.
// The variant is picked once at startup; services only see RepositoryManager.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/praylink/internal/dbx"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/circles"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/comments"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/posts"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/tithes"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// DB is the non-transactional handle passed to repository factories.
	DB() dbx.DBTX
	dbx.Transactor
	Close() error

	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Circles(db dbx.DBTX) circles.Repository
	Posts(db dbx.DBTX) posts.Repository
	Comments(db dbx.DBTX) comments.Repository
	Tithes(db dbx.DBTX) tithes.Repository
}
