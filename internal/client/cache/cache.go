// Package cache is the client's offline store: the last feed fetched for each
// viewer and a small key/value table, kept in a local SQLite file.
package cache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/praylink/internal/client/cache/migrations"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// FileName is the cache database created inside the client data directory.
const FileName = "praylink.db"

type Cache struct {
	db       *sql.DB
	Posts    *PostsRepository
	Metadata *MetadataRepository
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (or creates) the cache at dsn and brings its schema up to date.
func Open(ctx context.Context, dsn string) (*Cache, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Cache{
		db:       db,
		Posts:    NewPostsRepository(db),
		Metadata: NewMetadataRepository(db),
	}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}
