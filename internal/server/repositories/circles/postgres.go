package circles

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/praylink/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]string, error) {
	query :=
		`SELECT member_id FROM circles
		 WHERE user_id = $1
		 ORDER BY created_at, member_id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return ids, nil
}

func (r *PostgresRepository) Contains(ctx context.Context, userID, memberID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM circles WHERE user_id = $1 AND member_id = $2)`

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, userID, memberID).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

// Add is idempotent.
func (r *PostgresRepository) Add(ctx context.Context, userID, memberID string) error {
	query :=
		`INSERT INTO circles (user_id, member_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID, memberID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Remove is idempotent.
func (r *PostgresRepository) Remove(ctx context.Context, userID, memberID string) error {
	query := `DELETE FROM circles WHERE user_id = $1 AND member_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, memberID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
