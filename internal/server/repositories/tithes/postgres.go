package tithes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/praylink/internal/dbx"
	"github.com/dmitrijs2005/praylink/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Tithe) (bool, error) {
	query :=
		`INSERT INTO tithes (user_id, amount, currency, method, provider_ref)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (provider_ref) DO NOTHING
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, t.UserID, t.Amount, t.Currency, t.Method, t.ProviderRef).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Tithe, error) {
	query :=
		`SELECT id, user_id, amount, currency, method, provider_ref, created_at
		 FROM tithes
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Tithe{}
	for rows.Next() {
		t := &models.Tithe{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Currency, &t.Method, &t.ProviderRef, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
